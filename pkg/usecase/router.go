package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/secmon-lab/studymate/pkg/domain/interfaces"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
)

const (
	recentMemoryCount = 3
	dateLayout        = "2006-01-02"

	ReplyNoHistory     = "📭 You have no saved study history yet."
	ReplyMemoryHeader  = "🧠 Here's your recent study memory:"
	ReplyMemoryFailure = "❌ Sorry, I couldn't load your study history."
	ReplyChatFailure   = "❌ Sorry, I couldn't answer that."
	replyAskPrefix     = "Can you please tell me "
	replyCalendarOffer = "📅 Would you like me to add this plan to your Google Calendar?"
)

var missingFieldPhrases = map[model.StudyField]string{
	model.StudyFieldSubjects:      "what subjects",
	model.StudyFieldHoursPerDay:   "how many hours/day",
	model.StudyFieldDaysAvailable: "how many days",
}

// stageResult is the outcome of one routing stage: either a reply that ends
// routing, or a recoverable error that sends the message on to chat.
type stageResult struct {
	reply *model.RoutedReply
	err   error
}

func handled(reply *model.RoutedReply) stageResult {
	return stageResult{reply: reply}
}

func fallthroughWith(err error) stageResult {
	return stageResult{err: err}
}

// intentRoute pairs an intent with its trigger phrases. Routes are checked
// in order and the first match wins.
type intentRoute struct {
	intent     model.Intent
	vocabulary []string
	handle     func(ctx context.Context, msg model.IncomingMessage) stageResult
}

// RouterUseCase classifies each message and answers it from study memory,
// with a generated plan, or with open-ended chat.
type RouterUseCase struct {
	memory    interfaces.StudyMemoryRepository
	extractor *Extractor
	planner   *PlanGenerator
	responder *Responder
	now       func() time.Time
	routes    []intentRoute
}

func NewRouterUseCase(
	memory interfaces.StudyMemoryRepository,
	extractor *Extractor,
	planner *PlanGenerator,
	responder *Responder,
	vocabulary IntentVocabulary,
	now func() time.Time,
) *RouterUseCase {
	r := &RouterUseCase{
		memory:    memory,
		extractor: extractor,
		planner:   planner,
		responder: responder,
		now:       now,
	}

	// memory must stay ahead of plan: "what did i study" also contains "study"
	r.routes = []intentRoute{
		{intent: model.IntentMemory, vocabulary: vocabulary.Memory, handle: r.handleMemory},
		{intent: model.IntentPlan, vocabulary: vocabulary.Plan, handle: r.handlePlan},
	}
	return r
}

// Route always produces a reply. Failures inside a stage degrade to the chat
// path, and a chat failure yields a fixed apology.
func (r *RouterUseCase) Route(ctx context.Context, msg model.IncomingMessage) *model.RoutedReply {
	logger := logging.From(ctx)

	for _, route := range r.routes {
		if !containsAny(msg.Text, route.vocabulary) {
			continue
		}

		res := route.handle(ctx, msg)
		if res.reply != nil {
			logger.Debug("message routed", "intent", route.intent)
			return res.reply
		}

		logger.Warn("intent handler failed, falling back to chat",
			"intent", route.intent,
			"error", res.err,
		)
		break
	}

	return r.handleChat(ctx, msg)
}

func (r *RouterUseCase) handleMemory(ctx context.Context, msg model.IncomingMessage) stageResult {
	records, err := r.memory.Recent(ctx, recentMemoryCount)
	if err != nil {
		errutil.Handle(ctx, err, "failed to read study memory")
		return handled(&model.RoutedReply{Reply: ReplyMemoryFailure, Intent: model.IntentMemory})
	}

	if len(records) == 0 {
		return handled(&model.RoutedReply{Reply: ReplyNoHistory, Intent: model.IntentMemory})
	}

	loc := r.now().Location()
	lines := make([]string, 0, len(records))
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("• On %s, you planned %s for %d days (%d hrs/day)",
			rec.Timestamp.In(loc).Format(dateLayout), rec.Subjects, rec.DaysAvailable, rec.HoursPerDay))
	}

	return handled(&model.RoutedReply{
		Reply:  ReplyMemoryHeader + "\n\n" + strings.Join(lines, "\n"),
		Intent: model.IntentMemory,
	})
}

func (r *RouterUseCase) handlePlan(ctx context.Context, msg model.IncomingMessage) stageResult {
	result, err := r.extractor.Extract(ctx, msg.Text)
	if err != nil {
		return fallthroughWith(err)
	}

	if result.Missing != nil {
		return handled(&model.RoutedReply{
			Reply:  askForMissing(result.Missing),
			Intent: model.IntentPlan,
		})
	}

	params := *result.Parameters
	plan, err := r.planner.Generate(ctx, params)
	if err != nil {
		return fallthroughWith(err)
	}

	due := r.now().AddDate(0, 0, params.DaysAvailable)

	// a lost record must not cost the user the plan
	if _, err := r.memory.Append(ctx, params.Subjects, params.HoursPerDay, params.DaysAvailable); err != nil {
		errutil.Handle(ctx, err, "failed to save study memory")
	}

	return handled(&model.RoutedReply{
		Reply:      composePlanReply(params.Subjects, plan, due),
		Intent:     model.IntentPlan,
		Parameters: &params,
	})
}

func (r *RouterUseCase) handleChat(ctx context.Context, msg model.IncomingMessage) *model.RoutedReply {
	text, err := r.responder.Respond(ctx, msg.Conversation())
	if err != nil {
		errutil.Handle(ctx, err, "failed to answer chat message")
		return &model.RoutedReply{Reply: ReplyChatFailure, Intent: model.IntentChat}
	}
	return &model.RoutedReply{Reply: text, Intent: model.IntentChat}
}

func askForMissing(report *model.MissingFieldsReport) string {
	phrases := make([]string, 0, len(report.Fields))
	for _, f := range report.Fields {
		phrases = append(phrases, missingFieldPhrases[f])
	}
	return replyAskPrefix + strings.Join(phrases, ", ") + "?"
}

func composePlanReply(subjects, plan string, due time.Time) string {
	return fmt.Sprintf("📚 Here's your personalized plan for %s:\n\n%s\n\n✅ I've logged this as a task due by %s.\n%s",
		subjects, plan, due.Format(dateLayout), replyCalendarOffer)
}
