package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/domain/model"
	"github.com/secmon-lab/studymate/pkg/usecase"
)

func TestPlanGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	params := model.StudyParameters{Subjects: "Math and Physics", HoursPerDay: 2, DaysAvailable: 3}

	t.Run("returns the model text verbatim", func(t *testing.T) {
		plan := "📅 Day 1:\n- 30 mins: Review notes\n- 15 mins: Break"
		comp := newScriptedCompletion(map[completionKind]scriptedResponse{kindPlan: {text: plan}})

		got, err := usecase.NewPlanGenerator(comp, "plan-model").Generate(ctx, params)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal(plan)

		req := comp.lastRequest(kindPlan)
		gt.Value(t, req).NotNil().Required()
		gt.Value(t, req.Model).Equal("plan-model")
		gt.Value(t, req.Temperature).Equal(0.7)
		gt.String(t, req.Messages[1].Content).Contains("following subjects: Math and Physics.")
		gt.String(t, req.Messages[1].Content).Contains("has 2 hours per day")
		gt.String(t, req.Messages[1].Content).Contains("study for 3 days.")
	})

	t.Run("empty text is an error", func(t *testing.T) {
		comp := newScriptedCompletion(map[completionKind]scriptedResponse{kindPlan: {text: " \n\t"}})

		_, err := usecase.NewPlanGenerator(comp, "").Generate(ctx, params)
		gt.Bool(t, errors.Is(err, usecase.ErrEmptyCompletion)).True()
	})

	t.Run("invalid parameters are rejected before calling the model", func(t *testing.T) {
		comp := newScriptedCompletion(map[completionKind]scriptedResponse{kindPlan: {text: "plan"}})

		_, err := usecase.NewPlanGenerator(comp, "").Generate(ctx, model.StudyParameters{Subjects: "Math"})
		gt.Value(t, err).NotNil()
		gt.Array(t, comp.kinds).Length(0)
	})
}

func TestResponder_Respond(t *testing.T) {
	ctx := context.Background()
	history := []model.Message{
		{Role: model.RoleSystem, Content: "Be brief."},
		{Role: model.RoleUser, Content: "What is entropy?"},
	}

	t.Run("passes history through", func(t *testing.T) {
		comp := newScriptedCompletion(map[completionKind]scriptedResponse{
			kindSummary: {text: "A measure of disorder."},
		})

		got, err := usecase.NewResponder(comp, "chat-model").Respond(ctx, history)
		gt.NoError(t, err).Required()
		gt.Value(t, got).Equal("A measure of disorder.")
		gt.Value(t, comp.requests[0].Messages).Equal(history)
		gt.Value(t, comp.requests[0].Temperature).Equal(0.5)
	})

	t.Run("empty reply is an error", func(t *testing.T) {
		comp := newScriptedCompletion(map[completionKind]scriptedResponse{kindSummary: {text: ""}})

		_, err := usecase.NewResponder(comp, "").Respond(ctx, history)
		gt.Bool(t, errors.Is(err, usecase.ErrEmptyCompletion)).True()
	})
}
