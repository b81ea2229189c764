package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/studymate/pkg/usecase"
	"github.com/secmon-lab/studymate/pkg/utils/async"
	"github.com/secmon-lab/studymate/pkg/utils/errutil"
	"github.com/secmon-lab/studymate/pkg/utils/logging"
	"github.com/secmon-lab/studymate/pkg/utils/safe"
	"github.com/slack-go/slack/slackevents"
)

const slackTimestampTolerance = 5 * time.Minute

// verifySlackSignature checks the v0 HMAC signature Slack attaches to every
// request and rejects timestamps outside the tolerance window.
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}

	if signature == "" {
		return goerr.New("missing signature")
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	skew := time.Since(time.Unix(ts, 0))
	if skew > slackTimestampTolerance || skew < -slackTimestampTolerance {
		return goerr.New("timestamp out of range", goerr.V("timestamp", timestamp), goerr.V("skew", skew.String()))
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expectedSignature := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedSignature), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware creates a middleware that verifies Slack request signatures
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}
			safe.Close(ctx, r.Body)

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "slack signature verification failed"), http.StatusUnauthorized)
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r)
		})
	}
}

// SlackWebhookHandler answers the Events API: URL verification inline and
// callback events in the background.
type SlackWebhookHandler struct {
	slackUC *usecase.SlackUseCase
}

func NewSlackWebhookHandler(slackUC *usecase.SlackUseCase) *SlackWebhookHandler {
	return &SlackWebhookHandler{
		slackUC: slackUC,
	}
}

// ServeHTTP handles Slack webhook requests
func (h *SlackWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// already verified by middleware
	body, err := io.ReadAll(r.Body)
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}

	eventsAPIEvent, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse slack event"), http.StatusBadRequest)
		return
	}

	switch eventsAPIEvent.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to unmarshal challenge"), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		safe.Write(ctx, w, []byte(challenge.Challenge))

	case slackevents.CallbackEvent:
		// Slack retries unless it gets a response within 3 seconds
		w.WriteHeader(http.StatusOK)

		if retry := r.Header.Get("X-Slack-Retry-Num"); retry != "" {
			logging.From(ctx).Info("skip slack retry", "retry", retry, "reason", r.Header.Get("X-Slack-Retry-Reason"))
			return
		}

		async.Dispatch(ctx, func(ctx context.Context) error {
			logger := logging.From(ctx)
			logger.Info("processing slack callback event",
				"type", eventsAPIEvent.Type,
				"team_id", eventsAPIEvent.TeamID,
			)

			if err := h.slackUC.HandleSlackEvent(ctx, &eventsAPIEvent); err != nil {
				return goerr.Wrap(err, "failed to handle slack event")
			}

			return nil
		})

	default:
		logger := logging.From(ctx)
		logger.Warn("unknown slack event type", "type", eventsAPIEvent.Type)
		w.WriteHeader(http.StatusOK)
	}
}
