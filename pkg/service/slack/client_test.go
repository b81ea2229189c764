package slack_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/studymate/pkg/service/slack"
)

func TestNew(t *testing.T) {
	t.Run("returns error when token is empty", func(t *testing.T) {
		_, err := slack.New("")
		gt.Value(t, err).NotNil()
	})

	t.Run("creates service when token is provided", func(t *testing.T) {
		svc, err := slack.New("test-token")
		gt.NoError(t, err).Required()
		gt.Value(t, svc).NotNil()
	})
}

func newFakeSlackAPI(t *testing.T, authCalls *atomic.Int32, posted *url.Values) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth.test", func(w http.ResponseWriter, r *http.Request) {
		authCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"user_id":"UBOT001","team_id":"T1"}`))
	})
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseForm())
		*posted = r.Form
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"channel":"C123","ts":"1700000000.000200"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetBotUserIDIsCached(t *testing.T) {
	var calls atomic.Int32
	var posted url.Values
	srv := newFakeSlackAPI(t, &calls, &posted)

	svc, err := slack.New("xoxb-test", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	ctx := context.Background()
	for range 3 {
		id, err := svc.GetBotUserID(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, id).Equal("UBOT001")
	}
	gt.Value(t, calls.Load()).Equal(int32(1))
}

func TestPostThreadReply(t *testing.T) {
	var calls atomic.Int32
	var posted url.Values
	srv := newFakeSlackAPI(t, &calls, &posted)

	svc, err := slack.New("xoxb-test", slack.WithAPIURL(srv.URL+"/"))
	gt.NoError(t, err).Required()

	err = svc.PostThreadReply(context.Background(), "C123", "1700000000.000100", "📭 You have no saved study history yet.")
	gt.NoError(t, err).Required()
	gt.Value(t, posted.Get("channel")).Equal("C123")
	gt.Value(t, posted.Get("thread_ts")).Equal("1700000000.000100")
	gt.Value(t, posted.Get("text")).Equal("📭 You have no saved study history yet.")
}

func TestTruncateToMaxBytes(t *testing.T) {
	gt.Value(t, slack.TruncateToMaxBytes("hello", 10)).Equal("hello")
	gt.Value(t, slack.TruncateToMaxBytes("hello", 3)).Equal("hel")
	// "📚" is four bytes and must not be split
	gt.Value(t, slack.TruncateToMaxBytes("a📚b", 3)).Equal("a")
	gt.Value(t, slack.TruncateToMaxBytes("a📚b", 5)).Equal("a📚")
}

func TestIntegration(t *testing.T) {
	token := os.Getenv("TEST_SLACK_BOT_TOKEN")
	if token == "" {
		t.Skip("TEST_SLACK_BOT_TOKEN is not set")
	}

	svc, err := slack.New(token)
	gt.NoError(t, err).Required()

	id, err := svc.GetBotUserID(context.Background())
	gt.NoError(t, err).Required()
	gt.String(t, id).NotEqual("")
}
