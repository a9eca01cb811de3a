package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu       sync.Mutex
	messages []Message
	err      error
}

func (s *recordingSender) Send(_ context.Context, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return s.err
}

func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func TestDispatcher_Welcome(t *testing.T) {
	sender := &recordingSender{}
	logger, _ := newTestLogger()
	d := NewDispatcher(sender, logger)

	d.Welcome("anand@example.com", "Anand")
	d.Wait()

	require.Len(t, sender.messages, 1)
	msg := sender.messages[0]
	assert.Equal(t, "anand@example.com", msg.To)
	assert.Equal(t, "Welcome to Ctrl-Alt-Del App!", msg.Subject)
	assert.Contains(t, msg.Text, "Dear Anand")
}

func TestDispatcher_Cancellation(t *testing.T) {
	sender := &recordingSender{}
	logger, _ := newTestLogger()
	d := NewDispatcher(sender, logger)

	d.Cancellation("anand@example.com", "Anand")
	d.Wait()

	require.Len(t, sender.messages, 1)
	assert.Equal(t, "Sorry to see you go!", sender.messages[0].Subject)
	assert.Contains(t, sender.messages[0].Text, "removed all of your tasks")
}

func TestDispatcher_SwallowsSenderErrors(t *testing.T) {
	sender := &recordingSender{err: errors.New("provider down")}
	logger, buf := newTestLogger()
	d := NewDispatcher(sender, logger)

	d.Welcome("anand@example.com", "Anand")
	d.Wait()

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "provider down")
}

type panickingSender struct{}

func (panickingSender) Send(context.Context, Message) error {
	panic("boom")
}

func TestDispatcher_RecoversFromPanics(t *testing.T) {
	logger, buf := newTestLogger()
	d := NewDispatcher(panickingSender{}, logger)

	d.Cancellation("anand@example.com", "Anand")
	d.Wait()

	assert.Contains(t, buf.String(), "email sender panicked")
}

func TestSendGridSender_Send(t *testing.T) {
	var (
		gotPath string
		gotAuth string
		gotBody []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	sender := newSendGridSenderWithHost("SG.test", "no-reply@ctrl-alt-del.com", server.URL)
	err := sender.Send(context.Background(), Message{
		To:      "anand@example.com",
		ToName:  "Anand",
		Subject: "Welcome to Ctrl-Alt-Del App!",
		Text:    "hello",
	})
	require.NoError(t, err)

	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Bearer SG.test", gotAuth)
	assert.Contains(t, string(gotBody), "Welcome to Ctrl-Alt-Del App!")
	assert.Contains(t, string(gotBody), "anand@example.com")
}

func TestSendGridSender_RejectedRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	sender := newSendGridSenderWithHost("SG.bad", "no-reply@ctrl-alt-del.com", server.URL)
	err := sender.Send(context.Background(), Message{To: "a@example.com", Subject: "s", Text: "t"})
	require.Error(t, err)
}

func TestLogSender_Send(t *testing.T) {
	logger, buf := newTestLogger()

	require.NoError(t, NewLogSender(logger).Send(context.Background(), Message{To: "a@example.com", Subject: "hi"}))
	assert.Contains(t, buf.String(), "dropping email")
}
