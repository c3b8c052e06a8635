package handlers_test

import (
	"bufio"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"course_portal/internal/model"
	"course_portal/internal/sse"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// readEvent は "event:" と "data:" の組を1つ読む
func readEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()
	var event, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = strings.TrimPrefix(line, "data: ")
		case line == "" && event != "":
			return event, data
		}
	}
}

func TestEventsHandler_StreamAccount(t *testing.T) {
	accountID := uuid.New()
	env := newTestEnv(t, true)

	client := env.hub.Subscribe(accountID)
	initial := &sse.Message{
		Channel: sse.AccountChannel(accountID),
		Event:   sse.EventAccountUpdated,
		Data:    &model.AccountResponse{AccountID: accountID, PaymentStatus: model.PaymentPending},
	}
	env.accounts.On("Subscribe", mock.Anything, accountID).Return(client, initial, nil).Once()
	unsubscribed := make(chan struct{})
	env.accounts.On("Unsubscribe", client).Run(func(mock.Arguments) {
		env.hub.CloseClient(client)
		close(unsubscribed)
	}).Once()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// EventSource はヘッダーを付けられないのでクエリでトークンを渡す
	url := env.server.URL + "/api/v1/me/events?access_token=" + signToken(t, env.cfg, accountID, time.Hour)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	require.NoError(t, err)

	resp, err := env.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	event, data := readEvent(t, reader)
	assert.Equal(t, string(sse.EventAccountUpdated), event)
	assert.Contains(t, data, `"payment_status":"pending"`)

	// 管理者がコースを付与した
	env.hub.PublishAccount(accountID, &model.AccountResponse{AccountID: accountID, PaymentStatus: model.PaymentPaid})
	event, data = readEvent(t, reader)
	assert.Equal(t, string(sse.EventAccountUpdated), event)
	assert.Contains(t, data, `"payment_status":"paid"`)

	cancel()
	select {
	case <-unsubscribed:
	case <-time.After(5 * time.Second):
		t.Fatal("stream was not unsubscribed after the client went away")
	}
	assert.Equal(t, 0, env.hub.Subscribers(sse.AccountChannel(accountID)))
}

func TestEventsHandler_RequiresAuth(t *testing.T) {
	env := newTestEnv(t, true)
	sendRequest(t, env.server, httpRequestDetails{Method: http.MethodGet, Path: "/api/v1/me/events?access_token=garbage"},
		httpResponseExpectations{ExpectedCode: http.StatusUnauthorized, ExpectedErrorCode: "UNAUTHENTICATED"})
}
