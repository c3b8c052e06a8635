// internal/handlers/events_handler.go
package handlers

import (
	"net/http"

	"course_portal/internal/middleware"
	"course_portal/internal/service"
	"course_portal/internal/sse"
	"course_portal/internal/webutil"
)

// EventsHandler は自分のアカウントの変更 (コース付与など) を SSE で流す
type EventsHandler struct {
	service service.AccountService
	hub     *sse.Hub
}

func NewEventsHandler(s service.AccountService, hub *sse.Hub) *EventsHandler {
	return &EventsHandler{service: s, hub: hub}
}

// StreamAccount は最初に現在のアカウントを送り、以降は変更のたびに account.updated を送る
func (h *EventsHandler) StreamAccount(w http.ResponseWriter, r *http.Request) {
	logger := middleware.GetLogger(r.Context())

	accountID, err := middleware.GetAccountIDFromContext(r.Context())
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	client, initial, err := h.service.Subscribe(r.Context(), accountID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}
	defer h.service.Unsubscribe(client)

	h.hub.ServeHTTP(w, r, client, initial)
	logger.Info("Account change stream closed", "client_id", client.ID)
}
