package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/officecorner/hr-system/internal/infrastructure/notify"
)

// RealtimeHandler streams per-user push notifications over server-sent events.
type RealtimeHandler struct {
	hub    *notify.Hub
	logger zerolog.Logger
}

func NewRealtimeHandler(hub *notify.Hub, logger zerolog.Logger) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, logger: logger}
}

// Stream handles GET /api/notifications/stream. The connection stays open
// until the client disconnects; a reconnect replaces the prior session.
func (h *RealtimeHandler) Stream(c echo.Context) error {
	userID := currentUserID(c)
	if userID == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	msgs, unsubscribe := h.hub.Subscribe(userID)
	defer unsubscribe()

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				// Session replaced by a newer connection.
				return nil
			}
			payload, err := json.Marshal(msg.Payload)
			if err != nil {
				h.logger.Error().Err(err).Str("event", msg.Event).Msg("encode push payload")
				continue
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, payload); err != nil {
				return nil
			}
			w.Flush()
		}
	}
}
