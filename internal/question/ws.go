package question

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
	ws "github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

const (
	wsReadLimit   = 64 << 10
	wsIdleTimeout = 5 * time.Minute
	wsWriteWait   = 10 * time.Second
)

// HandleQuizSocket upgrades to a WebSocket and serves quiz questions one
// next_question message at a time. The payload of next_question is the same
// body accepted by POST /api/v1.1/quizzes.
func (h *HTTPHandler) HandleQuizSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	logger := logging.FromContext(r.Context())
	conn.SetReadLimit(wsReadLimit)

	for {
		_ = conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))
		var msg ws.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug().Err(err).Msg("quiz socket closed")
			}
			return
		}

		var reply ws.Message
		switch msg.Type {
		case ws.TypePing:
			reply, err = ws.NewMessage(ws.TypePong, msg.RequestID, nil)
		case ws.TypeNextQuestion:
			reply, err = h.socketQuizReply(r, msg)
		default:
			reply, err = badRequestMessage(msg.RequestID)
		}
		if err != nil {
			logger.Error().Err(err).Msg("quiz socket reply encoding failed")
			return
		}

		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			logger.Debug().Err(err).Msg("quiz socket write failed")
			return
		}
	}
}

func (h *HTTPHandler) socketQuizReply(r *http.Request, msg ws.Message) (ws.Message, error) {
	var req quizRequest
	if len(msg.Payload) == 0 || json.Unmarshal(msg.Payload, &req) != nil {
		return badRequestMessage(msg.RequestID)
	}
	payload, err := h.playQuiz(r, req)
	if err != nil {
		logging.FromContext(r.Context()).Debug().Err(err).Msg("quiz socket request rejected")
		return badRequestMessage(msg.RequestID)
	}
	return ws.NewMessage(ws.TypeQuizQuestion, msg.RequestID, payload)
}

func badRequestMessage(requestID string) (ws.Message, error) {
	return ws.NewMessage(ws.TypeError, requestID, ws.ErrorPayload{Message: httperrors.MsgBadRequest})
}
