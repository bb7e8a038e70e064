package question_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/pkg/http/ws"
)

func dialQuizSocket(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(baseURL, "http") + "/ws/quizzes"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestQuizSocketServesQuestions(t *testing.T) {
	srv, _ := newTestAPI(t, nil)
	conn := dialQuizSocket(t, srv.URL)

	require.NoError(t, conn.WriteJSON(ws.Message{
		Type:      ws.TypeNextQuestion,
		RequestID: "r1",
		Payload:   json.RawMessage(`{"previous_questions":[1],"quiz_category":{"id":"0"},"questionsPerPlay":2}`),
	}))

	var reply ws.Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ws.TypeQuizQuestion, reply.Type)
	assert.Equal(t, "r1", reply.RequestID)

	var payload struct {
		Question struct {
			ID int64 `json:"id"`
		} `json:"question"`
		TotalQueAnswered int  `json:"total_que_answered"`
		Success          bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(reply.Payload, &payload))
	assert.True(t, payload.Success)
	assert.Equal(t, int64(3), payload.Question.ID)
	assert.Equal(t, 2, payload.TotalQueAnswered)
}

func TestQuizSocketPingAndErrors(t *testing.T) {
	srv, _ := newTestAPI(t, nil)
	conn := dialQuizSocket(t, srv.URL)

	require.NoError(t, conn.WriteJSON(ws.Message{Type: ws.TypePing, RequestID: "p"}))
	var reply ws.Message
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ws.TypePong, reply.Type)

	require.NoError(t, conn.WriteJSON(ws.Message{
		Type:    ws.TypeNextQuestion,
		Payload: json.RawMessage(`{"quiz_category":{"id":"all"}}`),
	}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ws.TypeError, reply.Type)
	assert.JSONEq(t, `{"message":"bad request"}`, string(reply.Payload))

	require.NoError(t, conn.WriteJSON(ws.Message{Type: "shuffle"}))
	require.NoError(t, conn.ReadJSON(&reply))
	assert.Equal(t, ws.TypeError, reply.Type)
}
