package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

// ClientMessage is the envelope of every message sent to /v1/assist.
type ClientMessage struct {
	Type string          `json:"type"` // "parse", "complete", "ping"
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data,omitempty"`
}

// ServerMessage is the envelope of every message sent by /v1/assist.
type ServerMessage struct {
	Type      string `json:"type"` // "session", "tree", "completions", "pong", "error"
	RequestID string `json:"request_id,omitempty"`
	Data      any    `json:"data,omitempty"`
}

type SessionData struct {
	SessionID string `json:"session_id"`
	Version   string `json:"version"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type session struct {
	ID        string
	CreatedAt time.Time
	Requests  int
}

func (s *Server) openSession() *session {
	sess := &session{ID: uuid.New().String(), CreatedAt: time.Now()}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	s.metrics.sessions.Inc()
	return sess
}

func (s *Server) closeSession(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	s.mu.Unlock()
	s.metrics.sessions.Dec()
	log.Debugf("session %s closed after %d request(s)", sess.ID, sess.Requests)
}

// handleAssist upgrades to a websocket and answers parse and complete
// requests until the client goes away.
func (s *Server) handleAssist(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.cfg.OriginPatterns,
	})
	if err != nil {
		log.Warningf("websocket accept: %s", err)
		return
	}
	defer conn.CloseNow()

	s.metrics.requests.WithLabelValues("assist").Inc()
	sess := s.openSession()
	defer s.closeSession(sess)
	ctx := r.Context()

	s.send(ctx, conn, ServerMessage{
		Type: "session",
		Data: SessionData{SessionID: sess.ID, Version: s.cfg.Version.String()},
	})

	for {
		var msg ClientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			if status := websocket.CloseStatus(err); status != -1 {
				log.Debugf("session %s: connection closed: %d", sess.ID, status)
			}
			return
		}
		sess.Requests++

		switch msg.Type {
		case "parse":
			s.handleAssistParse(ctx, conn, msg)
		case "complete":
			s.handleAssistComplete(ctx, conn, msg)
		case "ping":
			s.send(ctx, conn, ServerMessage{Type: "pong", RequestID: msg.ID})
		default:
			s.sendError(ctx, conn, msg.ID, "unknown_type", fmt.Sprintf("unknown message type: %s", msg.Type))
		}
	}
}

func (s *Server) handleAssistParse(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	var req ParseRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.sendError(ctx, conn, msg.ID, "invalid_data", "invalid parse data")
		return
	}
	resp, err := s.parseResult(req)
	if err != nil {
		s.sendError(ctx, conn, msg.ID, "invalid_version", err.Error())
		return
	}
	s.send(ctx, conn, ServerMessage{Type: "tree", RequestID: msg.ID, Data: resp})
}

func (s *Server) handleAssistComplete(ctx context.Context, conn *websocket.Conn, msg ClientMessage) {
	var req CompleteRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		s.sendError(ctx, conn, msg.ID, "invalid_data", "invalid complete data")
		return
	}
	items, err := s.complete(req)
	if err != nil {
		s.sendError(ctx, conn, msg.ID, "invalid_request", err.Error())
		return
	}
	s.send(ctx, conn, ServerMessage{
		Type:      "completions",
		RequestID: msg.ID,
		Data:      CompleteResponse{Items: items},
	})
}

func (s *Server) send(ctx context.Context, conn *websocket.Conn, msg ServerMessage) {
	if err := wsjson.Write(ctx, conn, msg); err != nil {
		log.Warningf("websocket write: %s", err)
	}
}

func (s *Server) sendError(ctx context.Context, conn *websocket.Conn, requestID, code, message string) {
	s.send(ctx, conn, ServerMessage{
		Type:      "error",
		RequestID: requestID,
		Data: ErrorData{
			Code:    code,
			Message: message,
		},
	})
}
