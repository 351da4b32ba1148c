package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/nav"
)

// sectionMessage is pushed after every successful render.
type sectionMessage struct {
	Type  string `json:"type"`
	Index int    `json:"index"`
	Title string `json:"title"`
	Hash  string `json:"hash"`
}

func newSectionMessage(sec *deck.Section) sectionMessage {
	return sectionMessage{
		Type:  "section",
		Index: sec.Index(),
		Title: sec.Title(),
		Hash:  nav.FormatHash(sec.Index()),
	}
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// decodeInput reads {"type":"hash"|"key"|"swipe", ...} into a navigation input.
func decodeInput(data []byte) (nav.Input, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("invalid message format")
	}
	switch env.Type {
	case "hash":
		var in nav.HashChange
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("invalid hash message: %w", err)
		}
		return in, nil
	case "key":
		var in nav.KeyPress
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("invalid key message: %w", err)
		}
		return in, nil
	case "swipe":
		var in nav.Swipe
		if err := json.Unmarshal(data, &in); err != nil {
			return nil, fmt.Errorf("invalid swipe message: %w", err)
		}
		return in, nil
	default:
		return nil, fmt.Errorf("unknown message type: %q", env.Type)
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	control := s.cfg.ControlKey == "" || validKey(r.URL.Query().Get("key"), s.cfg.ControlKey)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	c := s.hub.register(conn, control)
	go c.writePump()

	var current *sectionMessage
	err = s.ctrl.Do(r.Context(), func(*nav.Navigator) {
		if sec := s.tut.Current(); sec != nil {
			m := newSectionMessage(sec)
			current = &m
		}
	})
	if err == nil && current != nil {
		s.hub.sendTo(c, current)
	}

	s.readPump(r, c)
}

func (s *Server) readPump(r *http.Request, c *client) {
	defer s.hub.unregister(c)
	log := s.log.With(zap.String("client", c.id))

	c.conn.SetReadLimit(maxWSMessage)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("websocket read", zap.Error(err))
			}
			return
		}

		in, err := decodeInput(data)
		if err != nil {
			s.hub.sendTo(c, errorMessage{Type: "error", Message: err.Error()})
			continue
		}
		if !c.control {
			s.hub.sendTo(c, errorMessage{Type: "error", Message: "control key required"})
			continue
		}
		if _, _, err := s.ctrl.Dispatch(r.Context(), in); err != nil {
			s.hub.sendTo(c, errorMessage{Type: "error", Message: err.Error()})
			if errors.Is(err, nav.ErrStopped) {
				return
			}
		}
	}
}
