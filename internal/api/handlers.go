package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/minitut/internal/deck"
	"github.com/dgallion1/minitut/internal/nav"
)

const maxRequestBody = 4 << 10

type stateResponse struct {
	Current int    `json:"current"`
	Total   int    `json:"total"`
	Title   string `json:"title"`
	Hash    string `json:"hash"`
	Moved   *bool  `json:"moved,omitempty"`
}

type tocResponse struct {
	Groups      []deck.TOCGroup `json:"groups"`
	Collapsible bool            `json:"collapsible"`
	Visible     bool            `json:"visible"`
}

type navigateRequest struct {
	Index *int    `json:"index"`
	Hash  *string `json:"hash"`
}

// snapshot must run on the controller goroutine.
func (s *Server) snapshot(n *nav.Navigator) stateResponse {
	st := n.State()
	return stateResponse{
		Current: st.Current,
		Total:   st.Total,
		Title:   s.tut.Doc.Title(),
		Hash:    n.Location().Hash(),
	}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	var page string
	if err := s.ctrl.Do(r.Context(), func(*nav.Navigator) { page = s.tut.Doc.HTML() }); err != nil {
		s.controllerError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(page))
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var resp stateResponse
	if err := s.ctrl.Do(r.Context(), func(n *nav.Navigator) { resp = s.snapshot(n) }); err != nil {
		s.controllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTOC(w http.ResponseWriter, r *http.Request) {
	var resp tocResponse
	err := s.ctrl.Do(r.Context(), func(*nav.Navigator) {
		resp = tocResponse{
			Groups:      s.tut.TOC.Groups,
			Collapsible: s.tut.TOC.Collapsible(),
			Visible:     s.tut.TOC.MenuVisible(),
		}
	})
	if err != nil {
		s.controllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeBody(r, &req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Index == nil && req.Hash == nil {
		jsonError(w, "index or hash is required", http.StatusBadRequest)
		return
	}
	s.apply(w, r, func(n *nav.Navigator) bool {
		if req.Index != nil {
			n.RequestIndex(*req.Index)
			return true
		}
		return n.Handle(nav.HashChange{Hash: *req.Hash})
	})
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, (*nav.Navigator).Next)
}

func (s *Server) handlePrev(w http.ResponseWriter, r *http.Request) {
	s.apply(w, r, (*nav.Navigator).Prev)
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var k nav.KeyPress
	if err := decodeBody(r, &k); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if k.Code == "" {
		jsonError(w, "code is required", http.StatusBadRequest)
		return
	}
	s.apply(w, r, func(n *nav.Navigator) bool { return n.Handle(k) })
}

func (s *Server) handleSwipe(w http.ResponseWriter, r *http.Request) {
	var sw nav.Swipe
	if err := decodeBody(r, &sw); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if sw.Direction != nav.SwipeLeft && sw.Direction != nav.SwipeRight {
		jsonError(w, "direction must be left or right", http.StatusBadRequest)
		return
	}
	s.apply(w, r, func(n *nav.Navigator) bool { return n.Handle(sw) })
}

func (s *Server) handleTOCToggle(w http.ResponseWriter, r *http.Request) {
	var resp tocResponse
	err := s.ctrl.Do(r.Context(), func(*nav.Navigator) {
		resp = tocResponse{
			Groups:      s.tut.TOC.Groups,
			Collapsible: s.tut.TOC.Collapsible(),
			Visible:     s.tut.TOC.Toggle(),
		}
	})
	if err != nil {
		s.controllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// apply runs fn on the controller goroutine and replies with the new state.
func (s *Server) apply(w http.ResponseWriter, r *http.Request, fn func(n *nav.Navigator) bool) {
	var resp stateResponse
	err := s.ctrl.Do(r.Context(), func(n *nav.Navigator) {
		moved := fn(n)
		resp = s.snapshot(n)
		resp.Moved = &moved
	})
	if err != nil {
		s.controllerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) controllerError(w http.ResponseWriter, err error) {
	if errors.Is(err, nav.ErrStopped) {
		jsonError(w, "presenter is shutting down", http.StatusServiceUnavailable)
		return
	}
	jsonError(w, err.Error(), http.StatusServiceUnavailable)
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
