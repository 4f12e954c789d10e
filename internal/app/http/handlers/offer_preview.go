package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"handwerk/portal_backend/internal/domain/offer/preview"
)

// previewSessions holds one preview controller per offer number. A session
// exists from the first preview push until the editor tears it down.
type previewSessions struct {
	renderer preview.Renderer
	store    *preview.Store

	mu sync.Mutex
	m  map[string]*preview.Controller
}

func newPreviewSessions(renderer preview.Renderer, store *preview.Store) *previewSessions {
	return &previewSessions{
		renderer: renderer,
		store:    store,
		m:        make(map[string]*preview.Controller),
	}
}

func (s *previewSessions) get(number string) *preview.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.m[number]
	if !ok {
		c = preview.NewController(s.renderer, s.store)
		s.m[number] = c
	}
	return c
}

func (s *previewSessions) drop(number string) {
	s.mu.Lock()
	c := s.m[number]
	delete(s.m, number)
	s.mu.Unlock()
	if c != nil {
		c.Close()
	}
}

// PushPreview feeds the current draft into the offer's preview slot. The
// controller decides from the fingerprint whether a re-render is needed;
// the response reports the slot state either way.
func (h *Handlers) PushPreview(w http.ResponseWriter, r *http.Request) {
	var req renderOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	number := strings.TrimSpace(req.Meta.OfferNumber)
	if number == "" {
		http.Error(w, "offer number required", http.StatusBadRequest)
		return
	}

	ctrl := h.Previews.get(number)
	ctrl.Sync(r.Context(), draftFromRequest(req))

	current := ctrl.Current()
	resp := map[string]any{"state": ctrl.State().String()}
	if current != nil {
		resp["filename"] = current.Filename
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetPreview serves the currently installed artifact, or 202 while the
// slot has nothing to show. Failure is not surfaced as an error; the
// editor keeps its "generating" placeholder until a later push succeeds.
func (h *Handlers) GetPreview(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("number"))
	if number == "" {
		http.Error(w, "offer number required", http.StatusBadRequest)
		return
	}
	current := h.Previews.get(number).Current()
	if current == nil {
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte("generating"))
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, current.Path)
}

// ClosePreview tears the offer's preview session down, releasing whatever
// artifact it still holds.
func (h *Handlers) ClosePreview(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("number"))
	if number == "" {
		http.Error(w, "offer number required", http.StatusBadRequest)
		return
	}
	h.Previews.drop(number)
	w.WriteHeader(http.StatusNoContent)
}
