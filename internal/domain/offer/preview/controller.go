package preview

import (
	"context"
	"log"
	"sync"

	"handwerk/portal_backend/internal/domain/offer"
)

// State of the preview slot.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRequesting:
		return "requesting"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Controller keeps the rendered preview in sync with the draft. It decides
// whether to re-render purely from the draft fingerprint, supersedes any
// in-flight render when a newer fingerprint arrives, and owns the lifetime
// of the single live artifact handle.
//
// Ordering guarantee: each render carries a generation number taken while
// the fingerprint was recorded; a response only installs if its generation
// is still current. A slow response to an old draft can therefore never
// overwrite the result of a newer one.
type Controller struct {
	renderer Renderer
	store    *Store

	mu      sync.Mutex
	gen     uint64
	lastKey string
	state   State
	current *Handle
	cancel  context.CancelFunc
	closed  bool
}

func NewController(renderer Renderer, store *Store) *Controller {
	return &Controller{renderer: renderer, store: store}
}

// Sync brings the preview up to date with the draft. It returns once the
// render it issued has settled or been superseded; callers drive it from
// their own goroutine per edit. Render failures are absorbed: the slot
// goes to StateFailed and the next fingerprint change retries from
// scratch.
func (c *Controller) Sync(ctx context.Context, d *offer.Draft) {
	// No customer or no offer number means there is nothing to preview;
	// whatever was displayed before must go away too.
	if d.Customer.ID == "" || d.Number == "" {
		c.mu.Lock()
		c.supersedeLocked()
		c.clearLocked()
		c.state = StateIdle
		c.mu.Unlock()
		return
	}

	key := d.Fingerprint()
	snapshot := d.Clone()

	c.mu.Lock()
	if c.closed || key == c.lastKey {
		c.mu.Unlock()
		return
	}
	c.supersedeLocked()
	c.gen++
	gen := c.gen
	c.lastKey = key
	c.state = StateRequesting
	rctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	art, err := c.renderer.Render(rctx, snapshot)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen || c.closed {
		// superseded; the result belongs to a draft nobody wants anymore
		return
	}
	if err != nil {
		log.Printf("preview: render failed: %v", err)
		c.clearLocked()
		c.state = StateFailed
		return
	}
	h, err := c.store.Materialize(art)
	if err != nil {
		log.Printf("preview: %v", err)
		c.clearLocked()
		c.state = StateFailed
		return
	}
	old := c.current
	c.current = h
	old.Release()
	c.state = StateSucceeded
}

// Current returns the live handle, or nil when no preview is installed.
// The controller keeps ownership; callers must not release it.
func (c *Controller) Current() *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close releases whatever handle is held and suppresses any in-flight
// render. Unconditional; called on editor teardown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.supersedeLocked()
	c.clearLocked()
	c.state = StateIdle
}

// supersedeLocked marks any in-flight render as aborted. Its response is
// ignored via the generation compare; the cancel additionally stops the
// transport call early when it can.
func (c *Controller) supersedeLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) clearLocked() {
	if c.current != nil {
		c.current.Release()
		c.current = nil
	}
	c.lastKey = ""
}
