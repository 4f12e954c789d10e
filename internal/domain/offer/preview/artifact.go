package preview

import (
	"fmt"
	"log"
	"os"
)

// Artifact is a rendered document as returned by the render collaborator:
// opaque bytes plus the server-suggested filename.
type Artifact struct {
	Filename string
	Data     []byte
}

// Handle is an owned, materialized preview artifact. Exactly one live
// handle exists per preview slot; whoever installs a new one releases the
// old one first. Release is idempotent.
type Handle struct {
	Filename string
	Path     string

	released bool
}

// Release removes the spooled file. Safe to call on a nil handle and safe
// to call twice.
func (h *Handle) Release() {
	if h == nil || h.released {
		return
	}
	h.released = true
	if err := os.Remove(h.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("preview: release %s failed: %v", h.Path, err)
	}
}

// Store spools rendered artifacts to a local directory so the UI can serve
// them while the controller owns their lifetime.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("preview spool dir: %w", err)
	}
	return &Store{Dir: dir}, nil
}

// Materialize writes the artifact to a fresh spool file and hands the
// caller the owning handle.
func (s *Store) Materialize(a *Artifact) (*Handle, error) {
	f, err := os.CreateTemp(s.Dir, "preview-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("spool preview: %w", err)
	}
	if _, err := f.Write(a.Data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("spool preview: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return nil, fmt.Errorf("spool preview: %w", err)
	}
	return &Handle{Filename: a.Filename, Path: f.Name()}, nil
}
