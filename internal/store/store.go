package store

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"sceneforge/internal/scene"
)

// Generation tags one generation attempt so its completion events and history
// record can be correlated.
type Generation struct {
	ID      string
	Prompt  string
	Started time.Time
}

// Store holds the one current SceneDescription. Completions replace it
// unconditionally, so when requests overlap, whichever resolves last is what
// Current returns. Descriptions are deep-copied on the way in and out; a
// stored value can never be mutated through a snapshot or a retained input.
type Store struct {
	mu       sync.Mutex
	current  scene.SceneDescription
	hasScene bool
	seq      uint64
	pending  int
	lastErr  error
}

// New returns an empty Store.
func New() *Store {
	return &Store{}
}

// Begin registers a generation attempt and returns its tag. Every Begin must
// be paired with exactly one Complete or Fail.
func (s *Store) Begin(prompt string) Generation {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()
	return Generation{ID: uuid.NewString(), Prompt: prompt, Started: time.Now()}
}

// Complete replaces the current scene with desc and returns the new sequence
// number. The previous scene is discarded wholesale.
func (s *Store) Complete(desc scene.SceneDescription) uint64 {
	copied := deepCopy(desc)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending > 0 {
		s.pending--
	}
	s.current = copied
	s.hasScene = true
	s.seq++
	s.lastErr = nil
	return s.seq
}

// Fail records a generation failure. The current scene stays as it was.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending > 0 {
		s.pending--
	}
	s.lastErr = err
}

// Current returns a deep copy of the current scene, its sequence number, and
// whether any generation has completed yet.
func (s *Store) Current() (scene.SceneDescription, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deepCopy(s.current), s.seq, s.hasScene
}

// Pending returns how many generations are in flight; non-zero drives the
// loading indicator.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastError returns the most recent generation failure, cleared by the next
// successful completion.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// deepCopy clones a description including its shape slice and the pointer
// fields inside each shape.
func deepCopy(desc scene.SceneDescription) scene.SceneDescription {
	var out scene.SceneDescription
	_ = copier.CopyWithOption(&out, &desc, copier.Option{DeepCopy: true})
	return out
}
