package wizard

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/onboarding-service/internal/domain"
)

// FetchFunc resolves a query to ranked lookup items.
type FetchFunc func(ctx context.Context, query string) ([]domain.LookupItem, error)

// SuggesterState is an observable snapshot of an autocomplete field.
type SuggesterState struct {
	Input          string              `json:"input"`
	Suggestions    []domain.LookupItem `json:"suggestions"`
	Open           bool                `json:"open"`
	Loading        bool                `json:"loading"`
	Error          string              `json:"error,omitempty"`
	HighlightIndex int                 `json:"highlightIndex"`
}

// Suggester turns a stream of keystrokes into at most one in-flight lookup.
// Each keystroke cancels the pending (not yet fired) lookup and reschedules;
// only the last-scheduled lookup per debounce window executes. A generation
// counter drops results of lookups superseded after dispatch.
type Suggester struct {
	fetch  FetchFunc
	window time.Duration

	mu          sync.Mutex
	timer       *time.Timer
	generation  uint64
	input       string
	suggestions []domain.LookupItem
	open        bool
	loading     bool
	errMsg      string
	highlight   int
}

// NewSuggester builds a suggester over the given lookup with the given
// debounce window.
func NewSuggester(fetch FetchFunc, window time.Duration) *Suggester {
	return &Suggester{fetch: fetch, window: window, highlight: -1}
}

// Search records a keystroke. An empty or whitespace value synchronously
// clears suggestions and closes the dropdown without waiting for the window.
func (s *Suggester) Search(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.input = value
	s.generation++

	if strings.TrimSpace(value) == "" {
		s.suggestions = nil
		s.open = false
		s.loading = false
		return
	}

	s.loading = true
	gen := s.generation
	s.timer = time.AfterFunc(s.window, func() {
		s.lookup(gen, value)
	})
}

func (s *Suggester) lookup(gen uint64, query string) {
	results, err := s.fetch(context.Background(), query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		// superseded by a later keystroke while in flight
		return
	}
	s.loading = false
	if err != nil {
		s.errMsg = "Failed to load suggestions"
		return
	}
	s.suggestions = results
	s.open = true
	s.errMsg = ""
}

// MoveHighlight moves the highlight by delta, clamped to the suggestion
// range. With no suggestions the highlight stays unset.
func (s *Suggester) MoveHighlight(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.suggestions) == 0 {
		s.highlight = -1
		return
	}
	next := s.highlight + delta
	if next < 0 {
		next = 0
	}
	if next > len(s.suggestions)-1 {
		next = len(s.suggestions) - 1
	}
	s.highlight = next
}

// CommitHighlighted commits the highlighted suggestion exactly as a click
// would. With the highlight unset nothing is committed.
func (s *Suggester) CommitHighlighted() (domain.LookupItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.highlight < 0 || s.highlight >= len(s.suggestions) {
		return domain.LookupItem{}, false
	}
	item := s.suggestions[s.highlight]
	s.commitLocked(item)
	return item, true
}

// Select commits a clicked suggestion.
func (s *Suggester) Select(item domain.LookupItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commitLocked(item)
}

func (s *Suggester) commitLocked(item domain.LookupItem) {
	s.input = item.Name
	s.suggestions = nil
	s.open = false
	s.highlight = -1
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

// Blur closes the dropdown on focus loss, preserving the committed input.
func (s *Suggester) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = nil
	s.open = false
	s.highlight = -1
}

// State returns an observable snapshot.
func (s *Suggester) State() SuggesterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	suggestions := make([]domain.LookupItem, len(s.suggestions))
	copy(suggestions, s.suggestions)
	return SuggesterState{
		Input:          s.input,
		Suggestions:    suggestions,
		Open:           s.open,
		Loading:        s.loading,
		Error:          s.errMsg,
		HighlightIndex: s.highlight,
	}
}

// Stop cancels any pending lookup.
func (s *Suggester) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}
