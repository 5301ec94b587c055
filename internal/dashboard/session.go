// Package dashboard runs render passes: it owns each browser session's
// selection and retained chart state and sequences load, aggregation,
// filtering and the views.
package dashboard

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru"

	"sales-dashboard/internal/views"
)

// Selection is the product filter shared by every view. Toggle is its only
// mutator.
type Selection struct {
	product string
}

// Toggle selects product, or clears the selection when product is already
// selected. It returns the new selection.
func (s *Selection) Toggle(product string) string {
	if s.product == product {
		s.product = ""
	} else {
		s.product = product
	}
	return s.product
}

// Current returns the selected product, or "" when none is.
func (s *Selection) Current() string { return s.product }

// Session is one browser's dashboard: its selection, the retained element
// sets of its views and the generation of its latest render pass.
type Session struct {
	ID string

	mu         sync.Mutex
	selection  Selection
	generation atomic.Uint64
	rendered   bool

	bar    *views.BarView
	bubble *views.BubbleView
	donut  *views.DonutView
}

func newSession(id string, layout views.Layout) *Session {
	return &Session{
		ID:     id,
		bar:    views.NewBarView(layout),
		bubble: views.NewBubbleView(layout),
		donut:  views.NewDonutView(layout),
	}
}

// Toggle flips the selection for product and returns the new selection.
func (s *Session) Toggle(product string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Toggle(product)
}

func (s *Session) Selected() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Current()
}

func (s *Session) Generation() uint64 { return s.generation.Load() }

// Sessions is a bounded store of sessions. The least recently used session
// is evicted when the store is full.
type Sessions struct {
	mu     sync.Mutex
	cache  *lru.Cache
	layout views.Layout
}

func NewSessions(size int, layout views.Layout) (*Sessions, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Sessions{cache: cache, layout: layout}, nil
}

// GetOrCreate returns the session for id, creating it when unknown. A
// well-formed id whose session was evicted is reused; anything else gets a
// fresh id. created reports whether a new session was made.
func (s *Sessions) GetOrCreate(id string) (sess *Session, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		if v, ok := s.cache.Get(id); ok {
			return v.(*Session), false
		}
	}
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	sess = newSession(id, s.layout)
	s.cache.Add(id, sess)
	return sess, true
}

func (s *Sessions) Len() int { return s.cache.Len() }

type sessionContextKey struct{}

func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFrom returns the session attached to ctx, or nil.
func SessionFrom(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
