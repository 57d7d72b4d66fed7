package search

import (
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"traveladdicts/internal/domain"
)

const SessionHeader = "X-Search-Session"

// Session holds one visitor's tour and destination feeds between requests, so "load more"
// continues the list the visitor is looking at.
type Session struct {
	ID           string
	Tours        *Feed[domain.SearchTour]
	Destinations *Feed[domain.SearchDestination]

	mu                sync.Mutex
	toursQuery        string
	destinationsQuery string
}

// switchTours records the encoded query the tours feed now serves and reports whether
// it differs from the previous one.
func (s *Session) switchTours(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.toursQuery != key
	s.toursQuery = key
	return changed
}

func (s *Session) switchDestinations(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := s.destinationsQuery != key
	s.destinationsQuery = key
	return changed
}

type Sessions struct {
	mu       sync.Mutex
	cache    *gocache.Cache
	fallback bool
}

// NewSessions keeps idle sessions for ttl. With fallback set, feeds substitute canned
// results when the travel API fails.
func NewSessions(ttl time.Duration, fallback bool) *Sessions {
	return &Sessions{
		cache:    gocache.New(ttl, ttl/2),
		fallback: fallback,
	}
}

// Get returns the session for id, starting a new one when id is unknown or malformed.
func (s *Sessions) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	if v, ok := s.cache.Get(id); ok {
		sess := v.(*Session)
		s.cache.SetDefault(id, sess)
		return sess
	}

	sess := &Session{ID: id}
	if s.fallback {
		sess.Tours = NewFeed(FallbackTours)
		sess.Destinations = NewFeed(FallbackDestinations)
	} else {
		sess.Tours = NewFeed[domain.SearchTour](nil)
		sess.Destinations = NewFeed[domain.SearchDestination](nil)
	}
	s.cache.SetDefault(id, sess)
	return sess
}

func (s *Sessions) Count() int {
	return s.cache.ItemCount()
}
