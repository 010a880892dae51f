package dashboard

import (
	"strconv"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"
)

type entry struct {
	mu    sync.Mutex
	state State
}

// Store keeps one dashboard state per owner with a sliding TTL.
type Store struct {
	cache *ccache.Cache[*entry]
	ttl   time.Duration
	mu    sync.Mutex
}

func NewStore(ttl time.Duration, maxSize int64) *Store {
	return &Store{
		cache: ccache.New(ccache.Configure[*entry]().MaxSize(maxSize)),
		ttl:   ttl,
	}
}

func key(ownerID int64) string {
	return strconv.FormatInt(ownerID, 10)
}

func (s *Store) entry(ownerID int64) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := s.cache.Get(key(ownerID))
	if item != nil && !item.Expired() {
		item.Extend(s.ttl)
		return item.Value()
	}
	e := &entry{state: NewState()}
	s.cache.Set(key(ownerID), e, s.ttl)
	return e
}

// Reset replaces the owner's state with a fresh one.
func (s *Store) Reset(ownerID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := &entry{state: NewState()}
	s.cache.Set(key(ownerID), e, s.ttl)
	return e.state
}

// Apply reduces every action into the owner's state and returns the result.
func (s *Store) Apply(ownerID int64, actions ...Action) State {
	e := s.entry(ownerID)
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, a := range actions {
		e.state = Reduce(e.state, a)
	}
	return e.state
}

func (s *Store) State(ownerID int64) State {
	return s.Apply(ownerID)
}

func (s *Store) Stop() {
	s.cache.Stop()
}
