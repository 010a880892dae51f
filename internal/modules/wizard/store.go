package wizard

import (
	"time"

	"github.com/karlseguin/ccache/v3"
)

// Store keeps sessions in memory with a sliding TTL. Entries past their TTL
// or beyond maxSize are evicted.
type Store struct {
	cache *ccache.Cache[*Session]
	ttl   time.Duration
}

func NewStore(ttl time.Duration, maxSize int64) *Store {
	return &Store{
		cache: ccache.New(ccache.Configure[*Session]().MaxSize(maxSize)),
		ttl:   ttl,
	}
}

func (s *Store) Put(sess *Session) {
	s.cache.Set(sess.ID, sess, s.ttl)
}

// Get returns the session only to the owner who created it and refreshes
// its TTL.
func (s *Store) Get(ownerID int64, id string) (*Session, error) {
	item := s.cache.Get(id)
	if item == nil || item.Expired() {
		return nil, notFoundError()
	}
	sess := item.Value()
	if sess.OwnerID != ownerID {
		return nil, notFoundError()
	}
	item.Extend(s.ttl)
	return sess, nil
}

func (s *Store) Delete(ownerID int64, id string) error {
	if _, err := s.Get(ownerID, id); err != nil {
		return err
	}
	s.cache.Delete(id)
	return nil
}

func (s *Store) Stop() {
	s.cache.Stop()
}
