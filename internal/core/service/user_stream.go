package service

import (
	"sync"

	"github.com/shopmanagement/portal/internal/core/domain"
)

// userStream holds the current user and fans every change out to
// subscribers. Each subscriber sees the latest value; intermediate values may
// be skipped when it reads slowly.
type userStream struct {
	mu   sync.Mutex
	cur  *domain.User
	subs map[int]chan *domain.User
	next int
}

func newUserStream(initial *domain.User) *userStream {
	return &userStream{cur: initial, subs: make(map[int]chan *domain.User)}
}

func (s *userStream) current() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	u := *s.cur
	return &u
}

func (s *userStream) publish(u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = u
	for _, ch := range s.subs {
		offer(ch, u)
	}
}

func (s *userStream) subscribe() (<-chan *domain.User, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	ch := make(chan *domain.User, 1)
	ch <- s.cur
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// offer replaces any unread value; called with the stream lock held so it
// never blocks.
func offer(ch chan *domain.User, u *domain.User) {
	select {
	case <-ch:
	default:
	}
	ch <- u
}
