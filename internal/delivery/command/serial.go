package command

import "sync"

// ChannelSerializer runs functions one at a time per channel while letting
// different channels proceed in parallel. Idle channels are dropped.
type ChannelSerializer struct {
	mu    sync.Mutex
	locks map[string]*channelLock
}

type channelLock struct {
	mu   sync.Mutex
	refs int
}

func NewChannelSerializer() *ChannelSerializer {
	return &ChannelSerializer{
		locks: make(map[string]*channelLock),
	}
}

func (s *ChannelSerializer) Do(channelID string, fn func()) {
	s.mu.Lock()
	l, ok := s.locks[channelID]
	if !ok {
		l = &channelLock{}
		s.locks[channelID] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	defer func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, channelID)
		}
		s.mu.Unlock()
	}()

	fn()
}

// Len reports how many channels currently have work queued or running.
func (s *ChannelSerializer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.locks)
}
