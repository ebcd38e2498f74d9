package state

import "time"

// NoticeLevel distinguishes informational notices from failures.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeError
)

// Notice is a transient, auto-dismissing message scoped to one operation.
// It expires on its own; the user may dismiss it early.
type Notice struct {
	ID        int64
	Text      string
	Level     NoticeLevel
	ExpiresAt time.Time
}

// PushNotice records a notice that expires after ttl. Returns its id.
func (s *Store) PushNotice(text string, level NoticeLevel, ttl time.Duration) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNoticeID++
	id := s.nextNoticeID
	s.notices = append(s.notices, Notice{
		ID:        id,
		Text:      text,
		Level:     level,
		ExpiresAt: s.now().Add(ttl),
	})
	return id
}

// DismissNotice removes a notice before its expiry.
func (s *Store) DismissNotice(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.notices {
		if n.ID == id {
			s.notices = append(s.notices[:i], s.notices[i+1:]...)
			return
		}
	}
}

// Notices returns the notices still alive at read time. Expiry is evaluated
// on read rather than by a timer, so a snapshot read is always consistent
// with the clock.
func (s *Store) Notices() []Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	alive := s.notices[:0]
	for _, n := range s.notices {
		if n.ExpiresAt.After(now) {
			alive = append(alive, n)
		}
	}
	s.notices = alive
	if len(alive) == 0 {
		return nil
	}
	dup := make([]Notice, len(alive))
	copy(dup, alive)
	return dup
}
