package conversation

import "sync"

// Session is one user's in-flight flow. There is at most one session per
// user; beginning a new flow replaces whatever was active.
type Session struct {
	UserID          int64
	State           State
	Draft           *Draft
	ReportListingID string
}

// Store keeps active sessions keyed by user id. Handlers run one event per
// user at a time (the transport loop is sequential), so the store only guards
// its own map.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Begin creates a fresh session for the user, replacing any active one.
func (s *Store) Begin(userID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	session := &Session{UserID: userID, State: StateIdle}
	s.sessions[userID] = session
	return session
}

func (s *Store) Get(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	return session, ok
}

// End discards the user's session.
func (s *Store) End(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
