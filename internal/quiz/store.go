package quiz

import "sync"

// Store is the in-memory registry of sessions and poll records. State is
// process-local; a restart loses all running quizzes.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
	polls    map[string]PollRecord
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
		polls:    make(map[string]PollRecord),
	}
}

// CreateSession registers a session for its group. It fails with
// ErrAlreadyActive while an active session exists; a leftover inactive
// session is as good as deleted and gets replaced.
func (st *Store) CreateSession(s *Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if existing, ok := st.sessions[s.GroupID]; ok && existing.Active() {
		return ErrAlreadyActive
	}
	st.sessions[s.GroupID] = s
	return nil
}

func (st *Store) Session(groupID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[groupID]
	return s, ok
}

// DeleteSession removes a session and the poll records it still owns.
// Safe to call for a group with no session.
func (st *Store) DeleteSession(groupID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[groupID]
	if !ok {
		return
	}
	for _, pollID := range s.OpenPollIDs() {
		delete(st.polls, pollID)
	}
	delete(st.sessions, groupID)
}

// Remove deletes the given session only if it is still the one registered
// for its group. Teardown uses this so it can never delete a successor
// created after this session went inactive.
func (st *Store) Remove(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.sessions[s.GroupID] != s {
		return
	}
	for _, pollID := range s.OpenPollIDs() {
		delete(st.polls, pollID)
	}
	delete(st.sessions, s.GroupID)
}

func (st *Store) PutPoll(rec PollRecord) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.polls[rec.PollID] = rec
}

func (st *Store) Poll(pollID string) (PollRecord, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	rec, ok := st.polls[pollID]
	return rec, ok
}

// ActiveCount reports how many groups currently run a quiz.
func (st *Store) ActiveCount() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	count := 0
	for _, s := range st.sessions {
		if s.Active() {
			count++
		}
	}
	return count
}
