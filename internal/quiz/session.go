package quiz

import "sync"

// Exam tracks supported by the bot.
const (
	ExamBoard = "12th Board"
	ExamUPSC  = "UPSC CSE"
)

// End reasons recorded when a session is torn down.
const (
	EndReasonCompleted = "completed"
	EndReasonStopped   = "stopped"
)

// Question is immutable once generated.
type Question struct {
	Text         string
	Options      []string
	CorrectIndex int
	Explanation  string
}

// Session is one group's quiz run. Immutable fields are set at creation;
// mutable state is guarded by the session's own mutex so a tick, a stop
// request and an answer event can observe it consistently.
type Session struct {
	GroupID   int64
	GroupName string
	ExamType  string
	Subject   string
	Questions []Question
	StartedBy int64

	mu          sync.Mutex
	cursor      int
	active      bool
	openPollIDs []string
}

func NewSession(groupID int64, groupName, examType, subject string, questions []Question, startedBy int64) *Session {
	return &Session{
		GroupID:   groupID,
		GroupName: groupName,
		ExamType:  examType,
		Subject:   subject,
		Questions: questions,
		StartedBy: startedBy,
		active:    true,
	}
}

func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Deactivate flips the session inactive and reports whether this call did the
// flip. Teardown belongs to whoever gets true; everyone else backs off.
func (s *Session) Deactivate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return false
	}
	s.active = false
	return true
}

func (s *Session) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// CurrentQuestion returns the question at the cursor, or ok=false when the
// question list is exhausted.
func (s *Session) CurrentQuestion() (Question, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cursor >= len(s.Questions) {
		return Question{}, s.cursor, false
	}
	return s.Questions[s.cursor], s.cursor, true
}

// Advance moves the cursor past the current question. Called once per tick,
// whether the poll was posted or skipped.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cursor++
}

// TrackPoll remembers a poll awaiting answers for this session.
func (s *Session) TrackPoll(pollID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openPollIDs = append(s.openPollIDs, pollID)
}

func (s *Session) OpenPollIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, len(s.openPollIDs))
	copy(ids, s.openPollIDs)
	return ids
}

// PollRecord maps a platform-assigned poll ID back to the question it carries.
type PollRecord struct {
	PollID        string
	GroupID       int64
	QuestionIndex int
}
