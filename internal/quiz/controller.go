package quiz

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/komresu/quizonomics/pkg/logger"
)

// QuestionSource produces questions from the generation service. A failure is
// returned, never panicked; the controller falls back to the bank.
type QuestionSource interface {
	Fetch(subject, difficulty string, count int) ([]Question, error)
}

// FallbackBank synthesizes questions from pre-authored seeds when the
// generation service is unavailable.
type FallbackBank interface {
	Synthesize(subject string, count int) ([]Question, error)
}

// Messenger is the slice of the chat platform the controller needs.
type Messenger interface {
	SendQuizPoll(groupID int64, question string, options []string, correctIndex, openSeconds int, explanation string) (string, error)
	SendGroupMessage(groupID int64, text string) error
	MemberDisplayName(groupID, userID int64) (string, error)
}

// AuditLog receives fire-and-forget lifecycle events. Implementations must
// never return or propagate errors.
type AuditLog interface {
	QuizStarted(groupID int64, groupName, examType, subject string, startedBy int64, usedFallback bool)
	QuizStopped(groupID int64, groupName string, participants, topScore int, reason string)
}

// RunSummary is the durable record of a finished session.
type RunSummary struct {
	GroupID       int64
	GroupName     string
	ExamType      string
	Subject       string
	StartedBy     int64
	QuestionCount int
	Participants  int
	TopScore      int
	EndReason     string
}

// RunRecorder persists run summaries. Best-effort; may be left nil when the
// bot runs without a database.
type RunRecorder interface {
	RecordRun(run RunSummary)
}

// ControllerConfig wires the controller's collaborators and tuning.
type ControllerConfig struct {
	Store     *Store
	Scores    *ScoreBoard
	Scheduler *Scheduler
	Source    QuestionSource
	Bank      FallbackBank
	Messenger Messenger
	Audit     AuditLog
	History   RunRecorder // optional

	QuestionCount int
	PostInterval  time.Duration
	InitialDelay  time.Duration
	PollOpenSec   int
}

// Controller drives the group quiz lifecycle: start, repeated poll posting,
// answer scoring and teardown.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	scores  *ScoreBoard
	sched   *Scheduler
	source  QuestionSource
	bank    FallbackBank
	msgr    Messenger
	audit   AuditLog
	history RunRecorder

	questionCount int
	postInterval  time.Duration
	initialDelay  time.Duration
	pollOpenSec   int
}

func NewController(c ControllerConfig) *Controller {
	return &Controller{
		store:         c.Store,
		scores:        c.Scores,
		sched:         c.Scheduler,
		source:        c.Source,
		bank:          c.Bank,
		msgr:          c.Messenger,
		audit:         c.Audit,
		history:       c.History,
		questionCount: c.QuestionCount,
		postInterval:  c.PostInterval,
		initialDelay:  c.InitialDelay,
		pollOpenSec:   c.PollOpenSec,
	}
}

func difficultyFor(examType string) string {
	if examType == ExamUPSC {
		return "advanced"
	}
	return "medium"
}

// StartSession creates a session for the group and schedules its question
// ticks. Question generation happens between the active-check and session
// creation, so the AlreadyActive guard is enforced again at creation time.
func (c *Controller) StartSession(groupID int64, groupName, examType, subject string, startedBy int64) error {
	c.mu.Lock()
	if existing, ok := c.store.Session(groupID); ok && existing.Active() {
		c.mu.Unlock()
		return ErrAlreadyActive
	}
	c.scores.Reset(groupID)
	c.mu.Unlock()

	usedFallback := false
	questions, err := c.source.Fetch(subject, difficultyFor(examType), c.questionCount)
	if err != nil || len(questions) == 0 {
		if err != nil {
			logger.Warn("Question generation failed, using fallback bank",
				"group_id", groupID, "subject", subject, "error", err)
		}
		questions, err = c.bank.Synthesize(subject, c.questionCount)
		if err != nil || len(questions) == 0 {
			return ErrNoContent
		}
		usedFallback = true
	}

	c.mu.Lock()
	sess := NewSession(groupID, groupName, examType, subject, questions, startedBy)
	if err := c.store.CreateSession(sess); err != nil {
		c.mu.Unlock()
		return err
	}
	if _, err := c.sched.ScheduleRepeating(groupID, c.initialDelay, c.postInterval, func() {
		c.tick(groupID)
	}); err != nil {
		c.store.DeleteSession(groupID)
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	logger.Info("Quiz session started",
		"group_id", groupID, "exam_type", examType, "subject", subject,
		"questions", len(questions), "started_by", startedBy, "fallback", usedFallback)
	c.audit.QuizStarted(groupID, groupName, examType, subject, startedBy, usedFallback)
	return nil
}

// StopSession ends a running session immediately: the repeating task is
// cancelled before this call returns, then the leaderboard goes out and the
// session is purged.
func (c *Controller) StopSession(groupID int64) error {
	sess, ok := c.store.Session(groupID)
	if !ok {
		return ErrNotActive
	}
	if !sess.Deactivate() {
		// A racing stop or the exhaustion path owns the teardown.
		return ErrNotActive
	}
	c.sched.Cancel(groupID)
	c.teardown(sess, EndReasonStopped)
	return nil
}

// RecordAnswer scores one answer event. Unknown polls and deleted sessions
// are expected traffic (late, duplicate or foreign answers) and are dropped
// without an error.
func (c *Controller) RecordAnswer(pollID string, userID int64, selectedOption int) {
	rec, ok := c.store.Poll(pollID)
	if !ok {
		return
	}
	sess, ok := c.store.Session(rec.GroupID)
	if !ok || !sess.Active() {
		return
	}
	if rec.QuestionIndex < 0 || rec.QuestionIndex >= len(sess.Questions) {
		return
	}
	if selectedOption != sess.Questions[rec.QuestionIndex].CorrectIndex {
		return
	}
	c.scores.RecordCorrect(rec.GroupID, userID)
	logger.Debug("Correct answer recorded",
		"group_id", rec.GroupID, "user_id", userID, "question_index", rec.QuestionIndex)
}

// tick posts the next question as a timed poll, or tears the session down
// when the questions are exhausted. Runs on the scheduler's goroutine,
// strictly sequentially per group.
func (c *Controller) tick(groupID int64) {
	sess, ok := c.store.Session(groupID)
	if !ok || !sess.Active() {
		// Externally stopped since the last tick.
		c.sched.Cancel(groupID)
		return
	}

	q, idx, ok := sess.CurrentQuestion()
	if !ok {
		if !sess.Deactivate() {
			return
		}
		c.sched.Cancel(groupID)
		_ = c.msgr.SendGroupMessage(groupID, "🎉 Group quiz completed! Use /quiz to start a new one.")
		c.teardown(sess, EndReasonCompleted)
		return
	}

	total := len(sess.Questions)
	var header string
	if sess.ExamType == ExamUPSC {
		header = fmt.Sprintf("🎯 UPSC %d/%d: %s", idx+1, total, q.Text)
	} else {
		header = fmt.Sprintf("❓ %d/%d: %s", idx+1, total, q.Text)
	}

	pollID, err := c.msgr.SendQuizPoll(groupID, header, q.Options, q.CorrectIndex, c.pollOpenSec, q.Explanation)
	if err != nil {
		// Skip the question rather than stall the whole schedule on it.
		logger.Error("Failed to post quiz poll, skipping question",
			"group_id", groupID, "question_index", idx, "error", err)
		sess.Advance()
		return
	}

	// A stop may have landed while the poll was in flight. The poll itself is
	// already out, but a gone session's state must not move.
	if cur, ok := c.store.Session(groupID); !ok || cur != sess || !cur.Active() {
		return
	}
	c.store.PutPoll(PollRecord{PollID: pollID, GroupID: groupID, QuestionIndex: idx})
	sess.TrackPoll(pollID)
	sess.Advance()
}

// teardown renders the leaderboard, records the run and purges the session.
// The caller must already own the terminal transition (Deactivate returned
// true) and have cancelled the schedule.
func (c *Controller) teardown(sess *Session, reason string) {
	entries := c.scores.Snapshot(sess.GroupID)
	c.sendLeaderboard(sess.GroupID, sess.GroupName, entries)

	topScore := 0
	if len(entries) > 0 {
		topScore = entries[0].Score
	}
	if c.history != nil {
		c.history.RecordRun(RunSummary{
			GroupID:       sess.GroupID,
			GroupName:     sess.GroupName,
			ExamType:      sess.ExamType,
			Subject:       sess.Subject,
			StartedBy:     sess.StartedBy,
			QuestionCount: len(sess.Questions),
			Participants:  len(entries),
			TopScore:      topScore,
			EndReason:     reason,
		})
	}
	c.audit.QuizStopped(sess.GroupID, sess.GroupName, len(entries), topScore, reason)
	c.store.Remove(sess)
	logger.Info("Quiz session ended",
		"group_id", sess.GroupID, "subject", sess.Subject, "reason", reason,
		"participants", len(entries), "questions_posted", sess.Cursor())
}

func (c *Controller) sendLeaderboard(groupID int64, groupName string, entries []Entry) {
	if len(entries) == 0 {
		_ = c.msgr.SendGroupMessage(groupID, "📊 No one participated in this quiz. 😢")
		return
	}

	medals := []string{"🥇 ", "🥈 ", "🥉 "}
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 %s - Quiz Leaderboard 🏆\n\n", groupName)
	for i, e := range entries {
		name, err := c.msgr.MemberDisplayName(groupID, e.UserID)
		if err != nil || name == "" {
			name = fmt.Sprintf("User %d", e.UserID)
		}
		medal := ""
		if i < len(medals) {
			medal = medals[i]
		}
		fmt.Fprintf(&b, "%s%d. %s: %d points\n", medal, i+1, name, e.Score)
	}
	fmt.Fprintf(&b, "\n📈 Total Participants: %d", len(entries))

	if err := c.msgr.SendGroupMessage(groupID, b.String()); err != nil {
		logger.Error("Failed to send leaderboard", "group_id", groupID, "error", err)
	}
}

// IsActive reports whether the group currently has a running quiz.
func (c *Controller) IsActive(groupID int64) bool {
	sess, ok := c.store.Session(groupID)
	return ok && sess.Active()
}

// ActiveQuizCount reports the number of groups with a running quiz.
func (c *Controller) ActiveQuizCount() int {
	return c.store.ActiveCount()
}
