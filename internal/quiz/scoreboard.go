package quiz

import (
	"sort"
	"sync"
)

// Entry is one user's score on a group's leaderboard.
type Entry struct {
	UserID int64
	Score  int
}

// ScoreBoard tracks correct-answer counts per group. Insertion order is kept
// so that ties rank by who scored first.
type ScoreBoard struct {
	mu     sync.Mutex
	scores map[int64]map[int64]int
	order  map[int64][]int64
}

func NewScoreBoard() *ScoreBoard {
	return &ScoreBoard{
		scores: make(map[int64]map[int64]int),
		order:  make(map[int64][]int64),
	}
}

// Reset clears a group's scores. Called when a new session starts.
func (b *ScoreBoard) Reset(groupID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.scores, groupID)
	delete(b.order, groupID)
}

func (b *ScoreBoard) RecordCorrect(groupID, userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	group, ok := b.scores[groupID]
	if !ok {
		group = make(map[int64]int)
		b.scores[groupID] = group
	}
	if _, seen := group[userID]; !seen {
		b.order[groupID] = append(b.order[groupID], userID)
	}
	group[userID]++
}

// Snapshot returns the group's leaderboard, descending by score with ties in
// first-seen order.
func (b *ScoreBoard) Snapshot(groupID int64) []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	group := b.scores[groupID]
	entries := make([]Entry, 0, len(group))
	for _, userID := range b.order[groupID] {
		entries = append(entries, Entry{UserID: userID, Score: group[userID]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	return entries
}
