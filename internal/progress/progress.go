// Package progress tracks a learner's quiz history and per-subject mastery.
package progress

import (
	"math"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

const (
	// MasteryStep is added to a subject's mastery for each completed quiz.
	MasteryStep = 5

	// MaxMastery caps subject mastery.
	MaxMastery = 100
)

type UserProgress struct {
	Grade            syllabus.Grade `json:"grade"`
	CompletedQuizzes int            `json:"completedQuizzes"`
	AverageScore     int            `json:"averageScore"`
	StreakDays       int            `json:"streakDays"`
	SubjectMastery   map[string]int `json:"subjectMastery"`
}

// Initial is the progress of a learner who has not taken a quiz yet.
func Initial() UserProgress {
	mastery := make(map[string]int)
	for _, id := range syllabus.SubjectIDs() {
		mastery[id] = 0
	}
	return UserProgress{
		Grade:          syllabus.MaxGrade,
		StreakDays:     1,
		SubjectMastery: mastery,
	}
}

// ApplyQuizResult folds one completed quiz into p and returns the result.
// p is not modified. A non-positive maxScore counts as a score of zero.
func ApplyQuizResult(p UserProgress, score, maxScore int, subjectID string) UserProgress {
	normalized := 0.0
	if maxScore > 0 {
		normalized = float64(score) / float64(maxScore) * 100
	}

	completed := p.CompletedQuizzes + 1
	total := float64(p.AverageScore)*float64(p.CompletedQuizzes) + normalized

	mastery := make(map[string]int, len(p.SubjectMastery)+1)
	for id, v := range p.SubjectMastery {
		mastery[id] = v
	}
	mastery[subjectID] = min(MaxMastery, mastery[subjectID]+MasteryStep)

	next := p
	next.CompletedQuizzes = completed
	next.AverageScore = int(math.Round(total / float64(completed)))
	next.SubjectMastery = mastery
	return next
}

// Mastery returns the mastery for subjectID, zero when unseen.
func (p UserProgress) Mastery(subjectID string) int {
	return p.SubjectMastery[subjectID]
}

// OverallMastery is the mean mastery across every catalog subject.
func (p UserProgress) OverallMastery() int {
	ids := syllabus.SubjectIDs()
	if len(ids) == 0 {
		return 0
	}
	sum := 0
	for _, id := range ids {
		sum += p.SubjectMastery[id]
	}
	return int(math.Round(float64(sum) / float64(len(ids))))
}
