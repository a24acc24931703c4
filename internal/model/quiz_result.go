package model

import "time"

// QuizResult is one completed, authenticated submission. Append-only.
// swagger:model QuizResult
type QuizResult struct {
	UUIDBase
	UserID         string    `gorm:"index;type:varchar(36)" json:"userId"`
	QuizID         string    `gorm:"index;type:varchar(36)" json:"quizId"`
	Score          int       `gorm:"not null" json:"score"` // 0-100
	CorrectCount   int       `gorm:"not null" json:"correctCount"`
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	Passed         bool      `gorm:"default:false" json:"passed"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
