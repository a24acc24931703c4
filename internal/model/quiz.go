package model

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text" json:"description"`
	CategoryID    string         `gorm:"index;type:varchar(36)" json:"categoryId"`
	Difficulty    string         `gorm:"size:50" json:"difficulty"`
	QuestionCount int            `gorm:"default:0" json:"questionCount"`
	TimeLimit     int            `gorm:"default:0" json:"timeLimit"` // minutes, 0 = unlimited
	Plays         int            `gorm:"default:0" json:"plays"`
	Rating        float64        `gorm:"default:0" json:"rating"`
	CreatedBy     string         `gorm:"size:100" json:"createdBy"`
	Questions     []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is owned by its quiz; edits replace the whole list.
// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID        string      `gorm:"index;type:varchar(36)" json:"-"`
	Type          string      `gorm:"size:20;not null" json:"type"` // "multiple" or "true-false"
	Question      string      `gorm:"type:text;not null" json:"question"`
	Options       StringList  `gorm:"type:json" json:"options,omitempty"`
	CorrectAnswer AnswerValue `gorm:"type:json" json:"correctAnswer"`
	YoutubeURL    string      `gorm:"size:255" json:"youtubeUrl,omitempty"`
	Explanation   string      `gorm:"type:text" json:"explanation,omitempty"`
	Order         int         `gorm:"column:sort_order;default:0" json:"-"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// PublicQuestion is the learner-facing view of a question, with the
// correct answer withheld.
// swagger:model PublicQuestion
type PublicQuestion struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Question    string     `json:"question"`
	Options     StringList `json:"options,omitempty"`
	YoutubeURL  string     `json:"youtubeUrl,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
}

func (q QuizQuestion) Sanitized() PublicQuestion {
	return PublicQuestion{
		ID:          q.ID,
		Type:        q.Type,
		Question:    q.Question,
		Options:     q.Options,
		YoutubeURL:  q.YoutubeURL,
		Explanation: q.Explanation,
	}
}

// SubmittedAnswer is one (questionId, answer) pair of a quiz submission.
// Submissions are graded and discarded, never stored as such.
type SubmittedAnswer struct {
	QuestionID string      `json:"questionId"`
	Answer     AnswerValue `json:"answer"`
}
