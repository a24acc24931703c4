package model

// Category groups quizzes. QuizCount is a denormalized counter kept in step
// with quiz create/delete/move by atomic increments.
// swagger:model Category
type Category struct {
	UUIDBase
	Name      string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Icon      string `gorm:"size:16" json:"icon"`
	Color     string `gorm:"size:16" json:"color"`
	QuizCount int    `gorm:"default:0" json:"quizCount"`
}

func (Category) TableName() string {
	return "categories"
}
