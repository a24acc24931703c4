package model

// swagger:model User
type User struct {
	UUIDBase
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username         string     `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password         string     `gorm:"size:100;not null" json:"-"`
	Avatar           string     `gorm:"size:16;default:'👤'" json:"avatar"`
	IsAdmin          bool       `gorm:"default:false" json:"isAdmin"`
	IsCreator        bool       `gorm:"default:false" json:"isCreator"`
	TotalScore       int        `gorm:"default:0" json:"totalScore"`
	QuizzesCompleted int        `gorm:"default:0" json:"quizzesCompleted"`
	Badges           StringList `gorm:"type:json" json:"badges"`
}

func (User) TableName() string {
	return "users"
}
