package repository

import (
	"kvizmajstor_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id string) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, "id = ?", id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindAll() ([]model.User, error) {
	var users []model.User
	err := r.DB.Find(&users).Error
	return users, err
}

func (r *UserRepository) FindTopByScore(limit int) ([]model.User, error) {
	var users []model.User
	err := r.DB.Order("total_score DESC").Limit(limit).Find(&users).Error
	return users, err
}

// AddSubmissionStats bumps the cumulative score and completion counter as a
// single atomic update; never read-modify-write, so concurrent submissions
// cannot lose increments.
func (r *UserRepository) AddSubmissionStats(userID string, score int) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"total_score":       gorm.Expr("total_score + ?", score),
			"quizzes_completed": gorm.Expr("quizzes_completed + ?", 1),
		}).Error
}

func (r *UserRepository) SetCreator(userID string, isCreator bool) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_creator", isCreator).
		Error
}

// CountWithHigherScore supports 1-based leaderboard rank lookups.
func (r *UserRepository) CountWithHigherScore(score int) (int64, error) {
	var count int64
	err := r.DB.Model(&model.User{}).
		Where("total_score > ?", score).
		Count(&count).Error
	return count, err
}
