package repository

import (
	"strings"

	"kvizmajstor_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

// FindByID loads the quiz with its question list in authored order.
func (r *QuizRepository) FindByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).First(&quiz, "id = ?", id).Error
	return &quiz, err
}

// List returns quiz records without their question lists, optionally
// filtered by category and by a case-insensitive substring of the title or
// description.
func (r *QuizRepository) List(categoryID, search string) ([]model.Quiz, error) {
	query := r.DB.Model(&model.Quiz{})

	if categoryID != "" && categoryID != "all" {
		query = query.Where("category_id = ?", categoryID)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var quizzes []model.Quiz
	err := query.Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// Update replaces the quiz fields and its whole question list atomically.
func (r *QuizRepository) Update(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":          quiz.Title,
			"description":    quiz.Description,
			"category_id":    quiz.CategoryID,
			"difficulty":     quiz.Difficulty,
			"question_count": quiz.QuestionCount,
			"time_limit":     quiz.TimeLimit,
		}
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).Updates(updates).Error; err != nil {
			return err
		}

		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
		}
		if len(quiz.Questions) == 0 {
			return nil
		}
		return tx.Create(&quiz.Questions).Error
	})
}

func (r *QuizRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}

func (r *QuizRepository) IncrementPlays(id string) error {
	return r.DB.Model(&model.Quiz{}).
		Where("id = ?", id).
		Update("plays", gorm.Expr("plays + ?", 1)).
		Error
}

func (r *QuizRepository) CountByCategory(categoryID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error
	return count, err
}

// ListIDs feeds the sitemap.
func (r *QuizRepository) ListIDs() ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Quiz{}).Order("created_at ASC").Pluck("id", &ids).Error
	return ids, err
}
