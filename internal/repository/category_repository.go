package repository

import (
	"kvizmajstor_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) FindAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("created_at ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(id string) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, "id = ?", id).Error
	return &category, err
}

func (r *CategoryRepository) FindByName(name string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("name = ?", name).First(&category).Error
	return &category, err
}

func (r *CategoryRepository) Delete(id string) error {
	return r.DB.Delete(&model.Category{}, "id = ?", id).Error
}

// IncrementQuizCount adjusts the denormalized quiz counter by delta as an
// atomic update. A missing category id is a no-op.
func (r *CategoryRepository) IncrementQuizCount(id string, delta int) error {
	return r.DB.Model(&model.Category{}).
		Where("id = ?", id).
		Update("quiz_count", gorm.Expr("quiz_count + ?", delta)).
		Error
}
