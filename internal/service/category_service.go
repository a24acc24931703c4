package service

import (
	"errors"

	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/repository"
	"kvizmajstor_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
	QuizRepo     *repository.QuizRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, quizRepo *repository.QuizRepository) *CategoryService {
	return &CategoryService{
		CategoryRepo: categoryRepo,
		QuizRepo:     quizRepo,
	}
}

func (s *CategoryService) List() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

func (s *CategoryService) Create(name, icon, color string) (*model.Category, error) {
	if _, err := s.CategoryRepo.FindByName(name); err == nil {
		return nil, util.ErrCategoryNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	category := &model.Category{
		Name:  name,
		Icon:  icon,
		Color: color,
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete removes an empty category. A category still referenced by quizzes
// is refused so the denormalized counters cannot dangle.
func (s *CategoryService) Delete(id string) error {
	if _, err := s.CategoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCategoryNotFound
		}
		return err
	}

	count, err := s.QuizRepo.CountByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return util.ErrCategoryNotEmpty
	}

	return s.CategoryRepo.Delete(id)
}
