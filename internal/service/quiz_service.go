package service

import (
	"errors"
	"time"

	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/repository"
	"kvizmajstor_backend/internal/util"
	"kvizmajstor_backend/pkg/logger"
	"kvizmajstor_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo     *repository.QuizRepository
	CategoryRepo *repository.CategoryRepository
	UserRepo     *repository.UserRepository
	ResultRepo   *repository.ResultRepository
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	categoryRepo *repository.CategoryRepository,
	userRepo *repository.UserRepository,
	resultRepo *repository.ResultRepository,
) *QuizService {
	return &QuizService{
		QuizRepo:     quizRepo,
		CategoryRepo: categoryRepo,
		UserRepo:     userRepo,
		ResultRepo:   resultRepo,
	}
}

// QuizInput carries the client-authored fields of a quiz create or update.
// The question list replaces whatever the quiz had before.
type QuizInput struct {
	Title       string
	Description string
	CategoryID  string
	Difficulty  string
	TimeLimit   int
	Questions   []model.QuizQuestion
}

func (s *QuizService) List(categoryID, search string) ([]model.Quiz, error) {
	return s.QuizRepo.List(categoryID, search)
}

func (s *QuizService) Get(id string) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

// GetQuestions returns the quiz's questions with correct answers withheld.
func (s *QuizService) GetQuestions(id string) ([]model.PublicQuestion, error) {
	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	questions := make([]model.PublicQuestion, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, q.Sanitized())
	}
	return questions, nil
}

// GetForEdit returns the full quiz, correct answers included, for its
// owner or an admin.
func (s *QuizService) GetForEdit(id, userID string) (*model.Quiz, error) {
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !user.IsAdmin && quiz.CreatedBy != user.Username {
		return nil, util.ErrPermissionDenied
	}
	return quiz, nil
}

// Create stores a new quiz under the caller's name and bumps its
// category's quiz counter. Only admins and creators may author quizzes.
func (s *QuizService) Create(input *QuizInput, userID string) (*model.Quiz, error) {
	user, err := s.requireUser(userID)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin && !user.IsCreator {
		return nil, util.ErrPermissionDenied
	}

	quiz := &model.Quiz{
		Title:         input.Title,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		Difficulty:    input.Difficulty,
		QuestionCount: len(input.Questions),
		TimeLimit:     input.TimeLimit,
		CreatedBy:     user.Username,
		Questions:     orderedQuestions(input.Questions),
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	if err := s.CategoryRepo.IncrementQuizCount(quiz.CategoryID, 1); err != nil {
		logger.Log.Error("failed to bump category quiz count",
			zap.String("categoryId", quiz.CategoryID), zap.Error(err))
	}

	return quiz, nil
}

// Update replaces a quiz's fields and question list. When the quiz moves
// between categories, the old counter is decremented and the new one
// incremented; the two writes are independent, best-effort.
func (s *QuizService) Update(id string, input *QuizInput, userID string) error {
	user, err := s.requireUser(userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin && !user.IsCreator {
		return util.ErrPermissionDenied
	}

	existing, err := s.Get(id)
	if err != nil {
		return err
	}
	if !user.IsAdmin && existing.CreatedBy != user.Username {
		return util.ErrPermissionDenied
	}

	if existing.CategoryID != input.CategoryID {
		if err := s.CategoryRepo.IncrementQuizCount(existing.CategoryID, -1); err != nil {
			logger.Log.Error("failed to decrement old category quiz count",
				zap.String("categoryId", existing.CategoryID), zap.Error(err))
		}
		if err := s.CategoryRepo.IncrementQuizCount(input.CategoryID, 1); err != nil {
			logger.Log.Error("failed to increment new category quiz count",
				zap.String("categoryId", input.CategoryID), zap.Error(err))
		}
	}

	updated := &model.Quiz{
		UUIDBase:      model.UUIDBase{ID: id},
		Title:         input.Title,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		Difficulty:    input.Difficulty,
		QuestionCount: len(input.Questions),
		TimeLimit:     input.TimeLimit,
		Questions:     orderedQuestions(input.Questions),
	}
	return s.QuizRepo.Update(updated)
}

func (s *QuizService) Delete(id, userID string) error {
	user, err := s.requireUser(userID)
	if err != nil {
		return err
	}
	if !user.IsAdmin && !user.IsCreator {
		return util.ErrPermissionDenied
	}

	quiz, err := s.Get(id)
	if err != nil {
		return err
	}
	if !user.IsAdmin && quiz.CreatedBy != user.Username {
		return util.ErrPermissionDenied
	}

	if err := s.QuizRepo.Delete(id); err != nil {
		return err
	}

	if err := s.CategoryRepo.IncrementQuizCount(quiz.CategoryID, -1); err != nil {
		logger.Log.Error("failed to decrement category quiz count",
			zap.String("categoryId", quiz.CategoryID), zap.Error(err))
	}
	return nil
}

// Submit grades a submission against the quiz. Authenticated callers get a
// persisted result and aggregate bumps; anonymous callers just get the
// verdict. The play counter moves either way.
func (s *QuizService) Submit(quizID string, answers []model.SubmittedAnswer, userID string) (*Verdict, error) {
	quiz, err := s.Get(quizID)
	if err != nil {
		return nil, err
	}

	verdict := GradeSubmission(quiz.Questions, answers)

	if userID != "" {
		result := &model.QuizResult{
			UserID:         userID,
			QuizID:         quizID,
			Score:          verdict.Score,
			CorrectCount:   verdict.CorrectCount,
			TotalQuestions: verdict.TotalQuestions,
			Passed:         verdict.Passed,
			CompletedAt:    time.Now().UTC(),
		}
		if err := s.ResultRepo.Create(result); err != nil {
			return nil, err
		}
		if err := s.UserRepo.AddSubmissionStats(userID, verdict.Score); err != nil {
			return nil, err
		}
	}

	if err := s.QuizRepo.IncrementPlays(quizID); err != nil {
		logger.Log.Error("failed to bump quiz plays",
			zap.String("quizId", quizID), zap.Error(err))
	}

	monitoring.ObserveSubmission(userID != "", verdict.Passed)
	return &verdict, nil
}

func (s *QuizService) requireUser(userID string) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func orderedQuestions(questions []model.QuizQuestion) []model.QuizQuestion {
	out := make([]model.QuizQuestion, len(questions))
	copy(out, questions)
	for i := range out {
		out[i].Order = i
	}
	return out
}
