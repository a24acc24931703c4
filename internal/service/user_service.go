package service

import (
	"errors"
	"fmt"
	"time"

	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/repository"
	"kvizmajstor_backend/internal/util"

	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	QuizRepo   *repository.QuizRepository
	ResultRepo *repository.ResultRepository
}

func NewUserService(
	userRepo *repository.UserRepository,
	quizRepo *repository.QuizRepository,
	resultRepo *repository.ResultRepository,
) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		QuizRepo:   quizRepo,
		ResultRepo: resultRepo,
	}
}

type Badge struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	Earned bool   `json:"earned"`
}

type RecentActivity struct {
	QuizTitle string `json:"quizTitle"`
	Score     int    `json:"score"`
	Date      string `json:"date"`
}

type Progress struct {
	TotalQuizzes   int              `json:"totalQuizzes"`
	TotalScore     int              `json:"totalScore"`
	AverageScore   int              `json:"averageScore"`
	Rank           int              `json:"rank"`
	Badges         []Badge          `json:"badges"`
	RecentActivity []RecentActivity `json:"recentActivity"`
}

func (s *UserService) Leaderboard() ([]model.User, error) {
	return s.UserRepo.FindTopByScore(util.LeaderboardSize)
}

// Progress assembles the caller's aggregate stats: completion counters,
// floor-average score, 1-based rank by total score, the fixed badge set
// and up to three most recent results.
func (s *UserService) Progress(userID string) (*Progress, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	results, err := s.ResultRepo.FindRecentByUser(userID, 10)
	if err != nil {
		return nil, err
	}

	recent := make([]RecentActivity, 0, util.RecentActivityLimit)
	for _, result := range results {
		if len(recent) == util.RecentActivityLimit {
			break
		}
		quiz, err := s.QuizRepo.FindByID(result.QuizID)
		if err != nil {
			// Quiz deleted since; its result still counts elsewhere
			// but has no title to show.
			continue
		}
		recent = append(recent, RecentActivity{
			QuizTitle: quiz.Title,
			Score:     result.Score,
			Date:      relativeDate(result.CompletedAt),
		})
	}

	higher, err := s.UserRepo.CountWithHigherScore(user.TotalScore)
	if err != nil {
		return nil, err
	}

	averageScore := 0
	if user.QuizzesCompleted > 0 {
		averageScore = user.TotalScore / user.QuizzesCompleted
	}

	return &Progress{
		TotalQuizzes:   user.QuizzesCompleted,
		TotalScore:     user.TotalScore,
		AverageScore:   averageScore,
		Rank:           int(higher) + 1,
		Badges:         badgesFor(user.QuizzesCompleted),
		RecentActivity: recent,
	}, nil
}

func (s *UserService) ListAll() ([]model.User, error) {
	return s.UserRepo.FindAll()
}

// ToggleCreator flips the target user's creator flag and reports the new
// state.
func (s *UserService) ToggleCreator(targetID string) (bool, error) {
	target, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrUserNotFound
		}
		return false, err
	}

	newStatus := !target.IsCreator
	if err := s.UserRepo.SetCreator(targetID, newStatus); err != nil {
		return false, err
	}
	return newStatus, nil
}

// badgesFor is the fixed badge set; only the quiz-count badges are live,
// the rest are displayed but never earned.
func badgesFor(totalQuizzes int) []Badge {
	return []Badge{
		{ID: "1", Name: "First Quiz", Icon: "🎯", Earned: totalQuizzes >= 1},
		{ID: "2", Name: "Perfect Score", Icon: "💯", Earned: false},
		{ID: "3", Name: "10 Quizzes", Icon: "🔟", Earned: totalQuizzes >= 10},
		{ID: "4", Name: "Speed Demon", Icon: "⚡", Earned: false},
		{ID: "5", Name: "Category Master", Icon: "👑", Earned: false},
	}
}

func relativeDate(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff >= 24*time.Hour:
		return agoString(int(diff.Hours())/24, "day")
	case diff >= time.Hour:
		return agoString(int(diff.Hours()), "hour")
	default:
		return agoString(int(diff.Minutes()), "minute")
	}
}

func agoString(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
