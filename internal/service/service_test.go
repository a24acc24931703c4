package service

import (
	"errors"
	"testing"
	"time"

	"kvizmajstor_backend/internal/config"
	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/repository"
	"kvizmajstor_backend/internal/util"
	"kvizmajstor_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// A second connection would see a different empty in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testEnv struct {
	db         *gorm.DB
	users      *repository.UserRepository
	categories *repository.CategoryRepository
	quizzes    *repository.QuizRepository
	results    *repository.ResultRepository

	auth     *AuthService
	category *CategoryService
	quiz     *QuizService
	userSvc  *UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	quizzes := repository.NewQuizRepository(db)
	results := repository.NewResultRepository(db)

	cfg := &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}

	return &testEnv{
		db:         db,
		users:      users,
		categories: categories,
		quizzes:    quizzes,
		results:    results,
		auth:       NewAuthService(users, cfg),
		category:   NewCategoryService(categories, quizzes),
		quiz:       NewQuizService(quizzes, categories, users, results),
		userSvc:    NewUserService(users, quizzes, results),
	}
}

func (e *testEnv) mustSignup(t *testing.T, email, username string) *model.User {
	t.Helper()
	user, _, err := e.auth.Signup(email, username, "lozinka123")
	if err != nil {
		t.Fatalf("signup %s: %v", username, err)
	}
	return user
}

func (e *testEnv) mustCreator(t *testing.T, email, username string) *model.User {
	t.Helper()
	user := e.mustSignup(t, email, username)
	if err := e.users.SetCreator(user.ID, true); err != nil {
		t.Fatalf("set creator: %v", err)
	}
	user.IsCreator = true
	return user
}

func (e *testEnv) mustCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category, err := e.category.Create(name, "📚", "#123456")
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return category
}

func (e *testEnv) mustQuiz(t *testing.T, userID, categoryID string) *model.Quiz {
	t.Helper()
	quiz, err := e.quiz.Create(&QuizInput{
		Title:      "Glavni gradovi",
		CategoryID: categoryID,
		Difficulty: "easy",
		TimeLimit:  300,
		Questions: []model.QuizQuestion{
			{Type: "true-false", Question: "Beograd je glavni grad Srbije", CorrectAnswer: model.BoolAnswer(true)},
			{Type: "true-false", Question: "Niš je glavni grad Srbije", CorrectAnswer: model.BoolAnswer(false)},
			{
				Type:          "multiple",
				Question:      "Glavni grad Srbije?",
				Options:       []string{"Beograd", "Novi Sad", "Niš"},
				CorrectAnswer: model.StringAnswer("Beograd"),
			},
		},
	}, userID)
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	return quiz
}

func (e *testEnv) categoryCount(t *testing.T, id string) int {
	t.Helper()
	category, err := e.categories.FindByID(id)
	if err != nil {
		t.Fatalf("find category: %v", err)
	}
	return category.QuizCount
}

func TestSignupAndLogin(t *testing.T) {
	env := newTestEnv(t)

	user, token, err := env.auth.Signup("mika@example.com", "mika", "lozinka123")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if token == "" {
		t.Fatalf("signup returned empty token")
	}
	if user.ID == "" {
		t.Fatalf("user was not assigned an id")
	}
	if user.IsAdmin || user.IsCreator {
		t.Fatalf("new user must start unprivileged, got %+v", user)
	}

	claims, err := util.ParseJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("token subject = %q, want %q", claims.UserID, user.ID)
	}

	if _, _, err := env.auth.Signup("mika@example.com", "other", "lozinka123"); !errors.Is(err, util.ErrEmailTaken) {
		t.Fatalf("duplicate email err = %v, want ErrEmailTaken", err)
	}
	if _, _, err := env.auth.Signup("other@example.com", "mika", "lozinka123"); !errors.Is(err, util.ErrUsernameTaken) {
		t.Fatalf("duplicate username err = %v, want ErrUsernameTaken", err)
	}

	if _, _, err := env.auth.Login("mika@example.com", "pogresna"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := env.auth.Login("niko@example.com", "lozinka123"); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Fatalf("unknown email err = %v, want ErrInvalidCredentials", err)
	}

	logged, _, err := env.auth.Login("mika@example.com", "lozinka123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned user %q, want %q", logged.ID, user.ID)
	}
}

func TestQuizCreateRequiresCreatorRole(t *testing.T) {
	env := newTestEnv(t)
	plain := env.mustSignup(t, "pera@example.com", "pera")
	category := env.mustCategory(t, "Geografija")

	_, err := env.quiz.Create(&QuizInput{Title: "x", CategoryID: category.ID}, plain.ID)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("create by plain user err = %v, want ErrPermissionDenied", err)
	}

	_, err = env.quiz.Create(&QuizInput{Title: "x", CategoryID: category.ID}, "ghost")
	if !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("create by unknown user err = %v, want ErrUserNotFound", err)
	}
}

func TestQuizLifecycleMovesCategoryCounters(t *testing.T) {
	env := newTestEnv(t)
	creator := env.mustCreator(t, "ana@example.com", "ana")
	geo := env.mustCategory(t, "Geografija")
	hist := env.mustCategory(t, "Istorija")

	quiz := env.mustQuiz(t, creator.ID, geo.ID)
	if got := env.categoryCount(t, geo.ID); got != 1 {
		t.Fatalf("after create, geo count = %d, want 1", got)
	}
	if quiz.CreatedBy != "ana" {
		t.Fatalf("createdBy = %q, want the author's username", quiz.CreatedBy)
	}
	if quiz.QuestionCount != 3 {
		t.Fatalf("questionCount = %d, want 3", quiz.QuestionCount)
	}

	// Moving between categories shifts one count to the other.
	err := env.quiz.Update(quiz.ID, &QuizInput{
		Title:      "Glavni gradovi v2",
		CategoryID: hist.ID,
		Questions: []model.QuizQuestion{
			{Type: "true-false", Question: "Samo jedno pitanje", CorrectAnswer: model.BoolAnswer(true)},
		},
	}, creator.ID)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := env.categoryCount(t, geo.ID); got != 0 {
		t.Fatalf("after move, geo count = %d, want 0", got)
	}
	if got := env.categoryCount(t, hist.ID); got != 1 {
		t.Fatalf("after move, hist count = %d, want 1", got)
	}

	updated, err := env.quiz.Get(quiz.ID)
	if err != nil {
		t.Fatalf("get after update: %v", err)
	}
	if updated.Title != "Glavni gradovi v2" || len(updated.Questions) != 1 || updated.QuestionCount != 1 {
		t.Fatalf("update did not replace fields and questions: %+v", updated)
	}

	if err := env.quiz.Delete(quiz.ID, creator.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := env.categoryCount(t, hist.ID); got != 0 {
		t.Fatalf("after delete, hist count = %d, want 0", got)
	}
	if _, err := env.quiz.Get(quiz.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("get deleted quiz err = %v, want ErrQuizNotFound", err)
	}
}

func TestQuizOwnershipChecks(t *testing.T) {
	env := newTestEnv(t)
	owner := env.mustCreator(t, "ana@example.com", "ana")
	stranger := env.mustCreator(t, "ivan@example.com", "ivan")
	admin := env.mustSignup(t, "admin@example.com", "admin")
	if err := env.db.Model(&model.User{}).Where("id = ?", admin.ID).Update("is_admin", true).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}

	category := env.mustCategory(t, "Geografija")
	quiz := env.mustQuiz(t, owner.ID, category.ID)

	if _, err := env.quiz.GetForEdit(quiz.ID, stranger.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("stranger edit err = %v, want ErrPermissionDenied", err)
	}
	if err := env.quiz.Delete(quiz.ID, stranger.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("stranger delete err = %v, want ErrPermissionDenied", err)
	}

	full, err := env.quiz.GetForEdit(quiz.ID, owner.ID)
	if err != nil {
		t.Fatalf("owner edit: %v", err)
	}
	if len(full.Questions) != 3 || full.Questions[0].CorrectAnswer.IsZero() {
		t.Fatalf("owner edit view must include correct answers, got %+v", full.Questions)
	}

	if _, err := env.quiz.GetForEdit(quiz.ID, admin.ID); err != nil {
		t.Fatalf("admin edit: %v", err)
	}
}

func TestGetQuestionsWithholdsAnswers(t *testing.T) {
	env := newTestEnv(t)
	creator := env.mustCreator(t, "ana@example.com", "ana")
	category := env.mustCategory(t, "Geografija")
	quiz := env.mustQuiz(t, creator.ID, category.ID)

	questions, err := env.quiz.GetQuestions(quiz.ID)
	if err != nil {
		t.Fatalf("get questions: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(questions))
	}
	for i, q := range questions {
		if q.ID == "" || q.Question == "" {
			t.Fatalf("question %d missing fields: %+v", i, q)
		}
	}

	if _, err := env.quiz.GetQuestions("nema"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("missing quiz err = %v, want ErrQuizNotFound", err)
	}
}

func TestSubmitAuthenticatedRecordsResultAndStats(t *testing.T) {
	env := newTestEnv(t)
	creator := env.mustCreator(t, "ana@example.com", "ana")
	player := env.mustSignup(t, "pera@example.com", "pera")
	category := env.mustCategory(t, "Geografija")
	quiz := env.mustQuiz(t, creator.ID, category.ID)

	answers := []model.SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, Answer: model.StringAnswer("True")},
		{QuestionID: quiz.Questions[1].ID, Answer: model.BoolAnswer(false)},
		{QuestionID: quiz.Questions[2].ID, Answer: model.StringAnswer("beograd")},
	}

	verdict, err := env.quiz.Submit(quiz.ID, answers, player.ID)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if verdict.Score != 100 || !verdict.Passed {
		t.Fatalf("verdict = %+v, want a full score", verdict)
	}

	stored, err := env.users.FindByID(player.ID)
	if err != nil {
		t.Fatalf("reload player: %v", err)
	}
	if stored.TotalScore != 100 || stored.QuizzesCompleted != 1 {
		t.Fatalf("player stats = %d/%d, want 100/1", stored.TotalScore, stored.QuizzesCompleted)
	}

	results, err := env.results.FindRecentByUser(player.ID, 10)
	if err != nil {
		t.Fatalf("load results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d stored results, want 1", len(results))
	}
	if results[0].QuizID != quiz.ID || results[0].Score != 100 || !results[0].Passed {
		t.Fatalf("stored result = %+v", results[0])
	}

	reloaded, err := env.quiz.Get(quiz.ID)
	if err != nil {
		t.Fatalf("reload quiz: %v", err)
	}
	if reloaded.Plays != 1 {
		t.Fatalf("plays = %d, want 1", reloaded.Plays)
	}
}

func TestSubmitAnonymousOnlyBumpsPlays(t *testing.T) {
	env := newTestEnv(t)
	creator := env.mustCreator(t, "ana@example.com", "ana")
	category := env.mustCategory(t, "Geografija")
	quiz := env.mustQuiz(t, creator.ID, category.ID)

	verdict, err := env.quiz.Submit(quiz.ID, []model.SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, Answer: model.BoolAnswer(false)},
	}, "")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if verdict.Score != 0 || verdict.TotalQuestions != 3 {
		t.Fatalf("verdict = %+v, want 0 over 3", verdict)
	}

	var resultCount int64
	if err := env.db.Model(&model.QuizResult{}).Count(&resultCount).Error; err != nil {
		t.Fatalf("count results: %v", err)
	}
	if resultCount != 0 {
		t.Fatalf("anonymous submission stored %d results, want none", resultCount)
	}

	reloaded, err := env.quiz.Get(quiz.ID)
	if err != nil {
		t.Fatalf("reload quiz: %v", err)
	}
	if reloaded.Plays != 1 {
		t.Fatalf("plays = %d, want 1", reloaded.Plays)
	}
}

func TestCategoryDeleteRefusedWhileInUse(t *testing.T) {
	env := newTestEnv(t)
	creator := env.mustCreator(t, "ana@example.com", "ana")
	category := env.mustCategory(t, "Geografija")
	quiz := env.mustQuiz(t, creator.ID, category.ID)

	if err := env.category.Delete(category.ID); !errors.Is(err, util.ErrCategoryNotEmpty) {
		t.Fatalf("delete in-use category err = %v, want ErrCategoryNotEmpty", err)
	}

	if err := env.quiz.Delete(quiz.ID, creator.ID); err != nil {
		t.Fatalf("delete quiz: %v", err)
	}
	if err := env.category.Delete(category.ID); err != nil {
		t.Fatalf("delete empty category: %v", err)
	}
	if err := env.category.Delete(category.ID); !errors.Is(err, util.ErrCategoryNotFound) {
		t.Fatalf("double delete err = %v, want ErrCategoryNotFound", err)
	}
}

func TestCategoryCreateRejectsDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	env.mustCategory(t, "Geografija")

	if _, err := env.category.Create("Geografija", "🌍", "#000000"); !errors.Is(err, util.ErrCategoryNameTaken) {
		t.Fatalf("duplicate category err = %v, want ErrCategoryNameTaken", err)
	}
}

func TestLeaderboardOrdersByTotalScore(t *testing.T) {
	env := newTestEnv(t)
	low := env.mustSignup(t, "low@example.com", "low")
	high := env.mustSignup(t, "high@example.com", "high")
	mid := env.mustSignup(t, "mid@example.com", "mid")

	for userID, score := range map[string]int{low.ID: 40, high.ID: 250, mid.ID: 120} {
		if err := env.users.AddSubmissionStats(userID, score); err != nil {
			t.Fatalf("seed score: %v", err)
		}
	}

	board, err := env.userSvc.Leaderboard()
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(board) != 3 {
		t.Fatalf("got %d entries, want 3", len(board))
	}
	if board[0].Username != "high" || board[1].Username != "mid" || board[2].Username != "low" {
		t.Fatalf("order = %s, %s, %s", board[0].Username, board[1].Username, board[2].Username)
	}
}

func TestProgressAggregates(t *testing.T) {
	env := newTestEnv(t)
	creator := env.mustCreator(t, "ana@example.com", "ana")
	player := env.mustSignup(t, "pera@example.com", "pera")
	rival := env.mustSignup(t, "ivan@example.com", "ivan")
	category := env.mustCategory(t, "Geografija")
	quiz := env.mustQuiz(t, creator.ID, category.ID)

	if err := env.users.AddSubmissionStats(rival.ID, 500); err != nil {
		t.Fatalf("seed rival: %v", err)
	}

	fullMarks := []model.SubmittedAnswer{
		{QuestionID: quiz.Questions[0].ID, Answer: model.BoolAnswer(true)},
		{QuestionID: quiz.Questions[1].ID, Answer: model.BoolAnswer(false)},
		{QuestionID: quiz.Questions[2].ID, Answer: model.StringAnswer("Beograd")},
	}
	if _, err := env.quiz.Submit(quiz.ID, fullMarks, player.ID); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if _, err := env.quiz.Submit(quiz.ID, fullMarks[:2], player.ID); err != nil {
		t.Fatalf("submit 2: %v", err)
	}

	progress, err := env.userSvc.Progress(player.ID)
	if err != nil {
		t.Fatalf("progress: %v", err)
	}

	// 100 + 66, floored average.
	if progress.TotalQuizzes != 2 || progress.TotalScore != 166 {
		t.Fatalf("totals = %d quizzes, %d score", progress.TotalQuizzes, progress.TotalScore)
	}
	if progress.AverageScore != 83 {
		t.Fatalf("averageScore = %d, want 83", progress.AverageScore)
	}
	if progress.Rank != 2 {
		t.Fatalf("rank = %d, want 2 (one rival above)", progress.Rank)
	}

	if len(progress.Badges) != 5 {
		t.Fatalf("got %d badges, want the fixed set of 5", len(progress.Badges))
	}
	if !progress.Badges[0].Earned {
		t.Fatalf("First Quiz badge must be earned after two completions")
	}
	if progress.Badges[2].Earned {
		t.Fatalf("10 Quizzes badge must not be earned after two completions")
	}

	if len(progress.RecentActivity) != 2 {
		t.Fatalf("got %d recent entries, want 2", len(progress.RecentActivity))
	}
	if progress.RecentActivity[0].QuizTitle != "Glavni gradovi" {
		t.Fatalf("recent title = %q", progress.RecentActivity[0].QuizTitle)
	}

	if _, err := env.userSvc.Progress("ghost"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("unknown user err = %v, want ErrUserNotFound", err)
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Now()
	cases := []struct {
		completed time.Time
		want      string
	}{
		{now.Add(-30 * time.Second), "0 minutes ago"},
		{now.Add(-90 * time.Second), "1 minute ago"},
		{now.Add(-5 * time.Minute), "5 minutes ago"},
		{now.Add(-90 * time.Minute), "1 hour ago"},
		{now.Add(-5 * time.Hour), "5 hours ago"},
		{now.Add(-25 * time.Hour), "1 day ago"},
		{now.Add(-75 * time.Hour), "3 days ago"},
	}

	for _, tc := range cases {
		if got := relativeDate(tc.completed); got != tc.want {
			t.Errorf("relativeDate(%v ago) = %q, want %q", time.Since(tc.completed), got, tc.want)
		}
	}
}

func TestToggleCreatorFlips(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustSignup(t, "pera@example.com", "pera")

	on, err := env.userSvc.ToggleCreator(user.ID)
	if err != nil || !on {
		t.Fatalf("first toggle = %v, %v, want true", on, err)
	}
	off, err := env.userSvc.ToggleCreator(user.ID)
	if err != nil || off {
		t.Fatalf("second toggle = %v, %v, want false", off, err)
	}

	if _, err := env.userSvc.ToggleCreator("ghost"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("unknown user err = %v, want ErrUserNotFound", err)
	}
}
