package controller

import (
	"errors"

	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/service"
	"kvizmajstor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// swagger:model QuizRequest
type QuizRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	CategoryID  string               `json:"categoryId" binding:"required"`
	Difficulty  string               `json:"difficulty"`
	TimeLimit   int                  `json:"timeLimit"`
	Questions   []model.QuizQuestion `json:"questions" binding:"required"`
}

func (r *QuizRequest) toInput() *service.QuizInput {
	return &service.QuizInput{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		Difficulty:  r.Difficulty,
		TimeLimit:   r.TimeLimit,
		Questions:   r.Questions,
	}
}

// quizSummary is the list/create view of a quiz, without its questions.
type quizSummary struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	CategoryID    string  `json:"categoryId"`
	Difficulty    string  `json:"difficulty"`
	QuestionCount int     `json:"questionCount"`
	TimeLimit     int     `json:"timeLimit"`
	Plays         int     `json:"plays"`
	Rating        float64 `json:"rating"`
	CreatedBy     string  `json:"createdBy"`
}

func toSummary(q *model.Quiz) quizSummary {
	return quizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		CategoryID:    q.CategoryID,
		Difficulty:    q.Difficulty,
		QuestionCount: q.QuestionCount,
		TimeLimit:     q.TimeLimit,
		Plays:         q.Plays,
		Rating:        q.Rating,
		CreatedBy:     q.CreatedBy,
	}
}

// List godoc
// @Summary List quizzes
// @Description Optional filters: categoryId, search (case-insensitive substring of title or description)
// @Tags quizzes
// @Produce json
// @Param categoryId query string false "Category filter"
// @Param search query string false "Substring filter"
// @Success 200 {object} util.Response
// @Router /quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	quizzes, err := c.QuizService.List(ctx.Query("categoryId"), ctx.Query("search"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	summaries := make([]quizSummary, 0, len(quizzes))
	for i := range quizzes {
		summaries = append(summaries, toSummary(&quizzes[i]))
	}
	util.Success(ctx, summaries)
}

// Get returns the full quiz record, question correct answers included.
// The answer-stripped variant lives at /quizzes/:id/questions.
func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// GetQuestions godoc
// @Summary Quiz questions for play
// @Description Question list with the correctAnswer field stripped
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz id"
// @Success 200 {object} util.Response{data=[]model.PublicQuestion}
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, err := c.QuizService.GetQuestions(ctx.Param("id"))
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// GetForEdit godoc
// @Summary Quiz for editing
// @Description Full quiz including correct answers; owner or admin only
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id}/edit [get]
func (c *QuizController) GetForEdit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	quiz, err := c.QuizService.GetForEdit(ctx.Param("id"), claims.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Create godoc
// @Summary Create a quiz
// @Description Admin or creator role required; bumps the category quiz counter
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body QuizRequest true "Quiz payload"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.UnprocessableEntity(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(req.toInput(), claims.UserID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, toSummary(quiz))
}

// Update godoc
// @Summary Replace a quiz
// @Description Owner or admin; moving categories adjusts both quiz counters
// @Tags quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz id"
// @Param body body QuizRequest true "Quiz payload"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.UnprocessableEntity(ctx, err.Error())
		return
	}

	if err := c.QuizService.Update(ctx.Param("id"), req.toInput(), claims.UserID); err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "quiz updated"})
}

// Delete godoc
// @Summary Delete a quiz
// @Tags quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.QuizService.Delete(ctx.Param("id"), claims.UserID); err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"message": "quiz deleted"})
}

// swagger:model SubmissionRequest
type SubmissionRequest struct {
	Answers []model.SubmittedAnswer `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary Submit quiz answers
// @Description Grades the submission; persists a result only for authenticated callers
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Quiz id"
// @Param body body SubmissionRequest true "Answers"
// @Success 200 {object} util.Response{data=service.Verdict}
// @Failure 404 {object} util.Response
// @Failure 422 {object} util.Response
// @Router /quizzes/{id}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	var req SubmissionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.UnprocessableEntity(ctx, err.Error())
		return
	}

	userID := ""
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	verdict, err := c.QuizService.Submit(ctx.Param("id"), req.Answers, userID)
	if err != nil {
		c.respondError(ctx, err)
		return
	}
	util.Success(ctx, verdict)
}

func (c *QuizController) respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound):
		util.NotFound(ctx, util.ErrQuizNotFound.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, util.ErrUserNotFound.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, util.ErrPermissionDenied.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
