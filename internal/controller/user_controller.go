package controller

import (
	"errors"

	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/service"
	"kvizmajstor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

type leaderboardEntry struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Score            int    `json:"score"`
	QuizzesCompleted int    `json:"quizzesCompleted"`
	Avatar           string `json:"avatar"`
}

// Leaderboard godoc
// @Summary Top players
// @Description The 50 highest cumulative scores, descending
// @Tags users
// @Produce json
// @Success 200 {object} util.Response
// @Router /leaderboard [get]
func (c *UserController) Leaderboard(ctx *gin.Context) {
	users, err := c.UserService.Leaderboard()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for _, u := range users {
		entries = append(entries, toLeaderboardEntry(u))
	}
	util.Success(ctx, entries)
}

func toLeaderboardEntry(u model.User) leaderboardEntry {
	return leaderboardEntry{
		ID:               u.ID,
		Username:         u.Username,
		Score:            u.TotalScore,
		QuizzesCompleted: u.QuizzesCompleted,
		Avatar:           u.Avatar,
	}
}

// Progress godoc
// @Summary Caller's progress
// @Description Aggregate stats, rank, badges and recent activity
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Progress}
// @Failure 401 {object} util.Response
// @Router /users/progress [get]
func (c *UserController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.UserService.Progress(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}
