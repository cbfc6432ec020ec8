package controller

import (
	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StatsController struct {
	StatsService *service.StatsService
}

func NewStatsController(statsService *service.StatsService) *StatsController {
	return &StatsController{StatsService: statsService}
}

// ListAttempts godoc
// @Summary List every attempt on an owned quiz
// @Tags stats
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "quiz id"
// @Success 200 {object} util.Response{data=[]model.StudentQuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/quiz/{id}/stats [get]
func (c *StatsController) ListAttempts(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.StatsService.ListAttempts(quizID, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// GetAttemptDetail godoc
// @Summary One attempt with its per-question submissions
// @Tags stats
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "quiz id"
// @Param   attemptId path int true "attempt id"
// @Success 200 {object} util.Response{data=service.AttemptDetail}
// @Failure 404 {object} util.Response
// @Router /api/quiz/{id}/stats/{attemptId} [get]
func (c *StatsController) GetAttemptDetail(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attemptId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	detail, err := c.StatsService.GetAttemptDetail(quizID, attemptID, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

type SetScoreRequest struct {
	Score *float64 `json:"score" binding:"required"`
}

// SetScore godoc
// @Summary Override an attempt's score
// @Description For hand-graded written questions; score must be between 0 and 100
// @Tags stats
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "quiz id"
// @Param   attemptId path int true "attempt id"
// @Param   body body SetScoreRequest true "score payload"
// @Success 200 {object} util.Response{data=model.StudentQuizAttempt}
// @Failure 400 {object} util.Response "score out of range"
// @Failure 404 {object} util.Response
// @Router /api/quiz/{id}/stats/{attemptId} [patch]
func (c *StatsController) SetScore(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	attemptID, ok := pathID(ctx, "attemptId")
	if !ok {
		return
	}
	var req SetScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Score == nil {
		util.BadRequest(ctx, util.ErrInvalidScore.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.StatsService.SetScore(quizID, attemptID, *req.Score, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}
