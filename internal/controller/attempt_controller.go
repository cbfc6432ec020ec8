package controller

import (
	"strconv"

	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttemptController struct {
	AttemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{AttemptService: attemptService}
}

type StartAttemptRequest struct {
	QuizID uint `json:"quizId" binding:"required"`
}

// Start godoc
// @Summary Start a quiz attempt
// @Description Fails when the quiz is inactive, past its deadline, the student is not enrolled, an attempt is already open, or attempts are used up
// @Tags attempts
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body StartAttemptRequest true "quiz to attempt"
// @Success 201 {object} util.Response{data=model.StudentQuizAttempt}
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response "not enrolled"
// @Router /api/attempts [post]
func (c *AttemptController) Start(ctx *gin.Context) {
	var req StartAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.Start(req.QuizID, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// List godoc
// @Summary List the caller's attempts
// @Description Covers classrooms the student is still enrolled in; ?quiz= narrows to one quiz
// @Tags attempts
// @Produce  json
// @Security ApiKeyAuth
// @Param   quiz query int false "quiz id filter"
// @Success 200 {object} util.Response{data=[]model.StudentQuizAttempt}
// @Router /api/attempts [get]
func (c *AttemptController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var quizID uint
	if raw := ctx.Query("quiz"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			util.BadRequest(ctx, "invalid quiz filter")
			return
		}
		quizID = uint(parsed)
	}
	attempts, err := c.AttemptService.List(claims.UserID, quizID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// ListArchived godoc
// @Summary List attempts from classrooms the caller has left
// @Tags attempts
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudentQuizAttempt}
// @Router /api/attempts/archived [get]
func (c *AttemptController) ListArchived(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.ListArchived(claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// ListByClassroom godoc
// @Summary List the caller's attempts within one classroom
// @Tags attempts
// @Produce  json
// @Security ApiKeyAuth
// @Param   classroomId path int true "classroom id"
// @Success 200 {object} util.Response{data=[]model.StudentQuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/attempts/classroom/{classroomId} [get]
func (c *AttemptController) ListByClassroom(ctx *gin.Context) {
	classroomID, ok := pathID(ctx, "classroomId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	attempts, err := c.AttemptService.ListByClassroom(classroomID, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// Get godoc
// @Summary Get one of the caller's attempts
// @Tags attempts
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "attempt id"
// @Success 200 {object} util.Response{data=model.StudentQuizAttempt}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id} [get]
func (c *AttemptController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	attempt, err := c.AttemptService.Get(id, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, attempt)
}

// NextQuestion godoc
// @Summary Advance to the next unanswered question
// @Description Returns the next question in order, or the completed, scored attempt once nothing is left
// @Tags attempts
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "attempt id"
// @Success 200 {object} util.Response{data=service.NextQuestionResult}
// @Failure 404 {object} util.Response
// @Router /api/attempts/{id}/next-question [get]
func (c *AttemptController) NextQuestion(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.NextQuestion(id, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// SubmitAnswers godoc
// @Summary Submit answers for a question attempt
// @Description Answers are graded case-insensitively; submissions past the time limit are stored but marked incorrect
// @Tags attempts
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubmitAnswersInput true "submission payload"
// @Success 200 {object} util.Response{data=service.SubmitAnswersResult}
// @Failure 400 {object} util.Response "already submitted or too many answers"
// @Failure 403 {object} util.Response "not the attempt owner"
// @Router /api/answer-submit [post]
func (c *AttemptController) SubmitAnswers(ctx *gin.Context) {
	var input service.SubmitAnswersInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	result, err := c.AttemptService.SubmitAnswers(input, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
