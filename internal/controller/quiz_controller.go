package controller

import (
	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// Create godoc
// @Summary Create a quiz in an owned classroom
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuizInput true "quiz payload"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 403 {object} util.Response "not the classroom owner"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.Create(input, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// List godoc
// @Summary List quizzes visible to the caller
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quizzes, err := c.QuizService.List(claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// ListByClassroom godoc
// @Summary List a classroom's quizzes
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   classroomId path int true "classroom id"
// @Success 200 {object} util.Response{data=[]model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/classroom/{classroomId} [get]
func (c *QuizController) ListByClassroom(ctx *gin.Context) {
	classroomID, ok := pathID(ctx, "classroomId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	quizzes, err := c.QuizService.ListByClassroom(classroomID, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, quizzes)
}

// Get godoc
// @Summary Get one quiz
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "quiz id"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.Get(id, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Update godoc
// @Summary Update a quiz
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "quiz id"
// @Param   body body service.QuizInput true "quiz payload"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [put]
func (c *QuizController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.Update(id, input, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary Delete a quiz with its questions and answers
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "quiz id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.QuizService.Delete(id, claims.UserID, claims.Role); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
