package controller

import (
	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Create godoc
// @Summary Add a question to an owned quiz
// @Description Omitting order places the question after the existing ones
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuestionInput true "question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 403 {object} util.Response "not the quiz owner"
// @Router /api/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.Create(input, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, question)
}

// ListByQuiz godoc
// @Summary List a quiz's questions in order
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path int true "quiz id"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/quiz/{quizId} [get]
func (c *QuestionController) ListByQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quizId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	questions, err := c.QuestionService.ListByQuiz(quizID, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, questions)
}

// Get godoc
// @Summary Get one question
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [get]
func (c *QuestionController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.Get(id, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Update godoc
// @Summary Update a question
// @Tags questions
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Param   body body service.QuestionInput true "question payload"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var input service.QuestionInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.Update(id, input, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, question)
}

// Delete godoc
// @Summary Delete a question and its answers
// @Tags questions
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/questions/{id} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.QuestionService.Delete(id, claims.UserID, claims.Role); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
