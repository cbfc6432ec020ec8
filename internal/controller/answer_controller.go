package controller

import (
	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnswerController struct {
	AnswerService *service.AnswerService
}

func NewAnswerController(answerService *service.AnswerService) *AnswerController {
	return &AnswerController{AnswerService: answerService}
}

// Create godoc
// @Summary Add a candidate answer to an owned question
// @Tags answers
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.AnswerInput true "answer payload"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response "duplicate answer text"
// @Failure 403 {object} util.Response "not the question owner"
// @Router /api/answers [post]
func (c *AnswerController) Create(ctx *gin.Context) {
	var input service.AnswerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	answer, err := c.AnswerService.Create(input, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, answer)
}

// ListByQuestion godoc
// @Summary List a question's candidate answers
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   questionId path int true "question id"
// @Success 200 {object} util.Response{data=[]model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/answers/question/{questionId} [get]
func (c *AnswerController) ListByQuestion(ctx *gin.Context) {
	questionID, ok := pathID(ctx, "questionId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	answers, err := c.AnswerService.ListByQuestion(questionID, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, answers)
}

// Get godoc
// @Summary Get one answer
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "answer id"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/answers/{id} [get]
func (c *AnswerController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	answer, err := c.AnswerService.Get(id, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// Update godoc
// @Summary Update an answer
// @Tags answers
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "answer id"
// @Param   body body service.AnswerInput true "answer payload"
// @Success 200 {object} util.Response{data=model.Answer}
// @Failure 404 {object} util.Response
// @Router /api/answers/{id} [put]
func (c *AnswerController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var input service.AnswerInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	answer, err := c.AnswerService.Update(id, input, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, answer)
}

// Delete godoc
// @Summary Delete an answer
// @Tags answers
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "answer id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/answers/{id} [delete]
func (c *AnswerController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.AnswerService.Delete(id, claims.UserID, claims.Role); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
