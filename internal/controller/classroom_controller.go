package controller

import (
	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ClassroomController struct {
	ClassroomService *service.ClassroomService
}

func NewClassroomController(classroomService *service.ClassroomService) *ClassroomController {
	return &ClassroomController{ClassroomService: classroomService}
}

type ClassroomRequest struct {
	Name string `json:"name" binding:"required"`
}

// Create godoc
// @Summary Create a classroom
// @Tags classrooms
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body ClassroomRequest true "classroom payload"
// @Success 201 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response
// @Router /api/classrooms [post]
func (c *ClassroomController) Create(ctx *gin.Context) {
	var req ClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	classroom, err := c.ClassroomService.Create(req.Name, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Created(ctx, classroom)
}

// List godoc
// @Summary List classrooms visible to the caller
// @Description Teachers see classrooms they own, students see classrooms they are enrolled in
// @Tags classrooms
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Classroom}
// @Router /api/classrooms [get]
func (c *ClassroomController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	classrooms, err := c.ClassroomService.List(claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, classrooms)
}

// Get godoc
// @Summary Get one classroom
// @Tags classrooms
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "classroom id"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [get]
func (c *ClassroomController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	classroom, err := c.ClassroomService.Get(id, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// Update godoc
// @Summary Rename a classroom
// @Tags classrooms
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "classroom id"
// @Param   body body ClassroomRequest true "classroom payload"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [put]
func (c *ClassroomController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req ClassroomRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	claims := util.GetUserFromContext(ctx)
	classroom, err := c.ClassroomService.Update(id, req.Name, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// Delete godoc
// @Summary Delete a classroom and its quizzes
// @Tags classrooms
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "classroom id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id} [delete]
func (c *ClassroomController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.ClassroomService.Delete(id, claims.UserID, claims.Role); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// RemoveStudent godoc
// @Summary Remove a student from the roster
// @Description The student's past attempts are kept and show up as archived
// @Tags classrooms
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "classroom id"
// @Param   studentId path int true "student id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/classrooms/{id}/students/{studentId} [delete]
func (c *ClassroomController) RemoveStudent(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := pathID(ctx, "studentId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	if err := c.ClassroomService.RemoveStudent(id, studentID, claims.UserID, claims.Role); err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
