package controller

import (
	"classquiz_backend/internal/service"
	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService *service.EnrollmentService
}

func NewEnrollmentController(enrollmentService *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{EnrollmentService: enrollmentService}
}

type EnrollRequest struct {
	Code string `json:"code" binding:"required"`
}

// Enroll godoc
// @Summary Join a classroom with an enrollment code
// @Tags enrollment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body EnrollRequest true "enrollment code"
// @Success 200 {object} util.Response{data=model.Classroom}
// @Failure 400 {object} util.Response "invalid or inactive code, or already enrolled"
// @Router /api/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	classroom, err := c.EnrollmentService.Enroll(req.Code, claims.UserID)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, classroom)
}

// GetCode godoc
// @Summary Get the classroom's enrollment code
// @Description Mints a code on first request; later calls return the same one
// @Tags enrollment
// @Produce  json
// @Security ApiKeyAuth
// @Param   classroomId path int true "classroom id"
// @Success 200 {object} util.Response{data=model.EnrollmentCode}
// @Failure 404 {object} util.Response
// @Router /api/enrollment/{classroomId} [get]
func (c *EnrollmentController) GetCode(ctx *gin.Context) {
	classroomID, ok := pathID(ctx, "classroomId")
	if !ok {
		return
	}
	claims := util.GetUserFromContext(ctx)
	code, err := c.EnrollmentService.GetForClassroom(classroomID, claims.UserID, claims.Role)
	if err != nil {
		replyServiceError(ctx, err)
		return
	}
	util.Success(ctx, code)
}

type EnrollmentCodeUpdateRequest struct {
	Rotate   bool  `json:"rotate"`
	IsActive *bool `json:"isActive"`
}

// UpdateCode godoc
// @Summary Rotate or toggle the classroom's enrollment code
// @Description Rotation replaces the code value and reactivates it
// @Tags enrollment
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   classroomId path int true "classroom id"
// @Param   body body EnrollmentCodeUpdateRequest true "update payload"
// @Success 200 {object} util.Response{data=model.EnrollmentCode}
// @Failure 404 {object} util.Response
// @Router /api/enrollment/{classroomId} [put]
func (c *EnrollmentController) UpdateCode(ctx *gin.Context) {
	classroomID, ok := pathID(ctx, "classroomId")
	if !ok {
		return
	}
	var req EnrollmentCodeUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if req.Rotate {
		code, err := c.EnrollmentService.Rotate(classroomID, claims.UserID, claims.Role)
		if err != nil {
			replyServiceError(ctx, err)
			return
		}
		util.Success(ctx, code)
		return
	}
	if req.IsActive != nil {
		code, err := c.EnrollmentService.SetActive(classroomID, claims.UserID, claims.Role, *req.IsActive)
		if err != nil {
			replyServiceError(ctx, err)
			return
		}
		util.Success(ctx, code)
		return
	}
	util.BadRequest(ctx, "nothing to update")
}
