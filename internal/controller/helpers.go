package controller

import (
	"errors"
	"net/http"
	"strconv"

	"classquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// pathID parses a numeric path parameter, replying 400 itself on garbage.
func pathID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// replyServiceError maps the service sentinel errors onto HTTP statuses and
// falls through to a logged 500 for anything unexpected.
func replyServiceError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrClassroomNotFound),
		errors.Is(err, util.ErrQuizNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrAttemptNotFound),
		errors.Is(err, util.ErrQuestionAttemptGone):
		util.Error(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrNotClassroomOwner),
		errors.Is(err, util.ErrNotQuizOwner),
		errors.Is(err, util.ErrNotQuestionOwner),
		errors.Is(err, util.ErrNotEnrolled),
		errors.Is(err, util.ErrSubmitForOwnAttempts):
		util.Error(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, util.ErrEmailRegistered):
		util.Error(ctx, http.StatusConflict, err.Error())
	case errors.Is(err, util.ErrQuizNotActive),
		errors.Is(err, util.ErrDeadlinePassed),
		errors.Is(err, util.ErrActiveAttemptExists),
		errors.Is(err, util.ErrAttemptsExhausted),
		errors.Is(err, util.ErrAlreadySubmitted),
		errors.Is(err, util.ErrSingleAnswerOnly),
		errors.Is(err, util.ErrDuplicateAnswer),
		errors.Is(err, util.ErrInvalidCode),
		errors.Is(err, util.ErrAlreadyEnrolled),
		errors.Is(err, util.ErrInvalidScore):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
