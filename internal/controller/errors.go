package controller

import (
	"errors"
	"strings"

	"quiz_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps service-layer sentinels onto the portal envelope.
// Integrity failures deliberately surface as generic 500s: they indicate
// tampering or a catalog race, and the details stay in the log.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrValidation):
		util.BadRequest(ctx, validationMessage(err))
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx, "Not authorized")
	case errors.Is(err, util.ErrNotFound):
		util.NotFound(ctx, "Resource not found")
	case errors.Is(err, util.ErrAlreadyRequested):
		util.BadRequest(ctx, "A pending request for this organization already exists")
	case errors.Is(err, util.ErrRequestDecided):
		util.BadRequest(ctx, "This request has already been decided")
	default:
		util.ServerError(ctx, err)
	}
}

// validationMessage strips the sentinel prefix so the client sees only
// the human-readable part.
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, util.ErrValidation.Error()+": "); ok {
		return rest
	}
	return msg
}
