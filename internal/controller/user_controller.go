package controller

import (
	"quiz_portal_backend/internal/middleware"
	"quiz_portal_backend/internal/service"
	"quiz_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *service.UserService
}

func NewUserController(svc *service.UserService) *UserController {
	return &UserController{Service: svc}
}

func (c *UserController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	profile, err := c.Service.Me(user)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"user": profile})
}
