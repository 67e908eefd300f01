package controller

import (
	"quiz_portal_backend/internal/middleware"
	"quiz_portal_backend/internal/service"
	"quiz_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type OrgController struct {
	Service *service.OrgService
}

func NewOrgController(svc *service.OrgService) *OrgController {
	return &OrgController{Service: svc}
}

func (c *OrgController) ListOrganizations(ctx *gin.Context) {
	orgs, err := c.Service.ListOrganizations()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"organizations": orgs})
}

type createRequestReq struct {
	RequestedOrganizationID string `json:"requested_organization_id"`
}

func (c *OrgController) CreateRequest(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	var req createRequestReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Malformed request body")
		return
	}

	created, err := c.Service.RequestMembership(user.ID, req.RequestedOrganizationID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"request": created})
}

func (c *OrgController) PendingRequests(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	rows, err := c.Service.PendingRequests(user, middleware.CurrentRoles(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"requests": rows})
}

type decideReq struct {
	RequestID string `json:"request_id"`
	Approve   bool   `json:"approve"`
	RoleID    string `json:"role_id"`
}

func (c *OrgController) Decide(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	var req decideReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Malformed request body")
		return
	}

	decided, err := c.Service.Decide(user, middleware.CurrentRoles(ctx), req.RequestID, req.Approve, req.RoleID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"request": decided})
}

func (c *OrgController) OrgUsers(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	orgID := ctx.Query("organization_id")
	rows, err := c.Service.OrgUsers(user, middleware.CurrentRoles(ctx), orgID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"users": rows})
}

func (c *OrgController) ListRoles(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	roles, err := c.Service.AssignableRoles(user, middleware.CurrentRoles(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"roles": roles})
}
