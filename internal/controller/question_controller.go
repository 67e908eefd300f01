package controller

import (
	"strconv"

	"quiz_portal_backend/internal/service"
	"quiz_portal_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

func (c *QuestionController) Create(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Malformed request body")
		return
	}

	q, err := c.Service.Create(&req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"question": q})
}

func (c *QuestionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var domainID *string
	if v := ctx.Query("domain_id"); v != "" {
		domainID = &v
	}

	qs, total, err := c.Service.List(domainID, page, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"questions": qs, "total": total, "page": page, "limit": limit})
}

func (c *QuestionController) Get(ctx *gin.Context) {
	q, err := c.Service.Get(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"question": q})
}

func (c *QuestionController) Update(ctx *gin.Context) {
	var req service.QuestionReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Malformed request body")
		return
	}

	q, err := c.Service.Update(ctx.Param("id"), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"question": q})
}

func (c *QuestionController) Delete(ctx *gin.Context) {
	if err := c.Service.Delete(ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"deleted": true})
}
