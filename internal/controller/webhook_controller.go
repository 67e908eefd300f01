package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"quiz_portal_backend/internal/config"
	"quiz_portal_backend/internal/service"
	"quiz_portal_backend/internal/util"
	"quiz_portal_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	svix "github.com/svix/svix-webhooks/go"
	"go.uber.org/zap"
)

// WebhookController receives user lifecycle events from the identity
// provider. Payloads are svix-signed; an unverifiable body is rejected
// before it is even parsed.
type WebhookController struct {
	Users   *service.UserService
	Webhook *svix.Webhook
}

func NewWebhookController(users *service.UserService, cfg *config.Config) (*WebhookController, error) {
	wh, err := svix.NewWebhook(cfg.Webhook.SigningSecret)
	if err != nil {
		return nil, err
	}
	return &WebhookController{Users: users, Webhook: wh}, nil
}

type webhookEvent struct {
	Type string              `json:"type"`
	Data service.WebhookUser `json:"data"`
}

func (c *WebhookController) HandleIdentityEvent(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		util.BadRequest(ctx, "Unreadable body")
		return
	}

	if err := c.Webhook.Verify(body, ctx.Request.Header); err != nil {
		util.BadRequest(ctx, "Invalid webhook signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		util.BadRequest(ctx, "Malformed webhook payload")
		return
	}

	if event.Type != "user.created" && event.Type != "user.updated" {
		ctx.JSON(http.StatusOK, gin.H{"ok": true, "ignored": true, "type": event.Type})
		return
	}

	if event.Data.ID == "" {
		util.BadRequest(ctx, "Webhook missing user id")
		return
	}

	provisioned, err := c.Users.Provision(&event.Data)
	if err != nil {
		respondError(ctx, err)
		return
	}

	logger.Log.Info("identity webhook processed",
		zap.String("type", event.Type),
		zap.Bool("provisioned", provisioned),
	)
	ctx.JSON(http.StatusOK, gin.H{"ok": true, "type": event.Type, "ignored": !provisioned})
}
