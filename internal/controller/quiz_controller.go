package controller

import (
	"errors"

	"quiz_portal_backend/internal/middleware"
	"quiz_portal_backend/internal/service"
	"quiz_portal_backend/internal/util"
	"quiz_portal_backend/pkg/monitoring"
	"quiz_portal_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Quiz    *service.QuizService
	Domains *service.DomainService
}

func NewQuizController(quiz *service.QuizService, domains *service.DomainService) *QuizController {
	return &QuizController{Quiz: quiz, Domains: domains}
}

// Start draws a fresh 25-question set, optionally filtered by domain.
// The payload never contains correctness flags.
func (c *QuizController) Start(ctx *gin.Context) {
	var domainID *string
	if v := ctx.Query("domain_id"); v != "" {
		domainID = &v
	}

	questions, err := c.Quiz.StartQuiz(domainID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.OK(ctx, gin.H{"questions": questions})
}

// Submit accepts the full answer sheet, re-scores it server-side and
// persists the session atomically.
func (c *QuizController) Submit(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	var req service.SubmitQuizReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		monitoring.QuizSubmissions.WithLabelValues("validation_error").Inc()
		util.BadRequest(ctx, "Malformed request body")
		return
	}

	result, err := c.Quiz.SubmitQuiz(user, &req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrValidation):
			monitoring.QuizSubmissions.WithLabelValues("validation_error").Inc()
		case errors.Is(err, util.ErrIntegrity):
			monitoring.QuizSubmissions.WithLabelValues("integrity_error").Inc()
		default:
			monitoring.QuizSubmissions.WithLabelValues("server_error").Inc()
		}
		respondError(ctx, err)
		return
	}

	monitoring.QuizSubmissions.WithLabelValues("accepted").Inc()
	tracing.AnnotateSubmission(ctx.Request.Context(), result.QuizSessionID, result.CorrectCount, result.PercentScore)
	util.OK(ctx, gin.H{
		"quiz_session_id": result.QuizSessionID,
		"correct_count":   result.CorrectCount,
		"percent_score":   result.PercentScore,
	})
}

func (c *QuizController) ListDomains(ctx *gin.Context) {
	domains, err := c.Domains.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"domains": domains})
}

func (c *QuizController) ListSessions(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	sessions, err := c.Quiz.SessionsForUser(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"sessions": sessions})
}

func (c *QuizController) ReviewSession(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx, "Sign in required")
		return
	}

	review, err := c.Quiz.ReviewSession(user, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.OK(ctx, gin.H{"review": review})
}
