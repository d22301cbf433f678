package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lshigami/studyloop/internal/controller"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/middleware"
	"github.com/lshigami/studyloop/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(as service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: as}
}

func parseAttemptID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param("attempt_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Attempt ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// StartAttempt godoc
// @Summary (User) Start an attempt
// @Description Creates an in-progress attempt for a quiz, mock test or practice paper. Timed tests start with their full countdown.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param body body dto.StartAttemptDTO true "Test to attempt"
// @Success 201 {object} dto.AttemptStartedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /attempts [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartAttempt: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	started, err := c.attemptService.StartAttempt(ctx.Request.Context(), middleware.UserID(ctx), req.TestID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to start attempt")
		return
	}
	ctx.JSON(http.StatusCreated, started)
}

// SaveProgress godoc
// @Summary (User) Autosave attempt progress
// @Description Merges partial answers field by field. Calls against a completed attempt are accepted and ignored.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param attempt_id path string true "Attempt ID"
// @Param body body dto.SaveProgressDTO true "Partial progress"
// @Success 204 "Saved"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 409 {object} dto.ErrorResponse "Attempt is being modified concurrently"
// @Router /attempts/{attempt_id}/progress [patch]
func (c *AttemptController) SaveProgress(ctx *gin.Context) {
	attemptID, ok := parseAttemptID(ctx)
	if !ok {
		return
	}
	var req dto.SaveProgressDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveProgress: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.SaveProgress(ctx.Request.Context(), attemptID, middleware.UserID(ctx), req); err != nil {
		controller.RespondError(ctx, err, "Failed to save progress")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SubmitAttempt godoc
// @Summary (User) Submit an attempt for scoring
// @Description Completes and scores the attempt. Submitting a completed attempt again returns the stored result.
// @Tags User - Attempts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.ScoreResultDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id}/submit [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	attemptID, ok := parseAttemptID(ctx)
	if !ok {
		return
	}
	result, err := c.attemptService.SubmitAttempt(ctx.Request.Context(), attemptID, middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit attempt")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAttempt godoc
// @Summary (User) Get an attempt
// @Tags User - Attempts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptDetailDTO
// @Failure 403 {object} dto.ErrorResponse "Attempt belongs to another user"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attemptID, ok := parseAttemptID(ctx)
	if !ok {
		return
	}
	detail, err := c.attemptService.GetAttempt(ctx.Request.Context(), attemptID, middleware.UserID(ctx))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempt")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListAttempts godoc
// @Summary (User) List the caller's attempts
// @Tags User - Attempts
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param test_id query int false "Only attempts of this test"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid Test ID format"
// @Router /attempts [get]
func (c *AttemptController) ListAttempts(ctx *gin.Context) {
	var testID *uint
	if raw := ctx.Query("test_id"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Test ID format in query"})
			return
		}
		id := uint(val)
		testID = &id
	}

	attempts, err := c.attemptService.ListAttempts(ctx.Request.Context(), middleware.UserID(ctx), testID)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
