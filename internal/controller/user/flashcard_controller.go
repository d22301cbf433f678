package user

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/studyloop/internal/controller"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/middleware"
	"github.com/lshigami/studyloop/internal/service"
	"github.com/rs/zerolog/log"
)

type FlashcardController struct {
	flashcardService service.FlashcardService
}

func NewFlashcardController(fs service.FlashcardService) *FlashcardController {
	return &FlashcardController{flashcardService: fs}
}

// ReviewQueue godoc
// @Summary (User) Build a review session
// @Description Due cards first, earliest due date first, then cards never reviewed.
// @Tags User - Flashcards
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param topic query string false "Limit the session to one topic"
// @Param limit query int false "Maximum number of cards"
// @Success 200 {array} dto.ReviewQueueItemDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 404 {object} dto.ErrorResponse "Unknown topic"
// @Router /flashcards/review-queue [get]
func (c *FlashcardController) ReviewQueue(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		val, err := strconv.Atoi(raw)
		if err != nil || val < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit"})
			return
		}
		limit = val
	}

	queue, err := c.flashcardService.ReviewQueue(ctx.Request.Context(), middleware.UserID(ctx), ctx.Query("topic"), limit)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to build review queue")
		return
	}
	ctx.JSON(http.StatusOK, queue)
}

// SubmitReview godoc
// @Summary (User) Rate a flashcard review
// @Description Applies one SM-2 step for a recall quality between 0 and 5.
// @Tags User - Flashcards
// @Accept json
// @Produce json
// @Param X-User-ID header string true "Caller identity"
// @Param card_id path int true "Flashcard ID"
// @Param body body dto.SubmitReviewDTO true "Recall quality"
// @Success 200 {object} dto.ReviewScheduleDTO
// @Failure 400 {object} dto.ErrorResponse "Quality out of range"
// @Failure 404 {object} dto.ErrorResponse "Flashcard not found"
// @Router /flashcards/{card_id}/reviews [post]
func (c *FlashcardController) SubmitReview(ctx *gin.Context) {
	cardID, err := strconv.ParseUint(ctx.Param("card_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid Flashcard ID format"})
		return
	}
	var req dto.SubmitReviewDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitReview: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	schedule, err := c.flashcardService.SubmitReview(ctx.Request.Context(), middleware.UserID(ctx), uint(cardID), *req.Quality)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to record review")
		return
	}
	ctx.JSON(http.StatusOK, schedule)
}
