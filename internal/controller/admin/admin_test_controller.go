package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/studyloop/internal/controller"
	"github.com/lshigami/studyloop/internal/dto"
	"github.com/lshigami/studyloop/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminTestController struct {
	adminTestService service.AdminTestService
}

func NewAdminTestController(adminTestService service.AdminTestService) *AdminTestController {
	return &AdminTestController{adminTestService: adminTestService}
}

// CreateTest godoc
// @Summary (Admin) Create a new test
// @Description Admin creates a quiz, mock test or practice paper together with all its questions.
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param test_data body dto.TestCreateDTO true "Test definition including every question and its correct answer"
// @Success 201 {object} dto.TestResponseDTO "Test created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/tests [post]
func (c *AdminTestController) CreateTest(ctx *gin.Context) {
	var req dto.TestCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateTest: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	testResp, err := c.adminTestService.CreateTest(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create test")
		return
	}
	ctx.JSON(http.StatusCreated, testResp)
}

// CreateFlashcard godoc
// @Summary (Admin) Create a flashcard
// @Tags Admin - Content
// @Accept json
// @Produce json
// @Param card body dto.FlashcardCreateDTO true "Flashcard content"
// @Success 201 {object} dto.FlashcardResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/flashcards [post]
func (c *AdminTestController) CreateFlashcard(ctx *gin.Context) {
	var req dto.FlashcardCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateFlashcard: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	card, err := c.adminTestService.CreateFlashcard(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create flashcard")
		return
	}
	ctx.JSON(http.StatusCreated, card)
}
