package handler

import (
	"io"

	"auralearn/internal/logger"
	"auralearn/internal/middleware"
	"auralearn/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GenerationHandler struct {
	generationService service.GenerationService
}

func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// SelectFile uploads a syllabus document and selects it for generation.
// @Summary Select source file
// @Description Accepts a multipart upload (field "file") and moves the workflow to file_selected.
// @Tags generation
// @Security ApiKeyAuth
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Source document (pdf, doc, docx or txt)"
// @Success 200 {object} dto.GenerationStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "Unsupported file type"
// @Router /generation/file [post]
func (h *GenerationHandler) SelectFile(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "MISSING_FILE", Message: "Multipart field 'file' is required", Status: fiber.StatusBadRequest,
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Get().Error("Failed to open uploaded file", zap.Error(err), zap.String("file", fileHeader.Filename))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "UNREADABLE_FILE", Message: "Uploaded file could not be read", Status: fiber.StatusBadRequest,
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		logger.Get().Error("Failed to read uploaded file", zap.Error(err), zap.String("file", fileHeader.Filename))
		return c.Status(fiber.StatusBadRequest).JSON(middleware.ErrorResponse{
			Code: "UNREADABLE_FILE", Message: "Uploaded file could not be read", Status: fiber.StatusBadRequest,
		})
	}

	state, err := h.generationService.SelectFile(c.Context(), userID, fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(state)
}

// StartGeneration kicks off quiz generation for the selected file.
// @Summary Start generation
// @Tags generation
// @Security ApiKeyAuth
// @Produce json
// @Success 202 {object} dto.GenerationStateResponse
// @Failure 400 {object} middleware.ValidationErrorResponse "No file selected"
// @Router /generation/start [post]
func (h *GenerationHandler) StartGeneration(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)

	state, err := h.generationService.StartGeneration(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(state)
}

// GetState returns the current workflow snapshot, including the
// generated quiz once the job completes.
// @Summary Generation state
// @Tags generation
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} dto.GenerationStateResponse
// @Router /generation [get]
func (h *GenerationHandler) GetState(c *fiber.Ctx) error {
	userID := c.Locals(middleware.UserIDKey).(string)
	return c.Status(fiber.StatusOK).JSON(h.generationService.GetState(c.Context(), userID))
}
