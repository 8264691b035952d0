package controller

import (
	"errors"
	"io"

	"smart-librarian-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITranscriptionController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
}

type transcriptionController struct {
	transcriptionService service.ITranscriptionService
}

func NewTranscriptionController(transcriptionService service.ITranscriptionService) ITranscriptionController {
	return &transcriptionController{
		transcriptionService: transcriptionService,
	}
}

func (c *transcriptionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/stt")
	h.Post("/transcribe", c.Transcribe)
}

func (c *transcriptionController) Transcribe(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing multipart field 'file'")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file")
	}

	res, err := c.transcriptionService.Transcribe(ctx.Context(), fileHeader.Filename, content)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedAudioType) {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported audio type. Allowed: .mp3, .wav, .m4a, .webm, .ogg")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "STT failed: "+err.Error())
	}

	return ctx.JSON(res)
}
