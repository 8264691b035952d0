package controller

import (
	"smart-librarian-be/internal/dto"
	"smart-librarian-be/internal/pkg/serverutils"
	"smart-librarian-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
}

type recommendController struct {
	recommendService service.IRecommendService
}

func NewRecommendController(recommendService service.IRecommendService) IRecommendController {
	return &recommendController{
		recommendService: recommendService,
	}
}

func (c *recommendController) RegisterRoutes(r fiber.Router) {
	r.Post("/recommend", c.Recommend)
}

func (c *recommendController) Recommend(ctx *fiber.Ctx) error {
	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.recommendService.Recommend(ctx.Context(), req.Query)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}
