package controller

import (
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IModelController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type modelController struct {
	catalog service.IModelCatalogService
}

func NewModelController(catalog service.IModelCatalogService) IModelController {
	return &modelController{
		catalog: catalog,
	}
}

func (c *modelController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/model/v1")
	h.Get("", c.List)
}

func (c *modelController) List(ctx *fiber.Ctx) error {
	res, err := c.catalog.AvailableModels(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list models", res))
}
