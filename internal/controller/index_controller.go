package controller

import (
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"
	"docchat-be/pkg/ingest"

	"github.com/gofiber/fiber/v2"
)

type IIndexController interface {
	RegisterRoutes(r fiber.Router)
	Sync(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type indexController struct {
	ingestionService service.IIngestionService
	orchestrator     *ingest.Orchestrator
}

func NewIndexController(ingestionService service.IIngestionService, orchestrator *ingest.Orchestrator) IIndexController {
	return &indexController{
		ingestionService: ingestionService,
		orchestrator:     orchestrator,
	}
}

func (c *indexController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/index/v1")
	h.Post("sync", c.Sync)
	h.Post("reset", c.Reset)
}

// Sync enqueues an index update; progress is delivered to the reply
// room over the websocket.
func (c *indexController) Sync(ctx *fiber.Ctx) error {
	replyRoom := ctx.Query("reply_room")
	if err := c.ingestionService.TriggerSync(ctx.UserContext(), replyRoom); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Index sync queued", dto.IndexSyncResponse{Triggered: true}))
}

func (c *indexController) Reset(ctx *fiber.Ctx) error {
	if err := c.orchestrator.Reset(ctx.UserContext()); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Index reset", dto.IndexResetResponse{Reset: true}))
}
