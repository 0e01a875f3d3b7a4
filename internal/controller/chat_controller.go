package controller

import (
	"docchat-be/internal/dto"
	"docchat-be/internal/pkg/serverutils"
	"docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	NewChat(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	SubmitQuery(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService service.IChatService
}

func NewChatController(chatService service.IChatService) IChatController {
	return &chatController{
		chatService: chatService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Post("", c.NewChat)
	h.Get("", c.List)
	h.Get(":chatId/history", c.History)
	h.Delete(":chatId", c.Clear)
	h.Post("query", c.SubmitQuery)
}

func (c *chatController) NewChat(ctx *fiber.Ctx) error {
	res, err := c.chatService.NewChat(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success create chat", res))
}

func (c *chatController) List(ctx *fiber.Ctx) error {
	res, err := c.chatService.ListChats(ctx.UserContext())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list chats", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	chatId := ctx.Params("chatId")
	if chatId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "chatId is required")
	}

	res, err := c.chatService.GetHistory(ctx.UserContext(), chatId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show chat history", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	chatId := ctx.Params("chatId")
	if chatId == "" {
		return fiber.NewError(fiber.StatusBadRequest, "chatId is required")
	}

	if err := c.chatService.ClearChat(ctx.UserContext(), chatId); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success clear chat", nil))
}

// SubmitQuery is the HTTP fallback for clients without a socket; the
// answer still streams to the chat room, the final message is returned
// here as well.
func (c *chatController) SubmitQuery(ctx *fiber.Ctx) error {
	var req dto.SubmitQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	msg, err := c.chatService.SubmitQuery(ctx.UserContext(), req.ChatId, req.Query, req.Model)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success submit query", dto.ChatMessageResponse{
		Id:        msg.Id,
		ChatId:    msg.ChatId,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}))
}
