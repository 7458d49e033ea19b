package controller

import (
	"notevault-be/internal/dto"
	"notevault-be/internal/pkg/serverutils"
	"notevault-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IShareController interface {
	RegisterRoutes(r fiber.Router)
	Grant(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Revoke(ctx *fiber.Ctx) error
}

type shareController struct {
	shareService service.IShareService
}

func NewShareController(shareService service.IShareService) IShareController {
	return &shareController{
		shareService: shareService,
	}
}

func (c *shareController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":id/shares", c.Grant)
	h.Get(":id/shares", c.List)
	h.Delete(":id/shares/:userId", c.Revoke)
}

func (c *shareController) Grant(ctx *fiber.Ctx) error {
	userId := principalId(ctx)
	noteId, _ := uuid.Parse(ctx.Params("id"))

	var req dto.GrantShareRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.shareService.Grant(ctx.Context(), userId, noteId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success share note", res))
}

func (c *shareController) List(ctx *fiber.Ctx) error {
	userId := principalId(ctx)
	noteId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.shareService.List(ctx.Context(), userId, noteId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list shares", res))
}

func (c *shareController) Revoke(ctx *fiber.Ctx) error {
	userId := principalId(ctx)
	noteId, _ := uuid.Parse(ctx.Params("id"))
	targetUserId, _ := uuid.Parse(ctx.Params("userId"))

	if err := c.shareService.Revoke(ctx.Context(), userId, noteId, targetUserId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove share", nil))
}
