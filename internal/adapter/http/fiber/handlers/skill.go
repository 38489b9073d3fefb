package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// Dispatcher answers one skill request.
type Dispatcher interface {
	Dispatch(ctx context.Context, env *domain.RequestEnvelope) *domain.ResponseEnvelope
}

type SkillHandler struct {
	dispatcher Dispatcher
	log        *zap.Logger
}

func NewSkillHandler(dispatcher Dispatcher, log *zap.Logger) *SkillHandler {
	return &SkillHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

// Handle decodes the request envelope and always answers 200 with a response
// envelope once the body is valid JSON.
func (h *SkillHandler) Handle(c *fiber.Ctx) error {
	var env domain.RequestEnvelope
	if err := c.BodyParser(&env); err != nil {
		h.log.Warn("Invalid skill request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid body"})
	}

	resp := h.dispatcher.Dispatch(c.UserContext(), &env)
	return c.JSON(resp)
}
