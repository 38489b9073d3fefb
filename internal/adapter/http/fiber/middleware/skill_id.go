package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// SkillIDRequired rejects requests whose application id is not one of allowed.
// An empty allowed list disables the check. Undecodable bodies are passed on so
// the handler can report them.
func SkillIDRequired(allowed []string, log *zap.Logger) fiber.Handler {
	if len(allowed) == 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	ids := make(map[string]struct{}, len(allowed))
	for _, id := range allowed {
		ids[id] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		var env domain.RequestEnvelope
		if err := json.Unmarshal(c.Body(), &env); err != nil {
			return c.Next()
		}

		id := applicationID(&env)
		if _, ok := ids[id]; !ok {
			log.Warn("Rejected request for unknown skill", zap.String("application_id", id))
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Unknown application id"})
		}

		c.Locals("application_id", id)
		return c.Next()
	}
}

func applicationID(env *domain.RequestEnvelope) string {
	if env.Context != nil && env.Context.System != nil && env.Context.System.Application != nil {
		return env.Context.System.Application.ApplicationID
	}
	if env.Session != nil && env.Session.Application != nil {
		return env.Session.Application.ApplicationID
	}
	return ""
}
