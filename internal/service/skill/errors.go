package skill

import (
	"context"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

const troubleText = "Sorry, I had trouble doing what you asked. Please try again."

// DefaultErrorHandler logs the failure and apologizes, keeping the session open.
type DefaultErrorHandler struct {
	log *zap.Logger
}

func NewErrorHandler(log *zap.Logger) *DefaultErrorHandler {
	return &DefaultErrorHandler{log: log}
}

func (h *DefaultErrorHandler) HandleError(ctx context.Context, env *domain.RequestEnvelope, err error) *domain.ResponseEnvelope {
	h.log.Error("Error handled",
		zap.String("request_id", env.RequestID()),
		zap.String("request_type", string(env.Type())),
		zap.Error(err),
	)

	// Built directly so this path cannot fail.
	return &domain.ResponseEnvelope{
		Version: envelopeVersion,
		Response: &domain.Response{
			OutputSpeech: ssml(troubleText),
			Reprompt:     &domain.Reprompt{OutputSpeech: ssml(troubleText)},
		},
	}
}
