package skill

import (
	"context"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

const (
	EndSessionIntent = "CustomEndSession"

	slotData        = "data"
	slotConsentCard = "consentCard"
	consentCardOn   = "1"

	goodbyeText = "Goodbye!"
)

// EndSessionAction closes the session.
//
// Slots:
//   - data: text to speak, "Goodbye!" when absent
//   - consentCard: "1" attaches a consent card for the email read permission
type EndSessionAction struct {
	log *zap.Logger
}

func NewEndSessionAction(log *zap.Logger) *EndSessionAction {
	return &EndSessionAction{log: log}
}

func (a *EndSessionAction) Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	speech := goodbyeText
	if v, ok := env.SlotValue(slotData); ok && v != "" {
		speech = v
	}
	consent, _ := env.SlotValue(slotConsentCard)

	a.log.Debug("Custom end session",
		zap.String("request_id", env.RequestID()),
		zap.String("consent_card", consent),
	)

	b := newBuilder(env).Speak(speech).WithShouldEndSession(true)
	if consent == consentCardOn {
		b.WithAskForPermissionsConsentCard(domain.PermissionEmailRead)
	}
	return b.GetResponse()
}
