package skill

import (
	"context"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

// Booker books an appointment and always yields a result.
type Booker interface {
	Book(ctx context.Context, env *domain.RequestEnvelope) *domain.AppointmentResult
}

// AppointmentAction answers the MakeAppointment API invocation with structured data.
type AppointmentAction struct {
	booker Booker
}

func NewAppointmentAction(booker Booker) *AppointmentAction {
	return &AppointmentAction{booker: booker}
}

func (a *AppointmentAction) Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	result := a.booker.Book(ctx, env)
	return NewResponseBuilder().
		WithSessionAttributes(env.SessionAttributes()).
		WithAPIResponse(result).
		GetResponse()
}
