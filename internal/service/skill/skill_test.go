package skill

import (
	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func intentRequest(name string, slots map[string]string) *domain.RequestEnvelope {
	s := make(map[string]*domain.Slot, len(slots))
	for k, v := range slots {
		s[k] = &domain.Slot{Name: k, Value: v}
	}
	return &domain.RequestEnvelope{
		Version: "1.0",
		Request: &domain.Request{
			Type:      domain.RequestTypeIntent,
			RequestID: "req-intent",
			Intent:    &domain.Intent{Name: name, Slots: s},
		},
	}
}

func apiRequest(name string, args map[string]interface{}) *domain.RequestEnvelope {
	return &domain.RequestEnvelope{
		Version: "1.0",
		Request: &domain.Request{
			Type:       domain.RequestTypeAPIInvoked,
			RequestID:  "req-api",
			APIRequest: &domain.APIRequest{Name: name, Arguments: args},
		},
	}
}

func typedRequest(t domain.RequestType) *domain.RequestEnvelope {
	return &domain.RequestEnvelope{
		Version: "1.0",
		Request: &domain.Request{Type: t, RequestID: "req-" + string(t)},
	}
}
