package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/dogwalk-skill/internal/domain"
	"github.com/seu-repo/dogwalk-skill/internal/mocks"
	"github.com/seu-repo/dogwalk-skill/internal/service/appointment"
	"github.com/seu-repo/dogwalk-skill/internal/service/health"
	"github.com/seu-repo/dogwalk-skill/internal/service/skill"
)

const appointmentRequest = `{
  "version": "1.0",
  "context": {
    "System": {
      "application": {"applicationId": "amzn1.ask.skill.test"},
      "user": {"userId": "amzn1.ask.account.test"},
      "apiEndpoint": "https://api.amazonalexa.com",
      "apiAccessToken": "token-123"
    }
  },
  "request": {
    "type": "Dialog.API.Invoked",
    "requestId": "amzn1.echo-api.request.42",
    "apiRequest": {
      "name": "MakeAppointment",
      "arguments": {"date": "2024-05-01", "time": "10:00"}
    }
  }
}`

const endSessionRequest = `{
  "version": "1.0",
  "session": {"new": false, "sessionId": "s-1", "application": {"applicationId": "amzn1.ask.skill.test"}},
  "request": {
    "type": "IntentRequest",
    "requestId": "amzn1.echo-api.request.43",
    "intent": {
      "name": "CustomEndSession",
      "slots": {
        "data": {"name": "data", "value": "See you"},
        "consentCard": {"name": "consentCard", "value": "1"}
      }
    }
  }
}`

func newTestApp(t *testing.T, mailer *mocks.MockEmailService, allowed []string) *fiber.App {
	t.Helper()
	log := zap.NewNop()

	profile := &mocks.MockProfileService{
		GetProfileEmailFunc: func(ctx context.Context, apiEndpoint, accessToken string) (string, error) {
			if accessToken != "token-123" {
				return "", errors.New("unexpected token")
			}
			return "user@example.com", nil
		},
	}
	booker := appointment.NewService(nil, profile, mailer, mocks.NewMockCache(), nil, log)
	router := skill.NewRouter(skill.Routes(nil, booker, nil, log), skill.NewErrorHandler(log), log)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	app.Post("/alexa", middleware.SkillIDRequired(allowed, log), NewSkillHandler(router, log).Handle)
	return app
}

func post(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/alexa", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, raw
}

func TestSkillHandler_MakeAppointment(t *testing.T) {
	// Arrange
	mailer := &mocks.MockEmailService{}
	app := newTestApp(t, mailer, nil)

	// Act
	status, raw := post(t, app, appointmentRequest)

	// Assert
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, raw)
	}
	var out struct {
		Version  string `json:"version"`
		Response struct {
			APIResponse struct {
				ResponseText string  `json:"response_text"`
				Date         *string `json:"date"`
				Time         *string `json:"time"`
			} `json:"apiResponse"`
		} `json:"response"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	api := out.Response.APIResponse
	if api.ResponseText != "Alright. We have sent you an email with the details of the walk. Have a good day." {
		t.Errorf("unexpected response_text: %q", api.ResponseText)
	}
	if api.Date == nil || *api.Date != "2024-05-01" || api.Time == nil || *api.Time != "10:00" {
		t.Errorf("expected date and time echoed, got %v %v", api.Date, api.Time)
	}
	if len(mailer.Sent) != 1 || mailer.Sent[0].To != "user@example.com" {
		t.Errorf("expected one email to user@example.com, got %+v", mailer.Sent)
	}

	// Redelivery of the same request does not send a second email.
	post(t, app, appointmentRequest)
	if len(mailer.Sent) != 1 {
		t.Errorf("expected redelivery to be deduplicated, got %d emails", len(mailer.Sent))
	}
}

func TestSkillHandler_EndSessionWithConsentCard(t *testing.T) {
	app := newTestApp(t, &mocks.MockEmailService{}, nil)

	status, raw := post(t, app, endSessionRequest)

	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var out domain.ResponseEnvelope
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if out.SpeechText() != "See you" {
		t.Errorf("unexpected speech: %q", out.SpeechText())
	}
	if !out.EndsSession() {
		t.Error("expected session to end")
	}
	if out.Response.Card == nil || out.Response.Card.Permissions[0] != "alexa::profile:email:read" {
		t.Errorf("expected email consent card, got %+v", out.Response.Card)
	}
}

func TestSkillHandler_InvalidBody(t *testing.T) {
	app := newTestApp(t, &mocks.MockEmailService{}, nil)

	status, _ := post(t, app, `{"version":`)

	if status != fiber.StatusBadRequest {
		t.Errorf("expected 400, got %d", status)
	}
}

func TestSkillHandler_UnknownRequestType(t *testing.T) {
	app := newTestApp(t, &mocks.MockEmailService{}, nil)

	status, raw := post(t, app, `{"version":"1.0","request":{"type":"CanFulfillIntentRequest","requestId":"r"}}`)

	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var out domain.ResponseEnvelope
	_ = json.Unmarshal(raw, &out)
	if out.SpeechText() != "Sorry, I had trouble doing what you asked. Please try again." {
		t.Errorf("unexpected speech: %q", out.SpeechText())
	}
}

func TestSkillIDRequired(t *testing.T) {
	app := newTestApp(t, &mocks.MockEmailService{}, []string{"amzn1.ask.skill.other"})

	status, _ := post(t, app, endSessionRequest)
	if status != fiber.StatusForbidden {
		t.Errorf("expected 403 for foreign skill id, got %d", status)
	}

	app = newTestApp(t, &mocks.MockEmailService{}, []string{"amzn1.ask.skill.test"})
	status, _ = post(t, app, endSessionRequest)
	if status != fiber.StatusOK {
		t.Errorf("expected 200 for session application id, got %d", status)
	}
	status, _ = post(t, app, appointmentRequest)
	if status != fiber.StatusOK {
		t.Errorf("expected 200 for context application id, got %d", status)
	}
}

func TestHealthHandler(t *testing.T) {
	healthy := true
	svc := health.NewService("v1", zap.NewNop())
	svc.RegisterChecker("cache", health.PingChecker(func(context.Context) error {
		if healthy {
			return nil
		}
		return errors.New("down")
	}, zap.NewNop()))
	h := NewHealthHandler(svc)

	app := fiber.New()
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)

	for _, tc := range []struct {
		path    string
		healthy bool
		want    int
	}{
		{"/health/live", false, fiber.StatusOK},
		{"/health/ready", true, fiber.StatusOK},
		{"/health/ready", false, fiber.StatusServiceUnavailable},
	} {
		healthy = tc.healthy
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != tc.want {
			t.Errorf("%s (healthy=%v): expected %d, got %d", tc.path, tc.healthy, tc.want, resp.StatusCode)
		}
	}
}
