package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
	"github.com/seu-repo/dogwalk-skill/internal/observability/telemetry"
	"github.com/seu-repo/dogwalk-skill/internal/ports"
	"github.com/seu-repo/dogwalk-skill/internal/service/email"
)

const (
	// EventSubject is where appointment attempts are published.
	EventSubject = "appointments.scheduled"

	guardPending = "pending"
)

// Config holds the fixed parts of the confirmation email.
type Config struct {
	FromEmail string
	FromName  string
	Subject   string
	// GuardTTL bounds how long a request id is remembered for duplicate deliveries.
	GuardTTL time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		FromEmail: "noreply@dogwalkers.example",
		FromName:  "Dog Walkers",
		Subject:   "Dog Walkers",
		GuardTTL:  10 * time.Minute,
	}
}

// Service books a walk: it resolves the caller's email and sends the confirmation.
// Every failure is mapped to an outcome; Book never returns an error.
type Service struct {
	config    *Config
	profile   ports.ProfileService
	mailer    ports.EmailService
	guard     ports.Cache
	publisher ports.Publisher
	log       *zap.Logger
	now       func() time.Time
}

// NewService creates the appointment service. guard and publisher may be nil.
func NewService(
	config *Config,
	profile ports.ProfileService,
	mailer ports.EmailService,
	guard ports.Cache,
	publisher ports.Publisher,
	log *zap.Logger,
) *Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &Service{
		config:    config,
		profile:   profile,
		mailer:    mailer,
		guard:     guard,
		publisher: publisher,
		log:       log,
		now:       time.Now,
	}
}

// Book handles one MakeAppointment invocation.
func (s *Service) Book(ctx context.Context, env *domain.RequestEnvelope) *domain.AppointmentResult {
	args := GetAPIArguments(env)
	date := stringArgument(args, "date")
	tm := stringArgument(args, "time")

	s.log.Info("Api Request [MakeAppointment]",
		zap.String("request_id", env.RequestID()),
		zap.Stringp("date", date),
		zap.Stringp("time", tm),
	)
	if race, ok := env.SessionAttributes()["dogRace"]; ok {
		s.log.Debug("Dog race from session", zap.Any("dog_race", race))
	}

	outcome := s.book(ctx, env, date, tm)
	telemetry.AppointmentOutcomesTotal.WithLabelValues(string(outcome)).Inc()

	return domain.NewAppointmentResult(outcome, date, tm)
}

func (s *Service) book(ctx context.Context, env *domain.RequestEnvelope, date, tm *string) domain.AppointmentOutcome {
	token := env.AccessToken()
	if token == "" {
		return domain.OutcomeNoToken
	}

	key, replay, ok := s.acquire(ctx, env.RequestID())
	if !ok {
		return replay
	}

	outcome := s.run(ctx, env, token, date, tm)
	s.release(ctx, key, outcome)
	return outcome
}

func (s *Service) run(ctx context.Context, env *domain.RequestEnvelope, token string, date, tm *string) domain.AppointmentOutcome {
	address, err := s.profile.GetProfileEmail(ctx, env.APIEndpoint(), token)
	if err != nil {
		s.log.Warn("Profile email lookup failed", zap.Error(err))
		return domain.OutcomeLookupFailed
	}
	if address == "" {
		return domain.OutcomeNoEmail
	}

	outcome := domain.OutcomeSent
	if err := s.send(ctx, address, deref(date), deref(tm)); err != nil {
		s.log.Error("Appointment email failed", zap.Error(err))
		outcome = domain.OutcomeSendFailed
	}

	s.publish(env, date, tm, outcome)
	return outcome
}

func (s *Service) send(ctx context.Context, to, date, tm string) error {
	text, html, err := email.RenderAppointment(date, tm)
	if err != nil {
		return err
	}

	return s.mailer.Send(ctx, &domain.EmailMessage{
		To:       to,
		From:     s.config.FromEmail,
		FromName: s.config.FromName,
		Subject:  s.config.Subject,
		Text:     text,
		HTML:     html,
	})
}

// acquire claims the request id so the email is attempted at most once per request.
// When the id was already claimed it returns the outcome to replay and ok=false.
// Guard failures fail open.
func (s *Service) acquire(ctx context.Context, requestID string) (string, domain.AppointmentOutcome, bool) {
	if s.guard == nil || requestID == "" {
		return "", "", true
	}

	key := "appointment:" + requestID
	claimed, err := s.guard.SetNX(ctx, key, guardPending, s.config.GuardTTL)
	if err != nil {
		s.log.Warn("Appointment guard unavailable", zap.Error(err))
		return "", "", true
	}
	if claimed {
		return key, "", true
	}

	prev, err := s.guard.Get(ctx, key)
	if err != nil {
		s.log.Warn("Appointment guard read failed", zap.String("key", key), zap.Error(err))
		return "", domain.OutcomeSendFailed, false
	}
	s.log.Info("Duplicate appointment request", zap.String("request_id", requestID), zap.String("previous", prev))

	if outcome := domain.AppointmentOutcome(prev); outcome.Valid() {
		return "", outcome, false
	}
	// still in flight
	return "", domain.OutcomeSendFailed, false
}

func (s *Service) release(ctx context.Context, key string, outcome domain.AppointmentOutcome) {
	if key == "" {
		return
	}
	if err := s.guard.Set(ctx, key, string(outcome), s.config.GuardTTL); err != nil {
		s.log.Warn("Failed to record appointment outcome", zap.String("key", key), zap.Error(err))
	}
}

func (s *Service) publish(env *domain.RequestEnvelope, date, tm *string, outcome domain.AppointmentOutcome) {
	if s.publisher == nil {
		return
	}

	data, err := json.Marshal(domain.AppointmentEvent{
		ID:         uuid.New().String(),
		RequestID:  env.RequestID(),
		UserID:     env.UserID(),
		Date:       date,
		Time:       tm,
		Outcome:    outcome,
		OccurredAt: s.now().UTC(),
	})
	if err != nil {
		s.log.Error("Failed to encode appointment event", zap.Error(err))
		return
	}

	if err := s.publisher.Publish(EventSubject, data); err != nil {
		s.log.Error("Failed to publish appointment event", zap.String("subject", EventSubject), zap.Error(err))
	}
}

// GetAPIArguments returns the arguments of a Dialog.API.Invoked request, or nil.
func GetAPIArguments(env *domain.RequestEnvelope) map[string]interface{} {
	if env == nil || env.Request == nil || env.Request.APIRequest == nil {
		return nil
	}
	return env.Request.APIRequest.Arguments
}

// GetAPISlots returns the resolved slots of a Dialog.API.Invoked request, or nil.
func GetAPISlots(env *domain.RequestEnvelope) map[string]interface{} {
	if env == nil || env.Request == nil || env.Request.APIRequest == nil {
		return nil
	}
	return env.Request.APIRequest.Slots
}

func stringArgument(args map[string]interface{}, name string) *string {
	v, ok := args[name]
	if !ok || v == nil {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		s = fmt.Sprint(v)
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
