package skill

import (
	"context"
	"fmt"
	"html"

	"go.uber.org/zap"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
	"github.com/seu-repo/dogwalk-skill/internal/ports"
)

const (
	AppointmentAPI = "MakeAppointment"

	HelloWorldIntent = "HelloWorldIntent"
	HelpIntent       = "AMAZON.HelpIntent"
	CancelIntent     = "AMAZON.CancelIntent"
	StopIntent       = "AMAZON.StopIntent"
	FallbackIntent   = "AMAZON.FallbackIntent"

	welcomeText  = "Welcome, you can say Hello or Help. Which would you like to try?"
	helloText    = "Hello World!"
	helpText     = "You can say hello to me! How can I help?"
	fallbackText = "Sorry, I don't know about that. Please try again."
)

// Config tunes the built-in handlers.
type Config struct {
	// WelcomeAudioKey is an optional object key played before the welcome text.
	WelcomeAudioKey string
}

// Routes returns the skill route table in evaluation order. signer may be nil.
func Routes(cfg *Config, booker Booker, signer ports.URLSigner, log *zap.Logger) []Route {
	if cfg == nil {
		cfg = &Config{}
	}
	return []Route{
		{Name: "launch", Type: domain.RequestTypeLaunch, Action: NewLaunchAction(cfg.WelcomeAudioKey, signer, log)},
		{Name: "make_appointment", Type: domain.RequestTypeAPIInvoked, Names: []string{AppointmentAPI}, Action: NewAppointmentAction(booker)},
		{Name: "hello_world", Type: domain.RequestTypeIntent, Names: []string{HelloWorldIntent}, Action: speak(helloText, false)},
		{Name: "help", Type: domain.RequestTypeIntent, Names: []string{HelpIntent}, Action: speak(helpText, true)},
		{Name: "end_session", Type: domain.RequestTypeIntent, Names: []string{EndSessionIntent}, Action: NewEndSessionAction(log)},
		{Name: "cancel_stop", Type: domain.RequestTypeIntent, Names: []string{CancelIntent, StopIntent}, Action: speak(goodbyeText, false)},
		{Name: "fallback", Type: domain.RequestTypeIntent, Names: []string{FallbackIntent}, Action: speak(fallbackText, true)},
		{Name: "session_ended", Type: domain.RequestTypeSessionEnded, Action: NewSessionEndedAction(log)},
		{Name: "intent_reflector", Type: domain.RequestTypeIntent, Action: ActionFunc(reflectIntent)},
	}
}

func newBuilder(env *domain.RequestEnvelope) *ResponseBuilder {
	return NewResponseBuilder().WithSessionAttributes(env.SessionAttributes())
}

// speak answers with fixed text, optionally reprompting with the same text.
func speak(text string, reprompt bool) ActionFunc {
	return func(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
		b := newBuilder(env).Speak(text)
		if reprompt {
			b.Reprompt(text)
		}
		return b.GetResponse()
	}
}

func reflectIntent(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	return newBuilder(env).
		Speak(fmt.Sprintf("You just triggered %s", IntentName(env))).
		GetResponse()
}

// LaunchAction greets the user, prefixed by a signed audio clip when configured.
type LaunchAction struct {
	audioKey string
	signer   ports.URLSigner
	log      *zap.Logger
}

func NewLaunchAction(audioKey string, signer ports.URLSigner, log *zap.Logger) *LaunchAction {
	return &LaunchAction{audioKey: audioKey, signer: signer, log: log}
}

func (a *LaunchAction) Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	b := newBuilder(env).Speak(welcomeText).Reprompt(welcomeText)
	if a.signer != nil && a.audioKey != "" {
		url, err := a.signer.PresignedGetURL(ctx, a.audioKey)
		if err != nil {
			a.log.Warn("Welcome audio unavailable", zap.String("key", a.audioKey), zap.Error(err))
		} else {
			b.SpeakSSML(fmt.Sprintf(`<audio src="%s"/> %s`, html.EscapeString(url), ssmlEscaper.Replace(welcomeText)))
		}
	}

	return b.GetResponse()
}

// SessionEndedAction acknowledges the end of a session with an empty response.
type SessionEndedAction struct {
	log *zap.Logger
}

func NewSessionEndedAction(log *zap.Logger) *SessionEndedAction {
	return &SessionEndedAction{log: log}
}

func (a *SessionEndedAction) Handle(ctx context.Context, env *domain.RequestEnvelope) (*domain.ResponseEnvelope, error) {
	fields := []zap.Field{
		zap.String("request_id", env.RequestID()),
		zap.String("reason", env.Request.Reason),
	}
	if env.Request.Error != nil {
		fields = append(fields,
			zap.String("error_type", env.Request.Error.Type),
			zap.String("error_message", env.Request.Error.Message),
		)
	}
	a.log.Info("Session ended", fields...)

	return NewResponseBuilder().Silent().GetResponse()
}
