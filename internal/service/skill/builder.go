package skill

import (
	"errors"
	"strings"

	"github.com/seu-repo/dogwalk-skill/internal/domain"
)

const envelopeVersion = "1.0"

var ssmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// ErrEmptyResponse is returned when a response has no speech and was not marked silent.
var ErrEmptyResponse = errors.New("response has no output speech")

// ResponseBuilder accumulates one turn's response. It is not safe to reuse across turns.
type ResponseBuilder struct {
	speech     string
	reprompt   string
	permission []string
	endSession *bool
	silent     bool
	apiResult  interface{}
	attributes map[string]interface{}
}

func NewResponseBuilder() *ResponseBuilder {
	return &ResponseBuilder{}
}

// Speak sets the spoken text. Markup characters are escaped.
func (b *ResponseBuilder) Speak(text string) *ResponseBuilder {
	b.speech = ssmlEscaper.Replace(text)
	return b
}

// SpeakSSML sets spoken markup that is placed inside <speak> unchanged.
func (b *ResponseBuilder) SpeakSSML(markup string) *ResponseBuilder {
	b.speech = markup
	return b
}

func (b *ResponseBuilder) Reprompt(text string) *ResponseBuilder {
	b.reprompt = ssmlEscaper.Replace(text)
	return b
}

// WithAskForPermissionsConsentCard attaches a consent card requesting the given scopes.
func (b *ResponseBuilder) WithAskForPermissionsConsentCard(permissions ...string) *ResponseBuilder {
	b.permission = append([]string(nil), permissions...)
	return b
}

func (b *ResponseBuilder) WithShouldEndSession(end bool) *ResponseBuilder {
	b.endSession = &end
	return b
}

// Silent marks the response as an intentionally empty terminal response.
func (b *ResponseBuilder) Silent() *ResponseBuilder {
	b.silent = true
	return b
}

// WithAPIResponse attaches structured data for a Dialog.API.Invoked request.
// Such responses carry no speech.
func (b *ResponseBuilder) WithAPIResponse(v interface{}) *ResponseBuilder {
	b.apiResult = v
	return b
}

// WithSessionAttributes echoes the platform-owned attributes back unchanged.
func (b *ResponseBuilder) WithSessionAttributes(attrs map[string]interface{}) *ResponseBuilder {
	b.attributes = attrs
	return b
}

// GetResponse finalizes the builder into a response envelope.
func (b *ResponseBuilder) GetResponse() (*domain.ResponseEnvelope, error) {
	if b.speech == "" && !b.silent && b.apiResult == nil {
		return nil, ErrEmptyResponse
	}

	resp := &domain.Response{
		ShouldEndSession: b.endSession,
		APIResponse:      b.apiResult,
	}
	if b.speech != "" {
		resp.OutputSpeech = ssml(b.speech)
	}
	if b.reprompt != "" {
		resp.Reprompt = &domain.Reprompt{OutputSpeech: ssml(b.reprompt)}
	}
	if len(b.permission) > 0 {
		resp.Card = &domain.Card{
			Type:        domain.CardTypeAskForPermissionsConsent,
			Permissions: b.permission,
		}
	}

	return &domain.ResponseEnvelope{
		Version:           envelopeVersion,
		SessionAttributes: b.attributes,
		Response:          resp,
	}, nil
}

func ssml(text string) *domain.OutputSpeech {
	return &domain.OutputSpeech{
		Type: domain.OutputSpeechSSML,
		SSML: "<speak>" + text + "</speak>",
	}
}
