package domain

const (
	OutputSpeechSSML = "SSML"

	CardTypeAskForPermissionsConsent = "AskForPermissionsConsent"

	// PermissionEmailRead is the customer profile scope for reading the email address.
	PermissionEmailRead = "alexa::profile:email:read"
)

// ResponseEnvelope is the payload returned to the platform for one turn.
type ResponseEnvelope struct {
	Version           string                 `json:"version"`
	SessionAttributes map[string]interface{} `json:"sessionAttributes,omitempty"`
	Response          *Response              `json:"response"`
}

type Response struct {
	OutputSpeech     *OutputSpeech `json:"outputSpeech,omitempty"`
	Reprompt         *Reprompt     `json:"reprompt,omitempty"`
	Card             *Card         `json:"card,omitempty"`
	ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
	APIResponse      interface{}   `json:"apiResponse,omitempty"`
}

type OutputSpeech struct {
	Type string `json:"type"`
	SSML string `json:"ssml,omitempty"`
	Text string `json:"text,omitempty"`
}

type Reprompt struct {
	OutputSpeech *OutputSpeech `json:"outputSpeech"`
}

// Card is a platform-rendered card. Only the consent card is produced here.
type Card struct {
	Type        string   `json:"type"`
	Permissions []string `json:"permissions,omitempty"`
}

// SpeechText returns the plain text wrapped in the SSML output speech, or "".
func (r *ResponseEnvelope) SpeechText() string {
	if r == nil || r.Response == nil || r.Response.OutputSpeech == nil {
		return ""
	}
	return unwrapSpeak(r.Response.OutputSpeech.SSML)
}

// RepromptText returns the plain reprompt text, or "".
func (r *ResponseEnvelope) RepromptText() string {
	if r == nil || r.Response == nil || r.Response.Reprompt == nil || r.Response.Reprompt.OutputSpeech == nil {
		return ""
	}
	return unwrapSpeak(r.Response.Reprompt.OutputSpeech.SSML)
}

// EndsSession reports whether the response explicitly closes the session.
func (r *ResponseEnvelope) EndsSession() bool {
	return r != nil && r.Response != nil && r.Response.ShouldEndSession != nil && *r.Response.ShouldEndSession
}

func unwrapSpeak(ssml string) string {
	const open, closing = "<speak>", "</speak>"
	if len(ssml) >= len(open)+len(closing) && ssml[:len(open)] == open && ssml[len(ssml)-len(closing):] == closing {
		return ssml[len(open) : len(ssml)-len(closing)]
	}
	return ssml
}
