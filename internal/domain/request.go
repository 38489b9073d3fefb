package domain

// RequestType identifies the kind of an inbound skill request.
type RequestType string

const (
	RequestTypeLaunch       RequestType = "LaunchRequest"
	RequestTypeIntent       RequestType = "IntentRequest"
	RequestTypeAPIInvoked   RequestType = "Dialog.API.Invoked"
	RequestTypeSessionEnded RequestType = "SessionEndedRequest"
)

// RequestEnvelope is one turn delivered by the voice platform.
// It is read-only once decoded.
type RequestEnvelope struct {
	Version string   `json:"version"`
	Session *Session `json:"session,omitempty"`
	Context *Context `json:"context,omitempty"`
	Request *Request `json:"request,omitempty"`
}

type Session struct {
	New         bool                   `json:"new"`
	SessionID   string                 `json:"sessionId"`
	Application *Application           `json:"application,omitempty"`
	Attributes  map[string]interface{} `json:"attributes,omitempty"`
	User        *User                  `json:"user,omitempty"`
}

type Application struct {
	ApplicationID string `json:"applicationId"`
}

type User struct {
	UserID      string `json:"userId"`
	AccessToken string `json:"accessToken,omitempty"`
}

type Context struct {
	System *System `json:"System,omitempty"`
}

// System carries the platform credentials scoped to this turn.
type System struct {
	Application    *Application `json:"application,omitempty"`
	User           *User        `json:"user,omitempty"`
	APIEndpoint    string       `json:"apiEndpoint,omitempty"`
	APIAccessToken string       `json:"apiAccessToken,omitempty"`
}

type Request struct {
	Type       RequestType   `json:"type"`
	RequestID  string        `json:"requestId"`
	Timestamp  string        `json:"timestamp,omitempty"`
	Locale     string        `json:"locale,omitempty"`
	Reason     string        `json:"reason,omitempty"`
	Intent     *Intent       `json:"intent,omitempty"`
	APIRequest *APIRequest   `json:"apiRequest,omitempty"`
	Error      *RequestError `json:"error,omitempty"`
}

type Intent struct {
	Name               string           `json:"name"`
	ConfirmationStatus string           `json:"confirmationStatus,omitempty"`
	Slots              map[string]*Slot `json:"slots,omitempty"`
}

type Slot struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// APIRequest is the payload of a Dialog.API.Invoked request.
type APIRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments,omitempty"`
	Slots     map[string]interface{} `json:"slots,omitempty"`
}

type RequestError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Type returns the request type, or "" when the request substructure is missing.
func (e *RequestEnvelope) Type() RequestType {
	if e == nil || e.Request == nil {
		return ""
	}
	return e.Request.Type
}

// RequestID returns the platform request id, or "".
func (e *RequestEnvelope) RequestID() string {
	if e == nil || e.Request == nil {
		return ""
	}
	return e.Request.RequestID
}

// AccessToken returns the API access token surfaced for this turn.
func (e *RequestEnvelope) AccessToken() string {
	if e == nil || e.Context == nil || e.Context.System == nil {
		return ""
	}
	return e.Context.System.APIAccessToken
}

// APIEndpoint returns the regional platform API endpoint for this turn.
func (e *RequestEnvelope) APIEndpoint() string {
	if e == nil || e.Context == nil || e.Context.System == nil {
		return ""
	}
	return e.Context.System.APIEndpoint
}

func (e *RequestEnvelope) UserID() string {
	if e == nil {
		return ""
	}
	if e.Context != nil && e.Context.System != nil && e.Context.System.User != nil {
		return e.Context.System.User.UserID
	}
	if e.Session != nil && e.Session.User != nil {
		return e.Session.User.UserID
	}
	return ""
}

// SessionAttributes returns the platform-owned session attributes. Callers must not mutate them.
func (e *RequestEnvelope) SessionAttributes() map[string]interface{} {
	if e == nil || e.Session == nil {
		return nil
	}
	return e.Session.Attributes
}

// SlotValue returns the value of the named intent slot and whether it was present.
func (e *RequestEnvelope) SlotValue(name string) (string, bool) {
	if e == nil || e.Request == nil || e.Request.Intent == nil {
		return "", false
	}
	slot, ok := e.Request.Intent.Slots[name]
	if !ok || slot == nil {
		return "", false
	}
	return slot.Value, true
}
