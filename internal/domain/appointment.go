package domain

import "time"

// AppointmentOutcome enumerates how a MakeAppointment invocation ended.
type AppointmentOutcome string

const (
	OutcomeNoToken      AppointmentOutcome = "no_token"
	OutcomeLookupFailed AppointmentOutcome = "lookup_failed"
	OutcomeNoEmail      AppointmentOutcome = "no_email"
	OutcomeSendFailed   AppointmentOutcome = "send_failed"
	OutcomeSent         AppointmentOutcome = "sent"
)

var outcomeMessages = map[AppointmentOutcome]string{
	OutcomeNoToken:      "Please enable Customer Profile in the Alexa app",
	OutcomeLookupFailed: "Something went wrong with your linked account",
	OutcomeNoEmail:      "Please allow the skill to access your email address to send you the order's details.",
	OutcomeSendFailed:   "There was a problem with your request",
	OutcomeSent:         "Alright. We have sent you an email with the details of the walk. Have a good day.",
}

// Message returns the user-facing text for the outcome.
func (o AppointmentOutcome) Message() string {
	if msg, ok := outcomeMessages[o]; ok {
		return msg
	}
	return outcomeMessages[OutcomeSendFailed]
}

// Valid reports whether o is one of the known outcomes.
func (o AppointmentOutcome) Valid() bool {
	_, ok := outcomeMessages[o]
	return ok
}

// AppointmentResult is returned to the platform as structured data
// for the MakeAppointment API invocation.
type AppointmentResult struct {
	Outcome      AppointmentOutcome `json:"-"`
	ResponseText string             `json:"response_text"`
	Date         *string            `json:"date"`
	Time         *string            `json:"time"`
}

// NewAppointmentResult maps an outcome to its display text at the boundary.
func NewAppointmentResult(outcome AppointmentOutcome, date, tm *string) *AppointmentResult {
	return &AppointmentResult{
		Outcome:      outcome,
		ResponseText: outcome.Message(),
		Date:         date,
		Time:         tm,
	}
}

// AppointmentEvent is published after an appointment attempt reaches the email step.
type AppointmentEvent struct {
	ID         string             `json:"id"`
	RequestID  string             `json:"request_id"`
	UserID     string             `json:"user_id"`
	Date       *string            `json:"date"`
	Time       *string            `json:"time"`
	Outcome    AppointmentOutcome `json:"outcome"`
	OccurredAt time.Time          `json:"occurred_at"`
}
