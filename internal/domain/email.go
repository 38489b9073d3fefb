package domain

// EmailMessage is one outbound transactional email.
type EmailMessage struct {
	To       string
	From     string
	FromName string
	Subject  string
	Text     string
	HTML     string
}
