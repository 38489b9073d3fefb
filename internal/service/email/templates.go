package email

import (
	"bytes"
	"fmt"
	"html/template"
)

const appointmentTextFormat = "Su paseo ha sido agendado para el día %s at %s"

const appointmentTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            line-height: 1.6;
            color: #333;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
        }
    </style>
</head>
<body>
    <strong>Su paseo ha sido agendado para el día {{.Date}} at {{.Time}}</strong>
</body>
</html>`

var appointmentHTML = template.Must(template.New("appointment").Parse(appointmentTemplate))

// RenderAppointment returns the plain text and HTML bodies of the walk confirmation.
// Date and time are inserted verbatim in the text part and escaped in the HTML part.
func RenderAppointment(date, tm string) (string, string, error) {
	var buf bytes.Buffer
	if err := appointmentHTML.Execute(&buf, map[string]string{"Date": date, "Time": tm}); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}
	return fmt.Sprintf(appointmentTextFormat, date, tm), buf.String(), nil
}
