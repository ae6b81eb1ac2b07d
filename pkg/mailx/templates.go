package mailx

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Verification is the data for the account verification email.
type Verification struct {
	Username  string
	Link      string
	ExpiresIn string
}

// TaskNotification is the data for a task assignment email.
type TaskNotification struct {
	Owner    string
	TaskName string
	DueDate  string
	Note     string
}

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// VerificationMessage renders the verification email for to.
func VerificationMessage(to string, v Verification) (Message, error) {
	html, err := render("verification.html", v)
	if err != nil {
		return Message{}, err
	}

	text := "Welcome to TaskMe, " + v.Username + ".\n\n" +
		"Confirm your email address by opening this link:\n" + v.Link + "\n\n" +
		"The link expires in " + v.ExpiresIn + "."

	return Message{
		To:      to,
		Subject: "Verify your TaskMe account",
		HTML:    html,
		Text:    text,
	}, nil
}

// TaskNotificationMessage renders a task assignment email for to. A blank
// owner or due date gets a placeholder.
func TaskNotificationMessage(to string, n TaskNotification) (Message, error) {
	if strings.TrimSpace(n.Owner) == "" {
		n.Owner = "Team Member"
	}
	if strings.TrimSpace(n.DueDate) == "" {
		n.DueDate = "No due date set"
	}

	html, err := render("task_notification.html", n)
	if err != nil {
		return Message{}, err
	}

	// Header values are plain text, not HTML; only strip line breaks.
	subject := "TaskMe: You have a task - " + strings.Join(strings.Fields(n.TaskName), " ")

	return Message{
		To:      to,
		Subject: subject,
		HTML:    html,
	}, nil
}
