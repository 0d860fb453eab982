package emails

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const brevoAPI = "https://api.brevo.com/v3/smtp/email"

// BrevoSendRequest matches Brevo API v3 send transactional email body.
type BrevoSendRequest struct {
	Sender      BrevoSender   `json:"sender"`
	To          []BrevoTo     `json:"to"`
	Subject     string        `json:"subject"`
	HTMLContent string        `json:"htmlContent"`
	ReplyTo     *BrevoReplyTo `json:"replyTo,omitempty"`
}

type BrevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type BrevoTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type BrevoReplyTo struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ContactNotification summarizes a contact-form submission for the operator.
type ContactNotification struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// EnrollmentNotification summarizes an enrollment application for the operator.
type EnrollmentNotification struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Education string
	Course    string
	StartDate string
}

// Sender delivers the operator notifications raised by public submissions.
// Implementations are best-effort; callers dispatch sends off the request path
// and only log failures.
type Sender interface {
	SendContactNotification(ctx context.Context, n ContactNotification) error
	SendEnrollmentNotification(ctx context.Context, n EnrollmentNotification) error
}

// BrevoClient sends emails via the Brevo (Sendinblue) API. Env: SENDINBLUE_API_KEY,
// MAIL_FROM, CONTACT_EMAIL. An empty API key makes every send a no-op.
type BrevoClient struct {
	APIKey       string
	MailFrom     string
	ContactEmail string
	Client       *http.Client
	// Endpoint overrides the Brevo API URL. Empty means production.
	Endpoint string
}

// defaultHTTPClient serves every BrevoClient without an explicit Client. The
// client is shared across handler goroutines, so send must never write back
// to the struct.
var defaultHTTPClient = &http.Client{Timeout: 15 * time.Second}

func (c *BrevoClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return defaultHTTPClient
}

func (c *BrevoClient) endpoint() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return brevoAPI
}

func (c *BrevoClient) from() string {
	if c.MailFrom != "" {
		return c.MailFrom
	}
	return "noreply@bmsacademy.com"
}

func (c *BrevoClient) to() string {
	if c.ContactEmail != "" {
		return c.ContactEmail
	}
	return c.from()
}

// send sends one email via the Brevo API.
func (c *BrevoClient) send(ctx context.Context, senderName, replyTo, subject, html string) error {
	if c.APIKey == "" {
		return nil
	}
	body := BrevoSendRequest{
		Sender:      BrevoSender{Email: c.from(), Name: senderName},
		To:          []BrevoTo{{Email: c.to()}},
		Subject:     subject,
		HTMLContent: html,
	}
	if replyTo != "" {
		body.ReplyTo = &BrevoReplyTo{Email: replyTo}
	}
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(bodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("brevo send failed: status %d", resp.StatusCode)
	}
	return nil
}

// SendContactNotification emails the operator about a new contact submission.
// Reply-To is set to the submitter so staff can answer directly.
func (c *BrevoClient) SendContactNotification(ctx context.Context, n ContactNotification) error {
	if c.APIKey == "" {
		return nil
	}
	subject := n.Subject
	if subject == "" {
		subject = fmt.Sprintf("New Contact Form Submission from %s", n.Name)
	}
	return c.send(ctx, "BMS Academy Contact Form", n.Email, subject, EmailLayout(contactContent(n)))
}

// SendEnrollmentNotification emails the operator about a new enrollment.
func (c *BrevoClient) SendEnrollmentNotification(ctx context.Context, n EnrollmentNotification) error {
	if c.APIKey == "" {
		return nil
	}
	subject := fmt.Sprintf("New Course Enrollment: %s %s", n.FirstName, n.LastName)
	return c.send(ctx, "BMS Academy Enrollments", n.Email, subject, EmailLayout(enrollmentContent(n)))
}

func contactContent(n ContactNotification) string {
	subjectRow := ""
	if n.Subject != "" {
		subjectRow = fmt.Sprintf(`<p><strong>Subject:</strong> %s</p>`, EscapeHTML(n.Subject))
	}
	return fmt.Sprintf(`
    <h2>New Contact Form Submission</h2>
    <p><strong>Name:</strong> %s</p>
    <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
    %s
    <p><strong>Message:</strong></p>
    <p>%s</p>
`, EscapeHTML(n.Name), EscapeHTML(n.Email), EscapeHTML(n.Email), subjectRow, nl2br(n.Message))
}

func enrollmentContent(n EnrollmentNotification) string {
	return fmt.Sprintf(`
    <h2>New Course Enrollment</h2>
    <p><strong>Name:</strong> %s %s</p>
    <p><strong>Email:</strong> <a href="mailto:%s">%s</a></p>
    <p><strong>Phone:</strong> %s</p>
    <p><strong>Course:</strong> %s</p>
    <p><strong>Education:</strong> %s</p>
    <p><strong>Preferred Start Date:</strong> %s</p>
    <p><strong>Submitted:</strong> %s</p>
`, EscapeHTML(n.FirstName), EscapeHTML(n.LastName), EscapeHTML(n.Email), EscapeHTML(n.Email),
		EscapeHTML(n.Phone), EscapeHTML(n.Course), EscapeHTML(n.Education), EscapeHTML(n.StartDate),
		time.Now().Format("2006-01-02 15:04:05"))
}
