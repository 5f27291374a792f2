// README: Send-itinerary-by-email operation with distinguished failure kinds.
package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type EmailErrorKind string

const (
	EmailNotConfigured EmailErrorKind = "not_configured"
	EmailAuthFailed    EmailErrorKind = "authentication_failed"
	EmailConnection    EmailErrorKind = "connection_error"
	EmailFailed        EmailErrorKind = "failed"
)

// EmailError maps a delivery failure to a message the email modal can show
// as-is. The modal stays open on every kind so the user can retry.
type EmailError struct {
	Kind    EmailErrorKind
	Message string
}

func (e *EmailError) Error() string { return e.Message }

const (
	msgEmailNotConfigured = "Email is not configured. Add the sender password to the backend environment and restart the backend."
	msgEmailAuthFailed    = "Email login failed. Use an app password for the sender account."
	msgEmailConnection    = "Could not reach the email server. Check network and try again."
	msgEmailFailed        = "Failed to send email"
)

type emailResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
	Detail  string `json:"detail"`
}

// SendEmail asks the backend to deliver the current itinerary as a PDF.
// Returns the backend's success message. Invoked only from an explicit user
// action, never from classified chat text.
func (c *Client) SendEmail(ctx context.Context, recipients []string, subject string) (string, error) {
	if len(recipients) == 0 {
		return "", &EmailError{Kind: EmailFailed, Message: "No recipients given"}
	}

	body := map[string]any{
		"recipient_emails": recipients,
		"subject":          subject,
	}
	buf, err := json.Marshal(body)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send-email", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &EmailError{Kind: EmailConnection, Message: msgEmailConnection}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return "", &EmailError{Kind: EmailNotConfigured, Message: msgEmailNotConfigured}
	}

	var result emailResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil && resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return "", &EmailError{Kind: EmailFailed, Message: msgEmailFailed}
	}

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 && result.Success {
		if result.Message != "" {
			return result.Message, nil
		}
		return fmt.Sprintf("Itinerary PDF sent to %d recipient(s)", len(recipients)), nil
	}

	switch result.Error {
	case "authentication_failed":
		return "", &EmailError{Kind: EmailAuthFailed, Message: orDefault(result.Message, msgEmailAuthFailed)}
	case "connection_error":
		return "", &EmailError{Kind: EmailConnection, Message: orDefault(result.Message, msgEmailConnection)}
	}
	return "", &EmailError{Kind: EmailFailed, Message: orDefault(orDefault(result.Detail, result.Message), msgEmailFailed)}
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
