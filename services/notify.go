package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/student-showcase-backend/config"
	"github.com/rpupo63/student-showcase-backend/models"
)

const resendAPIURL = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for the Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text,omitempty"`
}

// ResendErrorResponse represents an error response from the Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

// NotifyContactRequest emails the configured inbox about a new contact
// request through the Resend API. It is best-effort: when the API key or
// recipient is not configured it does nothing, and failures are logged
// rather than surfaced to the caller.
//
// Environment variables:
//   - RESEND_API_KEY: Resend API key
//   - RESEND_FROM_EMAIL: sender address (e.g. "Showcase <noreply@example.com>")
//   - CONTACT_NOTIFY_EMAIL: inbox receiving the notification
func NotifyContactRequest(cfg map[string]string, contact models.Contact) {
	apiKey := config.GetString(cfg, "RESEND_API_KEY", "")
	recipient := config.GetString(cfg, "CONTACT_NOTIFY_EMAIL", "")
	if apiKey == "" || recipient == "" {
		return
	}

	fromEmail := config.GetString(cfg, "RESEND_FROM_EMAIL", "Student Showcase <onboarding@resend.dev>")

	body := fmt.Sprintf(
		"New contact request from %s %s <%s>\n\nFormation interest: %s\nPhone: %s\nAddress: %s\n\n%s\n",
		contact.FirstName, contact.LastName, contact.Email,
		contact.FormationInterest, contact.Phone, contact.Address, contact.Message,
	)

	emailReq := ResendEmailRequest{
		From:    fromEmail,
		To:      []string{recipient},
		Subject: fmt.Sprintf("New contact request from %s %s", contact.FirstName, contact.LastName),
		Text:    body,
	}

	jsonData, err := json.Marshal(emailReq)
	if err != nil {
		log.Error().Err(err).Msg("Error marshaling contact notification request")
		return
	}

	req, err := http.NewRequest(http.MethodPost, resendAPIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		log.Error().Err(err).Msg("Error creating contact notification request")
		return
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("Error sending contact notification")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		var errorResp ResendErrorResponse
		message := string(respBody)
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Message != "" {
			message = errorResp.Message
		}
		log.Error().
			Int("status", resp.StatusCode).
			Str("message", message).
			Msg("Contact notification service returned non-200 status")
		return
	}

	log.Info().Str("contactEmail", contact.Email).Msg("Contact notification sent")
}
