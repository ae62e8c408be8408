package notify

import "context"

type EmailStatus struct {
	Configured bool   `json:"configured"`
	Error      string `json:"error,omitempty"`
}

type WhatsAppStatus struct {
	Configured bool `json:"configured"`
}

type IntegrationStatus struct {
	Email    EmailStatus    `json:"email"`
	WhatsApp WhatsAppStatus `json:"whatsapp"`
}

// CheckIntegrations reports which senders are usable. Email is verified
// against the SMTP server when configured.
func CheckIntegrations(ctx context.Context, email *EmailNotifier, whatsapp *WhatsAppNotifier) IntegrationStatus {
	var status IntegrationStatus

	if email != nil && email.Configured() {
		status.Email.Configured = true
		if err := email.Verify(ctx); err != nil {
			status.Email.Error = err.Error()
		}
	}

	if whatsapp != nil {
		status.WhatsApp.Configured = whatsapp.Configured()
	}

	return status
}
