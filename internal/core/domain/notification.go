package domain

// NotificationTemplate names an outbound email template.
type NotificationTemplate string

const (
	TemplateOTP             NotificationTemplate = "otp"
	TemplateAccountPending  NotificationTemplate = "account_pending"
	TemplateAccountApproved NotificationTemplate = "account_approved"
	TemplateAccountRejected NotificationTemplate = "account_rejected"
)

// Notification is the outbound event emitted after a successful state
// transition. Delivery is fire-and-forget: failures are logged by the
// consumer and never roll back the transition that produced the event.
type Notification struct {
	// RecipientEmail receives the templated email. Empty skips the email leg.
	RecipientEmail string
	// RecipientID receives the best-effort realtime push. Empty skips the push leg.
	RecipientID string
	Template    NotificationTemplate
	// Data feeds the template: otp code, recipient name, rejection reason, ...
	Data map[string]string
}
