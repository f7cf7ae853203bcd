package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeBookingReceived NotificationType = "BOOKING_RECEIVED"
	NotificationTypeStatusUpdate    NotificationType = "STATUS_UPDATE"
)

type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "LOW"
	NotificationPriorityMedium NotificationPriority = "MEDIUM"
	NotificationPriorityHigh   NotificationPriority = "HIGH"
)

type NotificationStatus string

const (
	NotificationStatusPending  NotificationStatus = "PENDING"
	NotificationStatusQueued   NotificationStatus = "QUEUED"
	NotificationStatusSending  NotificationStatus = "SENDING"
	NotificationStatusSent     NotificationStatus = "SENT"
	NotificationStatusFailed   NotificationStatus = "FAILED"
	NotificationStatusRetrying NotificationStatus = "RETRYING"
	NotificationStatusExpired  NotificationStatus = "EXPIRED"
)

// EmailNotification is the message flowing through the Kafka topic.
type EmailNotification struct {
	ID       uuid.UUID            `json:"id"`
	Type     NotificationType     `json:"type"`
	Priority NotificationPriority `json:"priority"`

	RecipientEmail string `json:"recipient_email"`
	RecipientName  string `json:"recipient_name"`
	RecipientPhone string `json:"recipient_phone"`

	Subject      string                 `json:"subject"`
	TemplateData map[string]interface{} `json:"template_data"`

	BookingID *uuid.UUID `json:"booking_id,omitempty"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	Status     NotificationStatus `json:"status"`
	RetryCount int                `json:"retry_count"`
	MaxRetries int                `json:"max_retries"`
	LastError  *string            `json:"last_error,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	SentAt     *time.Time         `json:"sent_at,omitempty"`
}

type NotificationBuilder struct {
	notification *EmailNotification
}

func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &EmailNotification{
			ID:           uuid.New(),
			Status:       NotificationStatusPending,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
			MaxRetries:   3,
			TemplateData: make(map[string]interface{}),
		},
	}
}

func (nb *NotificationBuilder) WithType(notType NotificationType) *NotificationBuilder {
	nb.notification.Type = notType
	nb.notification.Priority = GetDefaultPriority(notType)
	return nb
}

func (nb *NotificationBuilder) WithRecipient(email, name, phone string) *NotificationBuilder {
	nb.notification.RecipientEmail = email
	nb.notification.RecipientName = name
	nb.notification.RecipientPhone = phone
	return nb
}

func (nb *NotificationBuilder) WithSubject(subject string) *NotificationBuilder {
	nb.notification.Subject = subject
	return nb
}

func (nb *NotificationBuilder) WithTemplateData(data map[string]interface{}) *NotificationBuilder {
	nb.notification.TemplateData = data
	return nb
}

func (nb *NotificationBuilder) WithBookingContext(bookingID uuid.UUID) *NotificationBuilder {
	nb.notification.BookingID = &bookingID
	return nb
}

func (nb *NotificationBuilder) WithMaxRetries(maxRetries int) *NotificationBuilder {
	nb.notification.MaxRetries = maxRetries
	return nb
}

func (nb *NotificationBuilder) Build() *EmailNotification {
	return nb.notification
}

func GetDefaultPriority(notType NotificationType) NotificationPriority {
	switch notType {
	case NotificationTypeBookingReceived:
		return NotificationPriorityHigh
	case NotificationTypeStatusUpdate:
		return NotificationPriorityMedium
	default:
		return NotificationPriorityMedium
	}
}

// GetPartitionKey routes all of one customer's notifications to the
// same partition so they arrive in order.
func (en *EmailNotification) GetPartitionKey() string {
	if en.RecipientPhone != "" {
		return en.RecipientPhone
	}
	return en.RecipientEmail
}

func (en *EmailNotification) ToJSON() ([]byte, error) {
	return json.Marshal(en)
}

func (en *EmailNotification) IsExpired() bool {
	return en.ExpiresAt != nil && time.Now().After(*en.ExpiresAt)
}

func (en *EmailNotification) ShouldRetry() bool {
	return en.RetryCount < en.MaxRetries &&
		en.Status == NotificationStatusFailed &&
		!en.IsExpired()
}

func (en *EmailNotification) MarkSent() {
	now := time.Now()
	en.Status = NotificationStatusSent
	en.SentAt = &now
	en.UpdatedAt = now
}

func (en *EmailNotification) MarkFailed(err error) {
	now := time.Now()
	en.Status = NotificationStatusFailed
	en.UpdatedAt = now

	errorStr := err.Error()
	en.LastError = &errorStr
}

func (en *EmailNotification) IncrementRetry() {
	en.RetryCount++
	en.UpdatedAt = time.Now()
	if en.ShouldRetry() {
		en.Status = NotificationStatusRetrying
	} else {
		en.Status = NotificationStatusExpired
	}
}
