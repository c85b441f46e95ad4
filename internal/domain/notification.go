package domain

type NotificationType string

const (
	NotificationInfo     NotificationType = "info"
	NotificationWarning  NotificationType = "warning"
	NotificationPayment  NotificationType = "payment"
	NotificationReminder NotificationType = "reminder"
)

// Notification is local only; nothing is persisted remotely.
type Notification struct {
	ID      ID               `json:"id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Time    string           `json:"time"`
	Type    NotificationType `json:"type"`
	Read    bool             `json:"read"`
}
