package alerts

import "context"

// AlertType defines the type of alert (warning, critical, normal)
type AlertType string

// Alert type constants
const (
	AlertTypeWarning  AlertType = "warning"
	AlertTypeCritical AlertType = "critical"
	AlertTypeNormal   AlertType = "normal"
)

// AlertStyle holds styling information for different alert types
type AlertStyle struct {
	BorderColor      string
	HeaderColor      string
	StatusColorClass string
	StatusText       string
}

// DefaultStyles returns a map of default styles for each alert type
func DefaultStyles() map[AlertType]AlertStyle {
	return map[AlertType]AlertStyle{
		AlertTypeWarning: {
			BorderColor:      "#f0ad4e",
			HeaderColor:      "#f0ad4e",
			StatusColorClass: "warning-text",
			StatusText:       "STILL DOWN",
		},
		AlertTypeCritical: {
			BorderColor:      "#d9534f",
			HeaderColor:      "#d9534f",
			StatusColorClass: "critical-text",
			StatusText:       "DOWN",
		},
		AlertTypeNormal: {
			BorderColor:      "#5cb85c",
			HeaderColor:      "#5cb85c",
			StatusColorClass: "normal-text",
			StatusText:       "RECOVERED",
		},
	}
}

// NotificationManager is an interface for sending notifications
type NotificationManager interface {
	SendEmail(ctx context.Context, subject, body string) error
}
