package notification

import (
	"go-support/internal/features/customer"
	"go-support/internal/features/ticket"
)

// ShouldNotify decides whether a notification of the given type should
// be sent for an interaction:
//
//	status_update  only for customers with immediate frequency
//	new_message    only for high/urgent interactions
//	escalation     always
//	resolution     always
//	anything else  never
func ShouldNotify(interaction *ticket.Ticket, cust *customer.Customer, typ NotificationType) bool {
	switch typ {
	case NotificationTypeStatusUpdate:
		return cust.Preferences.NotificationFrequency == customer.FrequencyImmediate
	case NotificationTypeNewMessage:
		return interaction.Priority == ticket.TicketPriorityHigh ||
			interaction.Priority == ticket.TicketPriorityUrgent
	case NotificationTypeEscalation:
		return true
	case NotificationTypeResolution:
		return true
	default:
		return false
	}
}
