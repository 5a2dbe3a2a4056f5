package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeStatusUpdate NotificationType = "status_update"
	NotificationTypeNewMessage   NotificationType = "new_message"
	NotificationTypeEscalation   NotificationType = "escalation"
	NotificationTypeResolution   NotificationType = "resolution"
)

// Notification references its interaction and customer by identifier
// only; neither reference is validated at creation time.
type Notification struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	InteractionID primitive.ObjectID `json:"interaction_id" bson:"interaction_id"`
	CustomerID    primitive.ObjectID `json:"customer_id" bson:"customer_id"`
	Type          NotificationType   `json:"type" bson:"type"`
	Message       string             `json:"message" bson:"message"`
	Sent          bool               `json:"sent" bson:"sent"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}
