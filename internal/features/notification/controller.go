package notification

import (
	"go-support/internal/common/apperr"
	"go-support/internal/common/response"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationController struct {
	NotificationService NotificationService
}

func NewNotificationController(notificationService NotificationService) *NotificationController {
	return &NotificationController{
		NotificationService: notificationService,
	}
}

type CreateNotificationRequest struct {
	InteractionID string           `json:"interaction_id"`
	CustomerID    string           `json:"customer_id"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
}

// CreateNotification godoc
// @Summary      Create a notification and send it when the decision table allows
// @Router       /notifications [post]
func (ctrl *NotificationController) CreateNotification(c *fiber.Ctx) error {
	var req CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	interactionID, err := primitive.ObjectIDFromHex(req.InteractionID)
	if err != nil {
		return apperr.InvalidID("interaction_id", req.InteractionID)
	}
	customerID, err := primitive.ObjectIDFromHex(req.CustomerID)
	if err != nil {
		return apperr.InvalidID("customer_id", req.CustomerID)
	}

	n := &Notification{
		InteractionID: interactionID,
		CustomerID:    customerID,
		Type:          req.Type,
		Message:       req.Message,
	}

	created, err := ctrl.NotificationService.Dispatch(c.Context(), n)
	if err != nil {
		return err
	}

	return response.Created(c, created, "Notification created")
}
