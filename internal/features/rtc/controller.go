package rtc

import (
	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

// SignalFrame is the JSON frame exchanged over the signaling socket.
type SignalFrame struct {
	Type string `json:"type"`
	SDP  string `json:"sdp"`
}

type SignalController struct {
	Manager *Manager
	Logger  *zap.Logger
}

func NewSignalController(manager *Manager, logger *zap.Logger) *SignalController {
	return &SignalController{
		Manager: manager,
		Logger:  logger,
	}
}

// HandleSignal runs the signaling loop for one client: offers in,
// answers out. Session state is discarded on disconnect or error.
func (ctrl *SignalController) HandleSignal(c *websocket.Conn) {
	clientID := c.Params("client_id")
	defer ctrl.Manager.Close(clientID)

	for {
		var frame SignalFrame
		if err := c.ReadJSON(&frame); err != nil {
			return
		}

		if frame.Type != "offer" {
			continue
		}

		answer, err := ctrl.Manager.HandleOffer(clientID, frame.SDP)
		if err != nil {
			ctrl.Logger.Warn("failed to answer offer",
				zap.String("client_id", clientID),
				zap.Error(err))
			return
		}

		reply := SignalFrame{Type: answer.Type.String(), SDP: answer.SDP}
		if err := c.WriteJSON(reply); err != nil {
			return
		}
	}
}
