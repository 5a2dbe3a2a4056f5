package rtc

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type SignalApi struct {
	Controller *SignalController
}

func NewSignalApi(controller *SignalController) *SignalApi {
	return &SignalApi{Controller: controller}
}

func (h *SignalApi) Setup(app *fiber.App) {
	app.Get("/ws/:client_id", websocket.New(h.Controller.HandleSignal))
}
