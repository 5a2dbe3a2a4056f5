package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature's API struct so the composition
// root can collect them into one group and register them in a single pass.
type Route interface {
	Setup(app *fiber.App)
}
