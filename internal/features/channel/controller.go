package channel

import (
	"fmt"

	"go-support/internal/common/apperr"
	"go-support/internal/common/response"

	"github.com/gofiber/fiber/v2"
)

type ChannelController struct {
	ChannelService ChannelService
}

func NewChannelController(channelService ChannelService) *ChannelController {
	return &ChannelController{
		ChannelService: channelService,
	}
}

// CreateChannel godoc
// @Summary      Create channel
// @Router       /channels [post]
func (ctrl *ChannelController) CreateChannel(c *fiber.Ctx) error {
	var channel Channel
	if err := c.BodyParser(&channel); err != nil {
		return apperr.Validation("", err.Error())
	}

	created, err := ctrl.ChannelService.Create(c.Context(), &channel)
	if err != nil {
		return err
	}

	return response.Created(c, created, "Channel successfully created")
}

// GetChannel godoc
// @Summary      Get channel by ID
// @Router       /channels/{id} [get]
func (ctrl *ChannelController) GetChannel(c *fiber.Ctx) error {
	id := c.Params("id")

	channel, err := ctrl.ChannelService.Get(c.Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, channel, fmt.Sprintf("Channel with %s found.", id))
}

// UpdateChannel godoc
// @Summary      Update channel
// @Router       /channels/{id} [put]
func (ctrl *ChannelController) UpdateChannel(c *fiber.Ctx) error {
	id := c.Params("id")

	var update ChannelUpdate
	if err := c.BodyParser(&update); err != nil {
		return apperr.Validation("", "invalid request body")
	}

	channel, err := ctrl.ChannelService.Update(c.Context(), id, &update)
	if err != nil {
		return err
	}

	return response.Success(c, channel, fmt.Sprintf("Channel with %s updated.", id))
}

// DeleteChannel godoc
// @Summary      Delete channel
// @Router       /channels/{id} [delete]
func (ctrl *ChannelController) DeleteChannel(c *fiber.Ctx) error {
	id := c.Params("id")

	deleted, err := ctrl.ChannelService.Delete(c.Context(), id)
	if err != nil {
		return err
	}

	return response.Success(c, deleted, fmt.Sprintf("Channel with %s deleted.", id))
}
