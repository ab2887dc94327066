package trip

import (
	"travel-booking/logger"
	"travel-booking/middleware"
	"travel-booking/services/removal"
	tripTypes "travel-booking/types/trip"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller handles administrative trip requests
type Controller struct {
	Removal *removal.Service
}

func NewTripController(removalService *removal.Service) *Controller {
	return &Controller{Removal: removalService}
}

// Remove deletes a trip on behalf of an administrator
func (tc *Controller) Remove(c *fiber.Ctx) error {
	tripID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req tripTypes.RemoveTripRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.RespondError(c, err)
	}

	adminID, err := middleware.UserID(c)
	if err != nil {
		return utils.Unauthorized(c, err)
	}

	if err := tc.Removal.RemoveTrip(c.UserContext(), tripID, adminID, req.Reason); err != nil {
		return utils.RespondError(c, err)
	}
	logger.Infow("Trip removed", "trip_id", tripID, "admin_id", adminID)
	return utils.OK(c, "Trip removed successfully", nil)
}
