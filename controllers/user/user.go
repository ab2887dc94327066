package user

import (
	"travel-booking/logger"
	"travel-booking/middleware"
	"travel-booking/services/removal"
	"travel-booking/services/transaction"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller handles administrative user requests
type Controller struct {
	Removal *removal.Service
}

func NewUserController(removalService *removal.Service) *Controller {
	return &Controller{Removal: removalService}
}

// Delete removes a user and everything the user owns
func (uc *Controller) Delete(c *fiber.Ctx) error {
	userID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	adminID, err := middleware.UserID(c)
	if err != nil {
		return utils.Unauthorized(c, err)
	}
	if adminID == userID {
		return utils.RespondError(c, transaction.Errorf(transaction.KindInvalidInput, "administrators cannot delete their own account"))
	}

	if err := uc.Removal.DeleteUser(c.UserContext(), adminID, userID); err != nil {
		return utils.RespondError(c, err)
	}
	logger.Infow("User deleted", "user_id", userID, "admin_id", adminID)
	return utils.OK(c, "User deleted successfully", nil)
}
