package notification

import (
	"travel-booking/middleware"
	notificationService "travel-booking/services/notification"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the signed in user's notifications
type Controller struct {
	Service *notificationService.Service
}

func NewNotificationController(service *notificationService.Service) *Controller {
	return &Controller{Service: service}
}

// List returns the user's notifications and broadcasts with the unread count
func (nc *Controller) List(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.Unauthorized(c, err)
	}
	limit, err := utils.ParseLimit(c)
	if err != nil {
		return utils.RespondError(c, err)
	}

	items, err := nc.Service.ListForUser(c.UserContext(), userID, limit)
	if err != nil {
		return utils.RespondError(c, err)
	}
	unread, err := nc.Service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.OK(c, "Notifications fetched successfully", fiber.Map{
		"notifications": items,
		"unread":        unread,
	})
}

// MarkRead flags one of the user's notifications as read
func (nc *Controller) MarkRead(c *fiber.Ctx) error {
	userID, err := middleware.UserID(c)
	if err != nil {
		return utils.Unauthorized(c, err)
	}
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	if err := nc.Service.MarkRead(c.UserContext(), userID, id); err != nil {
		return utils.RespondError(c, err)
	}
	return utils.OK(c, "Notification marked as read", nil)
}
