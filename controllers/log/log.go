package log

import (
	"travel-booking/middleware"
	"travel-booking/services/audit"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller serves the audit trail to administrators
type Controller struct {
	Audit *audit.Service
}

func NewLogController(auditService *audit.Service) *Controller {
	return &Controller{Audit: auditService}
}

// Mine returns the calling administrator's entries, optionally for one ?date=YYYY-MM-DD
func (lc *Controller) Mine(c *fiber.Ctx) error {
	adminID, err := middleware.UserID(c)
	if err != nil {
		return utils.Unauthorized(c, err)
	}
	day, err := utils.ParseDate(c.Query("date"))
	if err != nil {
		return utils.RespondError(c, err)
	}
	limit, err := utils.ParseLimit(c)
	if err != nil {
		return utils.RespondError(c, err)
	}

	logs, err := lc.Audit.ListByAdmin(c.UserContext(), adminID, day, limit)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.OK(c, "Logs fetched successfully", logs)
}

// ForEntity returns every entry for /:type/:id
func (lc *Controller) ForEntity(c *fiber.Ctx) error {
	entityID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	logs, err := lc.Audit.ListByEntity(c.UserContext(), c.Params("type"), entityID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.OK(c, "Logs fetched successfully", logs)
}
