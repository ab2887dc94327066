package approval

import (
	"strings"

	"travel-booking/logger"
	"travel-booking/middleware"
	approvalModel "travel-booking/models/approval"
	approvalService "travel-booking/services/approval"
	"travel-booking/services/transaction"
	approvalTypes "travel-booking/types/approval"
	"travel-booking/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller handles booking approval HTTP requests
type Controller struct {
	Service *approvalService.Service
}

// NewApprovalController creates a new approval controller
func NewApprovalController(service *approvalService.Service) *Controller {
	return &Controller{Service: service}
}

// List returns approvals, optionally filtered by ?status=
func (ac *Controller) List(c *fiber.Ctx) error {
	var status *approvalModel.Status
	if raw := c.Query("status"); raw != "" {
		st, err := approvalModel.ParseStatus(raw)
		if err != nil {
			return utils.RespondError(c, transaction.Errorf(transaction.KindInvalidInput, "status must be PENDING, APPROVED or REJECTED"))
		}
		status = &st
	}
	limit, err := utils.ParseLimit(c)
	if err != nil {
		return utils.RespondError(c, err)
	}

	approvals, err := ac.Service.List(c.UserContext(), status, limit)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.OK(c, "Approvals fetched successfully", approvals)
}

// Show returns one approval
func (ac *Controller) Show(c *fiber.Ctx) error {
	approvalID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}
	approval, err := ac.Service.Get(c.UserContext(), approvalID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return utils.OK(c, "Approval fetched successfully", approval)
}

// Submit opens a pending approval for a booking
func (ac *Controller) Submit(c *fiber.Ctx) error {
	var req approvalTypes.SubmitApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.RespondError(c, err)
	}

	bookingType, err := approvalModel.ParseBookingType(req.BookingType)
	if err != nil {
		return utils.RespondError(c, transaction.Errorf(transaction.KindInvalidInput, "booking_type must be FLIGHT or HOTEL"))
	}
	ref, err := approvalService.NewRef(bookingType, req.BookingID)
	if err != nil {
		return utils.RespondError(c, transaction.Errorf(transaction.KindInvalidInput, "booking_type must be FLIGHT or HOTEL"))
	}

	approval, err := ac.Service.Submit(c.UserContext(), ref)
	if err != nil {
		return utils.RespondError(c, err)
	}
	logger.Success("Approval submitted for " + strings.ToLower(string(bookingType)) + " booking")
	return utils.Created(c, "Approval submitted successfully", approval)
}

// Decide approves or rejects a pending approval
func (ac *Controller) Decide(c *fiber.Ctx) error {
	approvalID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		return utils.RespondError(c, err)
	}

	var req approvalTypes.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, err)
	}
	if err := utils.ValidateStruct(req); err != nil {
		return utils.RespondError(c, err)
	}
	decision, err := approvalModel.ParseStatus(req.Decision)
	if err != nil {
		return utils.RespondError(c, transaction.Errorf(transaction.KindInvalidInput, "decision must be APPROVED or REJECTED"))
	}

	adminID, err := middleware.UserID(c)
	if err != nil {
		return utils.Unauthorized(c, err)
	}

	approval, err := ac.Service.Decide(c.UserContext(), approvalID, decision, adminID, req.Notes)
	if err != nil {
		return utils.RespondError(c, err)
	}
	logger.Infow("Approval decided", "approval_id", approval.ID, "decision", decision.String(), "admin_id", adminID)
	return utils.OK(c, "Approval "+strings.ToLower(decision.String())+" successfully", approval)
}
