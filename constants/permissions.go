package constants

// Organization permissions
const (
	// Admin permissions
	PermSuperAdminFull = "travel-booking.super-admin.full-permit"
	PermAdminFull      = "travel-booking.admin.full-permit"
	PermCustomerFull   = "travel-booking.customer.full-permit"

	// Special permissions
	PermAny = "any"
)

// Permission groups for convenience
var (
	AdminPermissions = []string{
		PermSuperAdminFull,
		PermAdminFull,
	}
)
