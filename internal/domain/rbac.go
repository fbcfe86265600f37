package domain

type EnforceRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

const (
	RoleEmployee = "EMPLOYEE"
	RoleApprover = "APPROVER"
	RoleHR       = "HR"
	RoleAdmin    = "ADMIN"
)

// Principal is the acting identity supplied by the auth middleware.
type Principal struct {
	UserID     string
	EmployeeID string
	Role       string
}

// IsPrivileged reports whether the principal may act on behalf of other employees.
func (p Principal) IsPrivileged() bool {
	return p.Role == RoleHR || p.Role == RoleAdmin
}
