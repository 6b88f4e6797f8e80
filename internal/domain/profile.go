package domain

import "time"

type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleOperator      Role = "operator"
	RoleReadOnly      Role = "read_only"
)

// CanWrite reports whether the role may register rentals, returns and
// catalog changes. Read-only profiles can only consult data.
func (r Role) CanWrite() bool {
	return r == RoleAdministrator || r == RoleOperator
}

// Profile is a shop staff account. Profiles are provisioned by an
// administrator; there is no self-service signup.
type Profile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
