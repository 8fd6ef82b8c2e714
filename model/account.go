package model

import (
	"strings"
	"time"
)

// Account roles.
const (
	RoleUser      = "user"
	RolePublisher = "publisher"
	RoleAdmin     = "admin"
)

// Roles lists the valid account roles.
var Roles = []string{RolePublisher, RoleUser, RoleAdmin}

// Account is a registered user of the directory. OrganizationOwned and
// OrganizationsJoined are denormalized snapshots maintained by the
// organization service.
type Account struct {
	Key                 string                 `json:"_key,omitempty"`
	Name                string                 `json:"name"`
	Email               string                 `json:"email"`
	Role                string                 `json:"role"`
	PasswordHash        string                 `json:"passwordHash,omitempty"`
	ResetPasswordToken  string                 `json:"resetPasswordToken,omitempty"`
	ResetPasswordExpire *time.Time             `json:"resetPasswordExpire,omitempty"`
	OrganizationOwned   *OrganizationSnapshot  `json:"organizationOwned,omitempty"`
	OrganizationsJoined []OrganizationSnapshot `json:"organizationsJoined"`
	CreatedAt           time.Time              `json:"createdAt"`
}

// Public strips credential material for API responses.
func (a Account) Public() Account {
	a.PasswordHash = ""
	a.ResetPasswordToken = ""
	a.ResetPasswordExpire = nil
	return a
}

// AccountCreate is the payload for registering an account.
type AccountCreate struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Validate checks the account payload. An empty role defaults to "user".
// Self-registration additionally rejects "admin" at the route.
func (d *AccountCreate) Validate() error {
	if len(d.Name) < 3 || len(d.Name) > 50 {
		return BadRequest("name must be between 3 and 50 characters")
	}
	if !strings.Contains(d.Email, "@") {
		return BadRequest("email must be a valid email address")
	}
	if d.Role == "" {
		d.Role = RoleUser
	}
	if !validRole(d.Role) {
		return BadRequest("role must be one of: %s", strings.Join(Roles, ", "))
	}
	if len(d.Password) < 6 {
		return BadRequest("password must be at least 6 characters")
	}
	return nil
}

func validRole(r string) bool {
	for _, v := range Roles {
		if v == r {
			return true
		}
	}
	return false
}

// AccountUpdate is the partial payload for updating account details.
// Role and password change through dedicated flows, not here.
type AccountUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// Validate checks the update payload.
func (d *AccountUpdate) Validate() error {
	if d.Name != nil && (len(*d.Name) < 3 || len(*d.Name) > 50) {
		return BadRequest("name must be between 3 and 50 characters")
	}
	if d.Email != nil && !strings.Contains(*d.Email, "@") {
		return BadRequest("email must be a valid email address")
	}
	return nil
}

// Changes flattens the non-nil fields into an update document.
func (d *AccountUpdate) Changes() map[string]interface{} {
	ch := map[string]interface{}{}
	if d.Name != nil {
		ch["name"] = *d.Name
	}
	if d.Email != nil {
		ch["email"] = *d.Email
	}
	return ch
}
