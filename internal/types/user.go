package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is the backend's role identifier for a user
type Role string

const (
	RoleMember     Role = "USUARIO"
	RoleTrainer    Role = "ENTRENADOR"
	RoleAdmin      Role = "ADMINISTRADOR"
	RoleSuperAdmin Role = "SUPERADMIN"
)

// AllRoles is every role a signed-in user can hold
var AllRoles = []Role{RoleMember, RoleTrainer, RoleAdmin, RoleSuperAdmin}

var upper = cases.Upper(language.Und)

// NormalizeRole upper-cases a role as received from the backend or storage.
func NormalizeRole(r Role) Role {
	return Role(upper.String(strings.TrimSpace(string(r))))
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// User is the account record returned by the backend
type User struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	IsActive  bool         `json:"isActive"`
	Profile   *UserProfile `json:"profile,omitempty"`
	CreatedAt *time.Time   `json:"createdAt,omitempty"`
}

// UserProfile carries the physical profile and trainer assignment of a member
type UserProfile struct {
	AssignedTrainerID *string  `json:"assignedTrainerId,omitempty"`
	Age               *float64 `json:"age,omitempty"`
	Gender            string   `json:"gender,omitempty"`
	Height            *float64 `json:"height,omitempty"`
	Weight            *float64 `json:"weight,omitempty"`
	ActivityLevel     string   `json:"activityLevel,omitempty"`
	FitnessGoal       string   `json:"fitnessGoal,omitempty"`
	TrainingDays      FlexInt  `json:"trainingDays,omitempty"`
}

// TrainerID returns the assigned trainer, or "" when none is assigned.
func (p *UserProfile) TrainerID() string {
	if p == nil || p.AssignedTrainerID == nil {
		return ""
	}
	return *p.AssignedTrainerID
}

// AssignedUser is a member as listed for their trainer
type AssignedUser struct {
	User
	Measurements []Measurement `json:"measurements"`
}

// FlexInt decodes integers that the backend sometimes sends as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = 0
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*f = FlexInt(int(num))
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if str == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(strings.TrimSpace(str))
		if err != nil {
			return fmt.Errorf("invalid integer %q: %w", str, err)
		}
		*f = FlexInt(n)
		return nil
	}

	return fmt.Errorf("invalid integer format")
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string  `json:"email" form:"email" binding:"required,email"`
	Password string  `json:"password" form:"password" binding:"required"`
	OrgSlug  *string `json:"orgSlug"`
}

// LoginResponse is returned by POST /auth/login
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CreateUserRequest is the body of POST /admin/users
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     Role   `json:"role" binding:"required"`
}

// UpdateUserRequest is the body of PUT /admin/users/:id and PATCH /auth/me
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *Role   `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
	Password *string `json:"password,omitempty"`

	Age           *float64 `json:"age,omitempty"`
	Gender        *string  `json:"gender,omitempty"`
	Height        *float64 `json:"height,omitempty"`
	Weight        *float64 `json:"weight,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
	FitnessGoal   *string  `json:"fitnessGoal,omitempty"`
	TrainingDays  *int     `json:"trainingDays,omitempty"`
}

// UserStatusRequest is the body of PATCH /admin/users/:id/status
type UserStatusRequest struct {
	IsActive bool `json:"isActive"`
}

// AssignTrainerRequest is the body of POST /admin/assign-trainer.
// A nil TrainerID removes the assignment.
type AssignTrainerRequest struct {
	UserID    string  `json:"userId"`
	TrainerID *string `json:"trainerId"`
}
