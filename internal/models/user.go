package models

// Roles a user account can hold. Manager is the only role allowed to
// update threshold configuration.
const (
	RoleOperator = "Operator"
	RoleEngineer = "Engineer"
	RoleManager  = "Manager"
)

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	return role == RoleOperator || role == RoleEngineer || role == RoleManager
}

type User struct {
	ID           int    `json:"id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"` // Operator | Engineer | Manager
	PasswordHash string `json:"-"`    // don’t expose hash
}
