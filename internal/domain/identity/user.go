package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/backend/internal/domain/shared"
)

// Built-in role names
const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// UserRole represents a role assignable to users
type UserRole struct {
	shared.BaseEntity
	Name        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Description string `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (UserRole) TableName() string {
	return "user_roles"
}

// NewUserRole creates a role with the given name
func NewUserRole(name, description string) *UserRole {
	return &UserRole{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.ToUpper(strings.TrimSpace(name)),
		Description: description,
	}
}

// User represents an authenticated account. Identity is anchored to the
// external provider subject (FirebaseID); the local record carries
// profile data and the assigned role.
type User struct {
	shared.BaseEntity
	Email      string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	FirstName  string     `gorm:"type:varchar(100)"`
	LastName   string     `gorm:"type:varchar(100)"`
	FirebaseID string     `gorm:"type:varchar(128);not null;uniqueIndex"`
	RoleID     *uuid.UUID `gorm:"type:uuid;index"`
	Role       *UserRole  `gorm:"foreignKey:RoleID"`
	LastLogin  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new user from a verified identity
func NewUser(firebaseID, email, firstName, lastName string) (*User, error) {
	firebaseID = strings.TrimSpace(firebaseID)
	if firebaseID == "" {
		return nil, shared.NewDomainError("INVALID_SUBJECT", "Identity subject cannot be empty")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email address is not valid")
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Email:      email,
		FirstName:  strings.TrimSpace(firstName),
		LastName:   strings.TrimSpace(lastName),
		FirebaseID: firebaseID,
	}, nil
}

// AssignRole attaches a role to the user
func (u *User) AssignRole(role *UserRole) {
	u.RoleID = &role.ID
	u.Role = role
	u.Touch()
}

// RecordLogin stamps the last successful login time
func (u *User) RecordLogin(at time.Time) {
	t := at.UTC()
	u.LastLogin = &t
	u.Touch()
}

// UpdateProfile changes the user's name fields
func (u *User) UpdateProfile(firstName, lastName string) {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	u.Touch()
}

// RoleName returns the assigned role name or empty string
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}

// IsAdmin reports whether the user carries the ADMIN role
func (u *User) IsAdmin() bool {
	return u.RoleName() == RoleAdmin
}

// FullName returns the display name composed from first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
