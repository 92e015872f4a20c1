package model

import (
	"time"
)

// Role is the closed set of platform roles. Authorization sites match
// against these constants, never against free-form strings.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ValidRole reports whether r is one of the known platform roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleGuest, RoleStudent, RoleTutor, RoleStaff, RoleAdmin:
		return true
	}
	return false
}

// Elevated reports whether r grants more than the default guest access.
// The identity bridge never downgrades an elevated role on re-contact.
func (r Role) Elevated() bool {
	return r != RoleGuest && r != ""
}

// In reports whether r is a member of the given role set.
func (r Role) In(roles ...Role) bool {
	for _, candidate := range roles {
		if r == candidate {
			return true
		}
	}
	return false
}

// User represents a registered platform user. Users are created on first
// contact through the identity bridge and are never hard-deleted.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	FirebaseUID string    `gorm:"uniqueIndex;not null" json:"firebase_uid"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"` // stored lower-case
	DisplayName string    `gorm:"type:varchar(255)" json:"display_name"`
	Role        Role      `gorm:"type:varchar(20);default:'guest'" json:"role"`
	Locale      string    `gorm:"type:varchar(10);default:'en'" json:"locale"`
	Timezone    string    `gorm:"type:varchar(64)" json:"timezone"`
	Currency    string    `gorm:"type:varchar(3);default:'USD'" json:"currency"`

	// Relationships
	TutorProfile *TutorProfile `gorm:"foreignKey:UserID" json:"tutor_profile,omitempty"`
}

// UserResponse is the API shape for a user.
type UserResponse struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        Role      `json:"role"`
	Locale      string    `json:"locale"`
	Timezone    string    `json:"timezone,omitempty"`
	Currency    string    `json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToResponse converts a User to its API shape.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Locale:      u.Locale,
		Timezone:    u.Timezone,
		Currency:    u.Currency,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
