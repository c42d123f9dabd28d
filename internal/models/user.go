package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity root. Profile, Resume, Swipes and Applications are
// removed together with it.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	ExternalID string    `gorm:"size:64;not null;uniqueIndex" json:"external_id"`
	Name       string    `gorm:"size:255" json:"name,omitempty"`
	Email      string    `gorm:"size:320" json:"email,omitempty"`
	Role       string    `gorm:"size:16;not null;default:user" json:"role"`

	Profile      *Profile      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Resume       *Resume       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Swipes       []Swipe       `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Applications []Application `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
