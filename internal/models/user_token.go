package models

import "time"

// UserToken is one entry of a user's session token set. Insertion order is
// preserved through the auto-incrementing ID.
type UserToken struct {
	ID        uint64    `gorm:"primarykey" json:"-"`
	UserID    uint64    `gorm:"not null;index" json:"-"`
	Token     string    `gorm:"type:varchar(512);not null" json:"token"`
	CreatedAt time.Time `json:"-"`
}
