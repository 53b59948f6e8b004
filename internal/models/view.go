package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrMissingViewer rejects a view that identifies no viewer at all.
var ErrMissingViewer = errors.New("view must have a user or an IP address")

// View records that somebody looked at a question. Registered viewers
// are identified by user, anonymous ones by client IP.
type View struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"`
	IPAddress  string    `gorm:"size:45" json:"ip_address"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	ViewedAt   time.Time `gorm:"autoCreateTime;index" json:"viewed_at"`
}

func (v *View) BeforeCreate(*gorm.DB) error {
	if v.UserID == nil && v.IPAddress == "" {
		return ErrMissingViewer
	}
	return nil
}
