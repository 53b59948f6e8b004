package models

import (
	"time"
)

type Tag struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Text        string    `gorm:"not null;uniqueIndex;size:50" json:"text"`
	Description string    `gorm:"size:250" json:"description"`
	CreatedAt   time.Time `json:"created_at"`

	// Filled at query time, not stored
	QuestionCount int `gorm:"-" json:"question_count"`
}
