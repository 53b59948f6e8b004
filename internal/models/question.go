package models

import (
	"time"
)

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AuthorID  uint      `gorm:"not null;index" json:"author_id"`
	Author    User      `json:"author"`
	Title     string    `gorm:"size:200;not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Tags      []Tag     `gorm:"many2many:question_tags;" json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled at query time, not stored
	AnswerCount int `gorm:"-" json:"answer_count"`
	ViewCount   int `gorm:"-" json:"view_count"`
	VoteCount   int `gorm:"-" json:"vote_count"`
}

// IsEdited reports whether the question changed after publication.
// Both timestamps are auto-set on insert a moment apart, so anything
// under a second counts as "not edited".
func (q *Question) IsEdited() bool {
	return q.UpdatedAt.Sub(q.CreatedAt) >= time.Second
}

// OwnerID identifies the author for mutation checks.
func (q *Question) OwnerID() uint {
	return q.AuthorID
}
