package models

import (
	"strings"
	"time"
)

// displayTextLimit caps the one-line preview of an answer body.
const displayTextLimit = 200

type Answer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	Author     User      `json:"author"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   Question  `json:"question"`
	Text       string    `gorm:"type:text;not null" json:"text"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Filled at query time, not stored
	VoteCount int `gorm:"-" json:"vote_count"`
}

// DisplayText collapses the answer body into a single trimmed line,
// truncated to 200 characters with a trailing ellipsis.
func (a *Answer) DisplayText() string {
	lines := make([]string, 0)
	for _, line := range strings.Split(a.Text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	joined := strings.Join(lines, " ")
	runes := []rune(joined)
	if len(runes) <= displayTextLimit {
		return joined
	}
	return string(runes[:displayTextLimit]) + "..."
}

// IsEdited reports whether the answer changed after publication.
func (a *Answer) IsEdited() bool {
	return a.UpdatedAt.Sub(a.CreatedAt) >= time.Second
}

// OwnerID identifies the author for mutation checks.
func (a *Answer) OwnerID() uint {
	return a.AuthorID
}
