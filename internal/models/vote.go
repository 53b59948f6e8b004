package models

import (
	"time"
)

const (
	Upvote   = 1
	Downvote = -1
)

// Vote is a single user's up or down vote on a question or an answer.
// Exactly one of QuestionID and AnswerID is set. The unique indexes on
// (user, question) and (user, answer) back the one-vote-per-target rule
// when two requests race; the ledger treats a collision as a toggle.
type Vote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_question_vote;uniqueIndex:idx_answer_vote" json:"user_id"`
	QuestionID *uint     `gorm:"uniqueIndex:idx_question_vote" json:"question_id"`
	AnswerID   *uint     `gorm:"uniqueIndex:idx_answer_vote" json:"answer_id"`
	Value      int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt  time.Time `json:"created_at"`
}
