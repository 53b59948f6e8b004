package services

import (
	"errors"

	"gorm.io/gorm"

	"askbox/internal/models"
)

// TargetKind names the kind of content a vote attaches to.
type TargetKind string

const (
	TargetQuestion TargetKind = "question"
	TargetAnswer   TargetKind = "answer"
)

var (
	ErrInvalidVote   = errors.New("vote value must be +1 or -1")
	ErrInvalidTarget = errors.New("unknown vote target")
)

// CastVote records, flips, or retracts the user's vote on a target,
// keeping at most one active vote per (user, target):
//
//   - no existing vote: a row with the given value is created
//   - existing vote with the same value: the row is deleted (un-vote)
//   - existing vote with the other value: the row is updated (flip)
//
// The check-then-act sequence runs in one transaction. If a concurrent
// request wins an insert race, the unique index turns our insert into a
// duplicate-key error, which is absorbed by re-running the operation
// against the winner's row. That error never reaches the caller.
func CastVote(database *gorm.DB, userID uint, kind TargetKind, targetID uint, value int) error {
	if value != models.Upvote && value != models.Downvote {
		return ErrInvalidVote
	}
	err := castVote(database, userID, kind, targetID, value)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		err = castVote(database, userID, kind, targetID, value)
	}
	return err
}

func castVote(database *gorm.DB, userID uint, kind TargetKind, targetID uint, value int) error {
	return database.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("user_id = ?", userID)
		switch kind {
		case TargetQuestion:
			query = query.Where("question_id = ?", targetID)
		case TargetAnswer:
			query = query.Where("answer_id = ?", targetID)
		default:
			return ErrInvalidTarget
		}

		var existing models.Vote
		err := query.First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			vote := models.Vote{UserID: userID, Value: value}
			if kind == TargetQuestion {
				vote.QuestionID = &targetID
			} else {
				vote.AnswerID = &targetID
			}
			return tx.Create(&vote).Error
		}
		if err != nil {
			return err
		}

		if existing.Value == value {
			// Same value twice in a row is an un-vote.
			return tx.Delete(&existing).Error
		}
		return tx.Model(&existing).Update("value", value).Error
	})
}

// VoteCount returns the net score of the target, 0 when unvoted.
func VoteCount(database *gorm.DB, kind TargetKind, targetID uint) (int, error) {
	query := database.Model(&models.Vote{}).Select("COALESCE(SUM(value), 0)")
	switch kind {
	case TargetQuestion:
		query = query.Where("question_id = ?", targetID)
	case TargetAnswer:
		query = query.Where("answer_id = ?", targetID)
	default:
		return 0, ErrInvalidTarget
	}

	var total int64
	if err := query.Scan(&total).Error; err != nil {
		return 0, err
	}
	return int(total), nil
}

// VoteMeta captures the requester's own votes for the detail page, so
// the template can highlight the buttons they already pressed.
type VoteMeta struct {
	QuestionUpvoted    bool
	QuestionDownvoted  bool
	UpvotedAnswerIDs   map[uint]bool
	DownvotedAnswerIDs map[uint]bool
}

// UserVoteMeta loads the vote state of one user around a question.
func UserVoteMeta(database *gorm.DB, userID, questionID uint) (VoteMeta, error) {
	meta := VoteMeta{
		UpvotedAnswerIDs:   make(map[uint]bool),
		DownvotedAnswerIDs: make(map[uint]bool),
	}

	var votes []models.Vote
	if err := database.Where("user_id = ?", userID).Find(&votes).Error; err != nil {
		return meta, err
	}
	for _, v := range votes {
		switch {
		case v.QuestionID != nil && *v.QuestionID == questionID:
			if v.Value == models.Upvote {
				meta.QuestionUpvoted = true
			} else {
				meta.QuestionDownvoted = true
			}
		case v.AnswerID != nil:
			if v.Value == models.Upvote {
				meta.UpvotedAnswerIDs[*v.AnswerID] = true
			} else {
				meta.DownvotedAnswerIDs[*v.AnswerID] = true
			}
		}
	}
	return meta, nil
}
