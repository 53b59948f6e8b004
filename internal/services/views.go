package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"askbox/internal/models"
)

// ViewDedupWindow is how long repeat visits from the same viewer are
// collapsed into a single recorded view.
const ViewDedupWindow = time.Hour

// ViewerIdentity is either a registered user or a raw client IP.
type ViewerIdentity struct {
	UserID    *uint
	IPAddress string
}

// RecordView logs that the viewer looked at a question. A new row is
// only written when the viewer has no view for the question yet, or
// when their latest one is older than the dedup window. Two racing
// requests inside the window may both insert; that slight over-count
// is acceptable for popularity data.
func RecordView(database *gorm.DB, viewer ViewerIdentity, questionID uint) error {
	query := database.Where("question_id = ?", questionID)
	if viewer.UserID != nil {
		query = query.Where("user_id = ?", *viewer.UserID)
	} else {
		query = query.Where("ip_address = ?", viewer.IPAddress)
	}

	var latest models.View
	err := query.Order("viewed_at DESC").First(&latest).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err == nil && time.Since(latest.ViewedAt) <= ViewDedupWindow {
		return nil
	}

	view := models.View{
		UserID:     viewer.UserID,
		IPAddress:  viewer.IPAddress,
		QuestionID: questionID,
	}
	return database.Create(&view).Error
}

// ViewCount is the number of recorded views for the question.
func ViewCount(database *gorm.DB, questionID uint) (int64, error) {
	var count int64
	err := database.Model(&models.View{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	return count, err
}
