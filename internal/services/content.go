package services

import (
	"gorm.io/gorm"

	"askbox/internal/models"
)

// Deletion cascades run in application transactions, the same
// non-restricting rule for every relationship: dependents of the
// deleted row go with it, authored content of a deleted user stays
// behind with a dangling author reference.

// DeleteQuestion removes the question together with its answers and
// every vote and view attached to either.
func DeleteQuestion(database *gorm.DB, question *models.Question) error {
	return database.Transaction(func(tx *gorm.DB) error {
		var answerIDs []uint
		if err := tx.Model(&models.Answer{}).
			Where("question_id = ?", question.ID).
			Pluck("id", &answerIDs).Error; err != nil {
			return err
		}
		if len(answerIDs) > 0 {
			if err := tx.Where("answer_id IN ?", answerIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.View{}).Error; err != nil {
			return err
		}
		if err := tx.Model(question).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(question).Error
	})
}

// DeleteAnswer removes the answer and its votes.
func DeleteAnswer(database *gorm.DB, answer *models.Answer) error {
	return database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(answer).Error
	})
}

// DeleteUser removes the account and its votes. Questions, answers,
// and views authored by the user are left in place.
func DeleteUser(database *gorm.DB, user *models.User) error {
	return database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
