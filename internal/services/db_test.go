package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"askbox/internal/db"
	"askbox/internal/models"
)

// openTestDB gives each test its own migrated in-memory database.
// Connections to :memory: do not share state, so the pool is pinned
// to a single connection.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(":memory:"), db.Config())
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("unwrap test database: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(database); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return database
}

func createUser(t *testing.T, database *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Password: "x"}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func createQuestion(t *testing.T, database *gorm.DB, authorID uint, title string) models.Question {
	t.Helper()
	question := models.Question{AuthorID: authorID, Title: title, Body: "body"}
	if err := database.Create(&question).Error; err != nil {
		t.Fatalf("create question %s: %v", title, err)
	}
	return question
}

func createAnswer(t *testing.T, database *gorm.DB, authorID, questionID uint, text string) models.Answer {
	t.Helper()
	answer := models.Answer{AuthorID: authorID, QuestionID: questionID, Text: text}
	if err := database.Create(&answer).Error; err != nil {
		t.Fatalf("create answer: %v", err)
	}
	return answer
}
