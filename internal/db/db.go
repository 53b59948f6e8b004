package db

import (
	"log"
	"os"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"askbox/internal/models"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "sqlite://askbox.db"
		log.Println("DATABASE_URL not set, using local sqlite database")
	}

	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "sqlite://") {
		dialector = sqlite.Open(strings.TrimPrefix(dsn, "sqlite://"))
	} else {
		dialector = postgres.Open(dsn)
	}

	var err error
	DB, err = gorm.Open(dialector, Config())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	// Seed initial tags
	seedTags()
}

// Config is the gorm configuration shared by the server and the tests.
// TranslateError lets the vote ledger catch gorm.ErrDuplicatedKey on
// any driver. FK constraints are not migrated: deletion cascades run in
// application transactions so author references never block a delete.
func Config() *gorm.Config {
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	}
}

// Migrate creates or updates the schema for every model.
func Migrate(database *gorm.DB) error {
	return database.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Question{},
		&models.Answer{},
		&models.Vote{},
		&models.View{},
	)
}

func seedTags() {
	var count int64
	DB.Model(&models.Tag{}).Count(&count)
	if count > 0 {
		log.Println("Tags already seeded, skipping")
		return
	}

	tags := []models.Tag{
		{Text: "go", Description: "The Go programming language"},
		{Text: "databases", Description: "Schema design, queries, and storage engines"},
		{Text: "web", Description: "HTTP servers, frontends, and everything between"},
		{Text: "testing", Description: "Writing and running tests"},
	}

	for _, tag := range tags {
		if err := DB.Create(&tag).Error; err != nil {
			log.Printf("Failed to create tag %s: %v", tag.Text, err)
		}
	}
	log.Println("Initial tags created successfully")
}
