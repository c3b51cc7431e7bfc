package repository

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/litreview/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Follow{}, &model.Block{}, &model.Ticket{}, &model.Review{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUsers(t *testing.T, db *gorm.DB, n int) []model.User {
	t.Helper()
	users := make([]model.User, n)
	for i := range users {
		users[i] = model.User{
			ID:       fmt.Sprintf("u%04d", i),
			Username: fmt.Sprintf("u%04d", i),
			Email:    fmt.Sprintf("u%04d@example.com", i),
			Password: "p",
		}
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}
	return users
}
