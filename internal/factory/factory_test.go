package factory

import (
	"path/filepath"
	"testing"

	domain "github.com/example/todo-monolith/domain/todo"
	"github.com/example/todo-monolith/domain/user"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&user.User{}, &domain.Todo{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func TestNewUser(t *testing.T) {
	u := NewUser()

	if u.ID == "" {
		t.Error("expected non-empty ID")
	}
	if u.Email == "" {
		t.Error("expected non-empty email")
	}
	if !u.Verified() {
		t.Error("expected factory user to be verified by default")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(DefaultPassword)); err != nil {
		t.Errorf("password hash does not match default password: %v", err)
	}

	other := NewUser()
	if other.Email == u.Email {
		t.Error("expected unique emails across factory users")
	}
}

func TestNewUser_Options(t *testing.T) {
	u := NewUser(WithName("Alice"), WithEmail("alice@example.com"), Unverified())

	if u.Name != "Alice" {
		t.Errorf("Name = %q, want %q", u.Name, "Alice")
	}
	if u.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", u.Email, "alice@example.com")
	}
	if u.Verified() {
		t.Error("expected unverified user")
	}
	if u.VerifyToken == "" {
		t.Error("expected pending verification token")
	}
}

func TestNewTodo(t *testing.T) {
	td := NewTodo("owner-1")

	if td.ID == "" {
		t.Error("expected non-empty ID")
	}
	if td.UserID != "owner-1" {
		t.Errorf("UserID = %q, want %q", td.UserID, "owner-1")
	}
	if td.Name == "" {
		t.Error("expected non-empty name")
	}
	if td.Finished {
		t.Error("expected unfinished todo by default")
	}

	done := NewTodo("owner-1", WithTodoName("Ship release"), WithNote("tag first"), Finished())
	if done.Name != "Ship release" || done.Note != "tag first" || !done.Finished {
		t.Errorf("options not applied: %+v", done)
	}
}

func TestSeeder(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)

	if err := seeder.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	var userCount int64
	db.Model(&user.User{}).Count(&userCount)
	if userCount != 2 {
		t.Errorf("user count = %d, want 2", userCount)
	}

	var todoCount int64
	db.Model(&domain.Todo{}).Count(&todoCount)
	if todoCount != 6 {
		t.Errorf("todo count = %d, want 6", todoCount)
	}

	var seeded user.User
	if err := db.Where("email = ?", "first@example.com").First(&seeded).Error; err != nil {
		t.Fatalf("seeded user not found: %v", err)
	}
	if !seeded.Verified() {
		t.Error("expected seeded user to be verified")
	}

	var owned int64
	db.Model(&domain.Todo{}).Where("user_id = ? AND finished = ?", seeded.ID, false).Count(&owned)
	if owned != 3 {
		t.Errorf("unfinished todos for seeded user = %d, want 3", owned)
	}
}

func TestSeeder_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)

	if err := seeder.Seed(); err != nil {
		t.Fatalf("first Seed() error = %v", err)
	}
	if err := seeder.Seed(); err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}

	var userCount int64
	db.Model(&user.User{}).Count(&userCount)
	if userCount != 2 {
		t.Errorf("user count after reseeding = %d, want 2", userCount)
	}
}

func TestSeeder_Reset(t *testing.T) {
	db := setupTestDB(t)
	seeder := NewSeeder(db)

	if err := seeder.Seed(); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if err := seeder.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	var userCount, todoCount int64
	db.Model(&user.User{}).Count(&userCount)
	db.Model(&domain.Todo{}).Count(&todoCount)
	if userCount != 0 || todoCount != 0 {
		t.Errorf("counts after reset = %d users, %d todos, want 0/0", userCount, todoCount)
	}
}
