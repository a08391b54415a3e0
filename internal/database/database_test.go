package database

import (
	"database/sql"
	"errors"
	"testing"

	"pantrybook/internal/apperror"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	return db
}

func TestUserCreationAndAuthentication(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	if user.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got %s", user.Username)
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email 'test@example.com', got %s", user.Email)
	}

	if user.PasswordHash == "password123" {
		t.Error("Password should not be stored in plaintext")
	}

	authUser, err := AuthenticateUser(db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to authenticate user:", err)
	}

	if authUser.ID != user.ID {
		t.Errorf("Expected user ID %d, got %d", user.ID, authUser.ID)
	}

	_, err = AuthenticateUser(db, "test@example.com", "wrongpassword")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Expected unauthorized error with wrong password, got %v", err)
	}

	_, err = AuthenticateUser(db, "nobody@example.com", "password123")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("Expected unauthorized error for unknown email, got %v", err)
	}
}

func TestDuplicateUserRejected(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	_, err = CreateUser(db, "testuser", "other@example.com", "password123")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Expected conflict for duplicate username, got %v", err)
	}

	_, err = CreateUser(db, "otheruser", "test@example.com", "password123")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Expected conflict for duplicate email, got %v", err)
	}
}

func TestGetUserByID(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	fetched, err := GetUserByID(db, user.ID)
	if err != nil {
		t.Fatal("Failed to fetch user:", err)
	}

	if fetched.Username != "testuser" {
		t.Errorf("Expected username 'testuser', got %s", fetched.Username)
	}

	_, err = GetUserByID(db, 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found for unknown user, got %v", err)
	}
}
