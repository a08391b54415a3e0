package database

import (
	"errors"
	"testing"

	"pantrybook/internal/apperror"
)

func TestInventoryCreationWithIngredients(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	flour, err := CreateIngredient(db, "Flour", "g", 0.002)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	inventory, err := CreateInventory(db, user.ID, "Pantry",
		[]IngredientQuantity{{ID: flour.ID, Quantity: 200}})
	if err != nil {
		t.Fatal("Failed to create inventory:", err)
	}

	if inventory.Name != "Pantry" || inventory.UserID != user.ID {
		t.Errorf("Unexpected inventory fields: %+v", inventory)
	}

	if len(inventory.Ingredients) != 1 || inventory.Ingredients[0].Quantity != 200 {
		t.Errorf("Expected flour at 200, got %+v", inventory.Ingredients)
	}

	if inventory.Ingredients[0].UnitPrice != 0.002 {
		t.Errorf("Expected ingredient price joined in, got %f", inventory.Ingredients[0].UnitPrice)
	}
}

func TestSetInventoryQuantityOverwrites(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	flour, err := CreateIngredient(db, "Flour", "g", 0.002)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	inventory, err := CreateInventory(db, user.ID, "Pantry", nil)
	if err != nil {
		t.Fatal("Failed to create inventory:", err)
	}

	stock, err := SetInventoryIngredientQuantity(db, user.ID, inventory.ID, flour.ID, 200)
	if err != nil {
		t.Fatal("Failed to set quantity:", err)
	}

	if stock.Quantity != 200 {
		t.Errorf("Expected quantity 200, got %f", stock.Quantity)
	}

	// Setting again overwrites instead of accumulating.
	stock, err = SetInventoryIngredientQuantity(db, user.ID, inventory.ID, flour.ID, 50)
	if err != nil {
		t.Fatal("Failed to set quantity:", err)
	}

	if stock.Quantity != 50 {
		t.Errorf("Expected quantity overwritten to 50, got %f", stock.Quantity)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM inventory_ingredients WHERE inventory_id = ?", inventory.ID).Scan(&count); err != nil {
		t.Fatal("Failed to count stock rows:", err)
	}

	if count != 1 {
		t.Errorf("Expected a single stock row, got %d", count)
	}
}

func TestSetInventoryQuantityValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	other, err := CreateUser(db, "other", "other@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	flour, err := CreateIngredient(db, "Flour", "g", 0.002)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	inventory, err := CreateInventory(db, user.ID, "Pantry", nil)
	if err != nil {
		t.Fatal("Failed to create inventory:", err)
	}

	_, err = SetInventoryIngredientQuantity(db, user.ID, inventory.ID, flour.ID, -5)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("Expected invalid input for negative quantity, got %v", err)
	}

	_, err = SetInventoryIngredientQuantity(db, user.ID, inventory.ID, 9999, 10)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found for unknown ingredient, got %v", err)
	}

	_, err = SetInventoryIngredientQuantity(db, other.ID, inventory.ID, flour.ID, 10)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for non-owner, got %v", err)
	}

	_, err = SetInventoryIngredientQuantity(db, other.ID, 9999, flour.ID, 10)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found before ownership check, got %v", err)
	}
}

func TestInventoryUpdateReplacesIngredients(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	flour, err := CreateIngredient(db, "Flour", "g", 0.002)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	sugar, err := CreateIngredient(db, "Sugar", "g", 0.003)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	inventory, err := CreateInventory(db, user.ID, "Pantry",
		[]IngredientQuantity{{ID: flour.ID, Quantity: 200}})
	if err != nil {
		t.Fatal("Failed to create inventory:", err)
	}

	name := "Kitchen"
	updated, err := UpdateInventory(db, user.ID, inventory.ID, &name,
		[]IngredientQuantity{{ID: sugar.ID, Quantity: 100}})
	if err != nil {
		t.Fatal("Failed to update inventory:", err)
	}

	if updated.Name != "Kitchen" {
		t.Errorf("Expected updated name, got %s", updated.Name)
	}

	if len(updated.Ingredients) != 1 || updated.Ingredients[0].ID != sugar.ID {
		t.Errorf("Expected ingredients replaced with sugar only, got %+v", updated.Ingredients)
	}
}

func TestInventoryDeleteCascades(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	flour, err := CreateIngredient(db, "Flour", "g", 0.002)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	inventory, err := CreateInventory(db, user.ID, "Pantry",
		[]IngredientQuantity{{ID: flour.ID, Quantity: 200}})
	if err != nil {
		t.Fatal("Failed to create inventory:", err)
	}

	if err := DeleteInventory(db, user.ID, inventory.ID); err != nil {
		t.Fatal("Failed to delete inventory:", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM inventory_ingredients WHERE inventory_id = ?", inventory.ID).Scan(&count); err != nil {
		t.Fatal("Failed to count stock rows:", err)
	}

	if count != 0 {
		t.Errorf("Expected stock rows removed with inventory, got %d", count)
	}
}
