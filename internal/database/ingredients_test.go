package database

import (
	"errors"
	"testing"

	"pantrybook/internal/apperror"
)

func TestIngredientCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ingredient, err := CreateIngredient(db, "Flour", "g", 0.002)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	if ingredient.Name != "Flour" {
		t.Errorf("Expected name 'Flour', got %s", ingredient.Name)
	}

	fetched, err := GetIngredient(db, ingredient.ID)
	if err != nil {
		t.Fatal("Failed to fetch ingredient:", err)
	}

	if fetched.Unit != "g" || fetched.UnitPrice != 0.002 {
		t.Errorf("Unexpected ingredient fields: %+v", fetched)
	}

	newPrice := 0.003
	updated, err := UpdateIngredient(db, ingredient.ID, nil, nil, &newPrice)
	if err != nil {
		t.Fatal("Failed to update ingredient:", err)
	}

	if updated.Name != "Flour" {
		t.Errorf("Partial update should keep name, got %s", updated.Name)
	}

	if updated.UnitPrice != 0.003 {
		t.Errorf("Expected unit price 0.003, got %f", updated.UnitPrice)
	}

	if err := DeleteIngredient(db, ingredient.ID); err != nil {
		t.Fatal("Failed to delete ingredient:", err)
	}

	_, err = GetIngredient(db, ingredient.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}

func TestIngredientValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := CreateIngredient(db, "Sugar", "g", -1)
	if !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("Expected invalid input for negative price, got %v", err)
	}

	_, err = CreateIngredient(db, "Sugar", "g", 0.001)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	_, err = CreateIngredient(db, "Sugar", "kg", 1.0)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Expected conflict for duplicate name, got %v", err)
	}
}

func TestIngredientRenameConflict(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	_, err := CreateIngredient(db, "Salt", "g", 0.001)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	pepper, err := CreateIngredient(db, "Pepper", "g", 0.01)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	name := "Salt"
	_, err = UpdateIngredient(db, pepper.ID, &name, nil, nil)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Expected conflict when renaming onto existing name, got %v", err)
	}
}

func TestDeleteIngredientInUse(t *testing.T) {
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

	_, err = CreateRecipe(db, user.ID, "Bread", "Basic loaf", 20, 40, false,
		[]IngredientQuantity{{ID: flour.ID, Quantity: 500}})
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	err = DeleteIngredient(db, flour.ID)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Expected conflict deleting referenced ingredient, got %v", err)
	}

	err = DeleteIngredient(db, 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found for unknown ingredient, got %v", err)
	}
}

func TestListIngredientsSorted(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for _, name := range []string{"Zucchini", "Apple", "Milk"} {
		if _, err := CreateIngredient(db, name, "g", 0.01); err != nil {
			t.Fatal("Failed to create ingredient:", err)
		}
	}

	ingredients, err := GetIngredients(db)
	if err != nil {
		t.Fatal("Failed to list ingredients:", err)
	}

	if len(ingredients) != 3 {
		t.Fatalf("Expected 3 ingredients, got %d", len(ingredients))
	}

	if ingredients[0].Name != "Apple" || ingredients[2].Name != "Zucchini" {
		t.Errorf("Expected ingredients sorted by name, got %s, %s, %s",
			ingredients[0].Name, ingredients[1].Name, ingredients[2].Name)
	}
}
