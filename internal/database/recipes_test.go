package database

import (
	"errors"
	"testing"

	"pantrybook/internal/apperror"
)

func TestRecipeCreationWithIngredients(t *testing.T) {
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

	water, err := CreateIngredient(db, "Water", "ml", 0.0)
	if err != nil {
		t.Fatal("Failed to create ingredient:", err)
	}

	recipe, err := CreateRecipe(db, user.ID, "Bread", "Basic loaf", 20, 40, false,
		[]IngredientQuantity{
			{ID: flour.ID, Quantity: 500},
			{ID: water.ID, Quantity: 300},
		})
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	if recipe.Name != "Bread" || recipe.UserID != user.ID {
		t.Errorf("Unexpected recipe fields: %+v", recipe)
	}

	if len(recipe.Ingredients) != 2 {
		t.Fatalf("Expected 2 recipe ingredients, got %d", len(recipe.Ingredients))
	}
}

func TestRecipeUnknownIngredientsSkipped(t *testing.T) {
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

	recipe, err := CreateRecipe(db, user.ID, "Bread", "Basic loaf", 20, 40, false,
		[]IngredientQuantity{
			{ID: flour.ID, Quantity: 500},
			{ID: 9999, Quantity: 100},
		})
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	if len(recipe.Ingredients) != 1 {
		t.Fatalf("Expected unknown ingredient to be skipped, got %d ingredients", len(recipe.Ingredients))
	}

	if recipe.Ingredients[0].ID != flour.ID {
		t.Errorf("Expected remaining ingredient to be flour, got %d", recipe.Ingredients[0].ID)
	}
}

func TestRecipeDuplicateIngredientLastWins(t *testing.T) {
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

	recipe, err := CreateRecipe(db, user.ID, "Bread", "Basic loaf", 20, 40, false,
		[]IngredientQuantity{
			{ID: flour.ID, Quantity: 500},
			{ID: flour.ID, Quantity: 250},
		})
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	if len(recipe.Ingredients) != 1 {
		t.Fatalf("Expected a single line per ingredient, got %d", len(recipe.Ingredients))
	}

	if recipe.Ingredients[0].Quantity != 250 {
		t.Errorf("Expected last quantity to win, got %f", recipe.Ingredients[0].Quantity)
	}
}

func TestPublicRecipeListing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	user, err := CreateUser(db, "testuser", "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	_, err = CreateRecipe(db, user.ID, "Secret Sauce", "Private", 5, 10, false, nil)
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	public, err := CreateRecipe(db, user.ID, "Pancakes", "Everyone's", 10, 15, true, nil)
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	publicRecipes, err := GetPublicRecipes(db)
	if err != nil {
		t.Fatal("Failed to list public recipes:", err)
	}

	if len(publicRecipes) != 1 || publicRecipes[0].ID != public.ID {
		t.Errorf("Expected only the public recipe, got %+v", publicRecipes)
	}

	ownRecipes, err := GetRecipes(db, user.ID)
	if err != nil {
		t.Fatal("Failed to list own recipes:", err)
	}

	if len(ownRecipes) != 2 {
		t.Errorf("Expected owner to see both recipes, got %d", len(ownRecipes))
	}
}

func TestRecipeUpdateReplacesIngredients(t *testing.T) {
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

	recipe, err := CreateRecipe(db, user.ID, "Bread", "Basic loaf", 20, 40, false,
		[]IngredientQuantity{{ID: flour.ID, Quantity: 500}})
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	name := "Sweet Bread"
	updated, err := UpdateRecipe(db, user.ID, recipe.ID, RecipeUpdate{
		Name:        &name,
		Ingredients: []IngredientQuantity{{ID: sugar.ID, Quantity: 50}},
	})
	if err != nil {
		t.Fatal("Failed to update recipe:", err)
	}

	if updated.Name != "Sweet Bread" {
		t.Errorf("Expected updated name, got %s", updated.Name)
	}

	if updated.Description != "Basic loaf" {
		t.Errorf("Partial update should keep description, got %s", updated.Description)
	}

	if len(updated.Ingredients) != 1 || updated.Ingredients[0].ID != sugar.ID {
		t.Errorf("Expected ingredients replaced with sugar only, got %+v", updated.Ingredients)
	}

	// A nil ingredient list leaves the existing lines untouched.
	public := true
	updated, err = UpdateRecipe(db, user.ID, recipe.ID, RecipeUpdate{IsPublic: &public})
	if err != nil {
		t.Fatal("Failed to update recipe:", err)
	}

	if len(updated.Ingredients) != 1 {
		t.Errorf("Expected ingredients untouched, got %+v", updated.Ingredients)
	}
}

func TestRecipeOwnership(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	owner, err := CreateUser(db, "owner", "owner@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	other, err := CreateUser(db, "other", "other@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	recipe, err := CreateRecipe(db, owner.ID, "Bread", "Basic loaf", 20, 40, false, nil)
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	name := "Stolen"
	_, err = UpdateRecipe(db, other.ID, recipe.ID, RecipeUpdate{Name: &name})
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for non-owner update, got %v", err)
	}

	err = DeleteRecipe(db, other.ID, recipe.ID)
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Expected forbidden for non-owner delete, got %v", err)
	}

	_, err = UpdateRecipe(db, other.ID, 9999, RecipeUpdate{Name: &name})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found before ownership check, got %v", err)
	}
}

func TestRecipeDeleteCascades(t *testing.T) {
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

	recipe, err := CreateRecipe(db, user.ID, "Bread", "Basic loaf", 20, 40, false,
		[]IngredientQuantity{{ID: flour.ID, Quantity: 500}})
	if err != nil {
		t.Fatal("Failed to create recipe:", err)
	}

	if err := DeleteRecipe(db, user.ID, recipe.ID); err != nil {
		t.Fatal("Failed to delete recipe:", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM recipe_ingredients WHERE recipe_id = ?", recipe.ID).Scan(&count); err != nil {
		t.Fatal("Failed to count link rows:", err)
	}

	if count != 0 {
		t.Errorf("Expected link rows removed with recipe, got %d", count)
	}

	_, err = GetRecipe(db, recipe.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not found after delete, got %v", err)
	}
}
