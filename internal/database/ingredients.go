package database

import (
	"database/sql"
	"fmt"
	"time"

	"pantrybook/internal/apperror"
	"pantrybook/internal/models"
)

func CreateIngredient(db *sql.DB, name, unit string, unitPrice float64) (*models.Ingredient, error) {
	if unitPrice < 0 {
		return nil, apperror.InvalidInput("unit price must not be negative")
	}

	var exists int
	err := db.QueryRow("SELECT COUNT(*) FROM ingredients WHERE name = ?", name).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check ingredient name: %w", err)
	}
	if exists > 0 {
		return nil, apperror.Conflict("ingredient already exists")
	}

	query := `
		INSERT INTO ingredients (name, unit, unit_price)
		VALUES (?, ?, ?)
	`

	result, err := db.Exec(query, name, unit, unitPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient ID: %w", err)
	}

	ingredient := &models.Ingredient{
		ID:        int(id),
		Name:      name,
		Unit:      unit,
		UnitPrice: unitPrice,
		CreatedAt: time.Now(),
	}

	return ingredient, nil
}

func GetIngredient(db *sql.DB, ingredientID int) (*models.Ingredient, error) {
	ingredient := &models.Ingredient{}
	query := `
		SELECT id, name, unit, unit_price, created_at
		FROM ingredients
		WHERE id = ?
	`

	err := db.QueryRow(query, ingredientID).Scan(
		&ingredient.ID,
		&ingredient.Name,
		&ingredient.Unit,
		&ingredient.UnitPrice,
		&ingredient.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("ingredient")
		}
		return nil, fmt.Errorf("failed to query ingredient: %w", err)
	}

	return ingredient, nil
}

func GetIngredients(db *sql.DB) ([]models.Ingredient, error) {
	query := `
		SELECT id, name, unit, unit_price, created_at
		FROM ingredients
		ORDER BY name
	`

	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ingredient models.Ingredient
		err := rows.Scan(
			&ingredient.ID,
			&ingredient.Name,
			&ingredient.Unit,
			&ingredient.UnitPrice,
			&ingredient.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ingredients: %w", err)
	}

	return ingredients, nil
}

// UpdateIngredient applies a partial update. Nil fields are left unchanged.
func UpdateIngredient(db *sql.DB, ingredientID int, name, unit *string, unitPrice *float64) (*models.Ingredient, error) {
	ingredient, err := GetIngredient(db, ingredientID)
	if err != nil {
		return nil, err
	}

	if name != nil {
		var taken int
		err := db.QueryRow("SELECT COUNT(*) FROM ingredients WHERE name = ? AND id != ?", *name, ingredientID).Scan(&taken)
		if err != nil {
			return nil, fmt.Errorf("failed to check ingredient name: %w", err)
		}
		if taken > 0 {
			return nil, apperror.Conflict("ingredient name already in use")
		}
		ingredient.Name = *name
	}
	if unit != nil {
		ingredient.Unit = *unit
	}
	if unitPrice != nil {
		if *unitPrice < 0 {
			return nil, apperror.InvalidInput("unit price must not be negative")
		}
		ingredient.UnitPrice = *unitPrice
	}

	query := `
		UPDATE ingredients
		SET name = ?, unit = ?, unit_price = ?
		WHERE id = ?
	`

	_, err = db.Exec(query, ingredient.Name, ingredient.Unit, ingredient.UnitPrice, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}

	return ingredient, nil
}

// DeleteIngredient refuses to delete an ingredient still referenced by a
// recipe, inventory or shopping list row.
func DeleteIngredient(db *sql.DB, ingredientID int) error {
	if _, err := GetIngredient(db, ingredientID); err != nil {
		return err
	}

	var references int
	query := `
		SELECT
			(SELECT COUNT(*) FROM recipe_ingredients WHERE ingredient_id = ?) +
			(SELECT COUNT(*) FROM inventory_ingredients WHERE ingredient_id = ?) +
			(SELECT COUNT(*) FROM shopping_list_items WHERE ingredient_id = ?)
	`
	err := db.QueryRow(query, ingredientID, ingredientID, ingredientID).Scan(&references)
	if err != nil {
		return fmt.Errorf("failed to count ingredient references: %w", err)
	}

	if references > 0 {
		return apperror.Conflict("ingredient is still in use")
	}

	_, err = db.Exec("DELETE FROM ingredients WHERE id = ?", ingredientID)
	if err != nil {
		return fmt.Errorf("failed to delete ingredient: %w", err)
	}

	return nil
}
