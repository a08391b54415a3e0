package database

import (
	"database/sql"
	"fmt"

	"pantrybook/internal/apperror"
	"pantrybook/internal/logger"
	"pantrybook/internal/models"
)

// IngredientQuantity is an (ingredient id, quantity) pair supplied when
// attaching ingredients to a recipe or inventory.
type IngredientQuantity struct {
	ID       int     `json:"id"`
	Quantity float64 `json:"quantity"`
}

func CreateRecipe(db *sql.DB, userID int, name, description string, prepTime, cookTime int, isPublic bool, ingredients []IngredientQuantity) (*models.Recipe, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO recipes (user_id, name, description, prep_time_minutes, cook_time_minutes, is_public)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := tx.Exec(query, userID, name, description, prepTime, cookTime, isPublic)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ID: %w", err)
	}

	if err := insertRecipeIngredients(tx, int(id), ingredients); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe: %w", err)
	}

	return GetRecipeWithIngredients(db, int(id))
}

// insertRecipeIngredients attaches the supplied pairs inside tx. Pairs whose
// ingredient id does not resolve are skipped, not rejected; duplicated pairs
// for the same ingredient keep the last supplied quantity.
func insertRecipeIngredients(tx *sql.Tx, recipeID int, ingredients []IngredientQuantity) error {
	for _, pair := range ingredients {
		var exists int
		err := tx.QueryRow("SELECT COUNT(*) FROM ingredients WHERE id = ?", pair.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check ingredient: %w", err)
		}
		if exists == 0 {
			logger.Warn("Skipping unknown ingredient on recipe",
				"recipe_id", recipeID,
				"ingredient_id", pair.ID)
			continue
		}

		insertQuery := `
			INSERT INTO recipe_ingredients (recipe_id, ingredient_id, quantity)
			VALUES (?, ?, ?)
			ON CONFLICT(recipe_id, ingredient_id) DO UPDATE SET quantity = excluded.quantity
		`
		if _, err := tx.Exec(insertQuery, recipeID, pair.ID, pair.Quantity); err != nil {
			return fmt.Errorf("failed to attach ingredient to recipe: %w", err)
		}
	}

	return nil
}

func GetRecipe(db *sql.DB, recipeID int) (*models.Recipe, error) {
	recipe := &models.Recipe{}
	query := `
		SELECT id, user_id, name, description, prep_time_minutes, cook_time_minutes, is_public, created_at, updated_at
		FROM recipes
		WHERE id = ?
	`

	err := db.QueryRow(query, recipeID).Scan(
		&recipe.ID,
		&recipe.UserID,
		&recipe.Name,
		&recipe.Description,
		&recipe.PrepTimeMinutes,
		&recipe.CookTimeMinutes,
		&recipe.IsPublic,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("recipe")
		}
		return nil, fmt.Errorf("failed to query recipe: %w", err)
	}

	return recipe, nil
}

func GetRecipeWithIngredients(db *sql.DB, recipeID int) (*models.Recipe, error) {
	recipe, err := GetRecipe(db, recipeID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ri.id, ri.quantity, i.id, i.name, i.unit
		FROM recipe_ingredients ri
		LEFT JOIN ingredients i ON ri.ingredient_id = i.id
		WHERE ri.recipe_id = ?
		ORDER BY i.name
	`

	rows, err := db.Query(query, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var linkID int
		var quantity float64
		var ingredientID sql.NullInt64
		var name, unit sql.NullString

		if err := rows.Scan(&linkID, &quantity, &ingredientID, &name, &unit); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}

		if !ingredientID.Valid {
			logger.Warn("Recipe references missing ingredient",
				"recipe_id", recipeID,
				"link_id", linkID)
			continue
		}

		recipe.Ingredients = append(recipe.Ingredients, models.RecipeIngredient{
			ID:       int(ingredientID.Int64),
			Name:     name.String,
			Quantity: quantity,
			Unit:     unit.String,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe ingredients: %w", err)
	}

	return recipe, nil
}

func GetRecipes(db *sql.DB, userID int) ([]models.Recipe, error) {
	query := `
		SELECT id, user_id, name, description, prep_time_minutes, cook_time_minutes, is_public, created_at, updated_at
		FROM recipes
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`
	return queryRecipes(db, query, userID)
}

func GetPublicRecipes(db *sql.DB) ([]models.Recipe, error) {
	query := `
		SELECT id, user_id, name, description, prep_time_minutes, cook_time_minutes, is_public, created_at, updated_at
		FROM recipes
		WHERE is_public = TRUE
		ORDER BY updated_at DESC
	`
	return queryRecipes(db, query)
}

func queryRecipes(db *sql.DB, query string, args ...interface{}) ([]models.Recipe, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		err := rows.Scan(
			&recipe.ID,
			&recipe.UserID,
			&recipe.Name,
			&recipe.Description,
			&recipe.PrepTimeMinutes,
			&recipe.CookTimeMinutes,
			&recipe.IsPublic,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipes: %w", err)
	}

	return recipes, nil
}

// RecipeUpdate carries a partial recipe update. Nil fields are left
// unchanged; a non-nil Ingredients slice fully replaces the current links.
type RecipeUpdate struct {
	Name            *string
	Description     *string
	PrepTimeMinutes *int
	CookTimeMinutes *int
	IsPublic        *bool
	Ingredients     []IngredientQuantity
}

func UpdateRecipe(db *sql.DB, userID, recipeID int, update RecipeUpdate) (*models.Recipe, error) {
	recipe, err := GetRecipe(db, recipeID)
	if err != nil {
		return nil, err
	}

	if recipe.UserID != userID {
		return nil, apperror.Forbidden("you do not own this recipe")
	}

	if update.Name != nil {
		recipe.Name = *update.Name
	}
	if update.Description != nil {
		recipe.Description = *update.Description
	}
	if update.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *update.PrepTimeMinutes
	}
	if update.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *update.CookTimeMinutes
	}
	if update.IsPublic != nil {
		recipe.IsPublic = *update.IsPublic
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE recipes
		SET name = ?, description = ?, prep_time_minutes = ?, cook_time_minutes = ?, is_public = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err = tx.Exec(query, recipe.Name, recipe.Description, recipe.PrepTimeMinutes, recipe.CookTimeMinutes, recipe.IsPublic, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	if update.Ingredients != nil {
		if _, err := tx.Exec("DELETE FROM recipe_ingredients WHERE recipe_id = ?", recipeID); err != nil {
			return nil, fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}
		if err := insertRecipeIngredients(tx, recipeID, update.Ingredients); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe update: %w", err)
	}

	return GetRecipeWithIngredients(db, recipeID)
}

func DeleteRecipe(db *sql.DB, userID, recipeID int) error {
	recipe, err := GetRecipe(db, recipeID)
	if err != nil {
		return err
	}

	if recipe.UserID != userID {
		return apperror.Forbidden("you do not own this recipe")
	}

	// recipe_ingredients rows go with it via ON DELETE CASCADE
	_, err = db.Exec("DELETE FROM recipes WHERE id = ?", recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}

	return nil
}
