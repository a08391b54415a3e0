package database

import (
	"database/sql"
	"fmt"

	"pantrybook/internal/apperror"
	"pantrybook/internal/logger"
	"pantrybook/internal/models"
)

func CreateInventory(db *sql.DB, userID int, name string, ingredients []IngredientQuantity) (*models.Inventory, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO inventories (user_id, name)
		VALUES (?, ?)
	`

	result, err := tx.Exec(query, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory ID: %w", err)
	}

	if err := insertInventoryIngredients(tx, int(id), ingredients); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit inventory: %w", err)
	}

	return GetInventoryWithIngredients(db, int(id))
}

// insertInventoryIngredients follows the same leniency as recipe links:
// unresolvable ingredient ids are skipped, last write wins on duplicates.
func insertInventoryIngredients(tx *sql.Tx, inventoryID int, ingredients []IngredientQuantity) error {
	for _, pair := range ingredients {
		var exists int
		err := tx.QueryRow("SELECT COUNT(*) FROM ingredients WHERE id = ?", pair.ID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check ingredient: %w", err)
		}
		if exists == 0 {
			logger.Warn("Skipping unknown ingredient on inventory",
				"inventory_id", inventoryID,
				"ingredient_id", pair.ID)
			continue
		}

		insertQuery := `
			INSERT INTO inventory_ingredients (inventory_id, ingredient_id, quantity)
			VALUES (?, ?, ?)
			ON CONFLICT(inventory_id, ingredient_id) DO UPDATE SET quantity = excluded.quantity
		`
		if _, err := tx.Exec(insertQuery, inventoryID, pair.ID, pair.Quantity); err != nil {
			return fmt.Errorf("failed to add ingredient to inventory: %w", err)
		}
	}

	return nil
}

func GetInventory(db *sql.DB, inventoryID int) (*models.Inventory, error) {
	inventory := &models.Inventory{}
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM inventories
		WHERE id = ?
	`

	err := db.QueryRow(query, inventoryID).Scan(
		&inventory.ID,
		&inventory.UserID,
		&inventory.Name,
		&inventory.CreatedAt,
		&inventory.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("inventory")
		}
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}

	return inventory, nil
}

func GetInventoryWithIngredients(db *sql.DB, inventoryID int) (*models.Inventory, error) {
	inventory, err := GetInventory(db, inventoryID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT ii.id, ii.quantity, i.id, i.name, i.unit, i.unit_price
		FROM inventory_ingredients ii
		LEFT JOIN ingredients i ON ii.ingredient_id = i.id
		WHERE ii.inventory_id = ?
		ORDER BY i.name
	`

	rows, err := db.Query(query, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var linkID int
		var quantity float64
		var ingredientID sql.NullInt64
		var name, unit sql.NullString
		var unitPrice sql.NullFloat64

		if err := rows.Scan(&linkID, &quantity, &ingredientID, &name, &unit, &unitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan inventory ingredient: %w", err)
		}

		if !ingredientID.Valid {
			logger.Warn("Inventory references missing ingredient",
				"inventory_id", inventoryID,
				"link_id", linkID)
			continue
		}

		inventory.Ingredients = append(inventory.Ingredients, models.InventoryIngredient{
			ID:        int(ingredientID.Int64),
			Name:      name.String,
			Quantity:  quantity,
			Unit:      unit.String,
			UnitPrice: unitPrice.Float64,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventory ingredients: %w", err)
	}

	return inventory, nil
}

func GetInventories(db *sql.DB, userID int) ([]models.Inventory, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM inventories
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventories: %w", err)
	}
	defer rows.Close()

	var inventories []models.Inventory
	for rows.Next() {
		var inventory models.Inventory
		err := rows.Scan(
			&inventory.ID,
			&inventory.UserID,
			&inventory.Name,
			&inventory.CreatedAt,
			&inventory.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory: %w", err)
		}
		inventories = append(inventories, inventory)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inventories: %w", err)
	}

	return inventories, nil
}

// UpdateInventory applies a partial update; a non-nil ingredients slice
// fully replaces the current stock rows.
func UpdateInventory(db *sql.DB, userID, inventoryID int, name *string, ingredients []IngredientQuantity) (*models.Inventory, error) {
	inventory, err := GetInventory(db, inventoryID)
	if err != nil {
		return nil, err
	}

	if inventory.UserID != userID {
		return nil, apperror.Forbidden("you do not own this inventory")
	}

	if name != nil {
		inventory.Name = *name
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE inventories
		SET name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	if _, err := tx.Exec(query, inventory.Name, inventoryID); err != nil {
		return nil, fmt.Errorf("failed to update inventory: %w", err)
	}

	if ingredients != nil {
		if _, err := tx.Exec("DELETE FROM inventory_ingredients WHERE inventory_id = ?", inventoryID); err != nil {
			return nil, fmt.Errorf("failed to clear inventory ingredients: %w", err)
		}
		if err := insertInventoryIngredients(tx, inventoryID, ingredients); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit inventory update: %w", err)
	}

	return GetInventoryWithIngredients(db, inventoryID)
}

// SetInventoryIngredientQuantity overwrites the available quantity for one
// ingredient, creating the stock row when missing. This is deliberately not
// an increment; restocking a held ingredient replaces the stored value.
func SetInventoryIngredientQuantity(db *sql.DB, userID, inventoryID, ingredientID int, quantity float64) (*models.InventoryStock, error) {
	inventory, err := GetInventory(db, inventoryID)
	if err != nil {
		return nil, err
	}

	if inventory.UserID != userID {
		return nil, apperror.Forbidden("you do not own this inventory")
	}

	if quantity < 0 {
		return nil, apperror.InvalidInput("quantity must not be negative")
	}

	var rowID int
	checkQuery := `SELECT id FROM inventory_ingredients WHERE inventory_id = ? AND ingredient_id = ?`
	err = db.QueryRow(checkQuery, inventoryID, ingredientID).Scan(&rowID)

	if err == sql.ErrNoRows {
		if _, err := GetIngredient(db, ingredientID); err != nil {
			return nil, err
		}

		insertQuery := `
			INSERT INTO inventory_ingredients (inventory_id, ingredient_id, quantity)
			VALUES (?, ?, ?)
		`
		result, err := db.Exec(insertQuery, inventoryID, ingredientID, quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to add ingredient to inventory: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("failed to get stock row ID: %w", err)
		}
		rowID = int(id)
	} else if err != nil {
		return nil, fmt.Errorf("failed to check inventory ingredient: %w", err)
	} else {
		updateQuery := `UPDATE inventory_ingredients SET quantity = ? WHERE id = ?`
		if _, err := db.Exec(updateQuery, quantity, rowID); err != nil {
			return nil, fmt.Errorf("failed to update ingredient quantity: %w", err)
		}
	}

	return &models.InventoryStock{
		ID:           rowID,
		InventoryID:  inventoryID,
		IngredientID: ingredientID,
		Quantity:     quantity,
	}, nil
}

func DeleteInventory(db *sql.DB, userID, inventoryID int) error {
	inventory, err := GetInventory(db, inventoryID)
	if err != nil {
		return err
	}

	if inventory.UserID != userID {
		return apperror.Forbidden("you do not own this inventory")
	}

	_, err = db.Exec("DELETE FROM inventories WHERE id = ?", inventoryID)
	if err != nil {
		return fmt.Errorf("failed to delete inventory: %w", err)
	}

	return nil
}
