package database

import (
	"database/sql"
	"fmt"
	"math"

	"pantrybook/internal/apperror"
	"pantrybook/internal/logger"
	"pantrybook/internal/models"

	"github.com/google/uuid"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func CreateShoppingList(db *sql.DB, userID int) (*models.ShoppingList, error) {
	listID := uuid.New().String()

	query := `
		INSERT INTO shopping_lists (id, user_id)
		VALUES (?, ?)
	`

	if _, err := db.Exec(query, listID, userID); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	return GetShoppingListWithItems(db, listID)
}

func GetShoppingList(db *sql.DB, listID string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}
	query := `
		SELECT id, user_id, created_at, updated_at
		FROM shopping_lists
		WHERE id = ?
	`

	err := db.QueryRow(query, listID).Scan(
		&list.ID,
		&list.UserID,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("shopping list")
		}
		return nil, fmt.Errorf("failed to query shopping list: %w", err)
	}

	return list, nil
}

// GetShoppingListWithItems materializes a list with its items joined to
// their ingredients, plus the derived totals. Totals are recomputed on
// every read and never stored.
func GetShoppingListWithItems(db *sql.DB, listID string) (*models.ShoppingList, error) {
	list, err := GetShoppingList(db, listID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT sli.id, sli.list_id, sli.quantity, sli.purchased, sli.created_at,
		       i.id, i.name, i.unit, i.unit_price
		FROM shopping_list_items sli
		LEFT JOIN ingredients i ON sli.ingredient_id = i.id
		WHERE sli.list_id = ?
		ORDER BY i.name
	`

	rows, err := db.Query(query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping list items: %w", err)
	}
	defer rows.Close()

	list.Items = []models.ShoppingListItem{}
	for rows.Next() {
		var item models.ShoppingListItem
		var ingredientID sql.NullInt64
		var name, unit sql.NullString
		var unitPrice sql.NullFloat64

		err := rows.Scan(
			&item.ID,
			&item.ListID,
			&item.Quantity,
			&item.Purchased,
			&item.CreatedAt,
			&ingredientID,
			&name,
			&unit,
			&unitPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list item: %w", err)
		}

		if !ingredientID.Valid {
			logger.Warn("Shopping list item references missing ingredient",
				"list_id", listID,
				"item_id", item.ID)
			continue
		}

		item.IngredientID = int(ingredientID.Int64)
		item.IngredientName = name.String
		item.Unit = unit.String
		item.EstimatedPrice = round2(item.Quantity * unitPrice.Float64)

		list.Items = append(list.Items, item)
		list.TotalQuantity += item.Quantity
		list.TotalPrice += item.Quantity * unitPrice.Float64
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping list items: %w", err)
	}

	list.TotalItems = len(list.Items)
	list.TotalPrice = round2(list.TotalPrice)

	return list, nil
}

func GetShoppingLists(db *sql.DB, userID int) ([]models.ShoppingList, error) {
	query := `
		SELECT id
		FROM shopping_lists
		WHERE user_id = ?
		ORDER BY updated_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists: %w", err)
	}
	defer rows.Close()

	var listIDs []string
	for rows.Next() {
		var listID string
		if err := rows.Scan(&listID); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		listIDs = append(listIDs, listID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping lists: %w", err)
	}

	var lists []models.ShoppingList
	for _, listID := range listIDs {
		list, err := GetShoppingListWithItems(db, listID)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *list)
	}

	return lists, nil
}

// getOwnedShoppingList resolves a list checking existence before ownership.
func getOwnedShoppingList(db *sql.DB, userID int, listID string) (*models.ShoppingList, error) {
	list, err := GetShoppingList(db, listID)
	if err != nil {
		return nil, err
	}

	if list.UserID != userID {
		return nil, apperror.Forbidden("you do not own this shopping list")
	}

	return list, nil
}

// AddItemToShoppingList adds an ingredient to a list. If an item for that
// ingredient already exists its quantity is incremented, unlike the
// inventory upsert which overwrites.
func AddItemToShoppingList(db *sql.DB, userID int, listID string, ingredientID int, quantity float64) (*models.ShoppingList, error) {
	if _, err := getOwnedShoppingList(db, userID, listID); err != nil {
		return nil, err
	}

	if quantity <= 0 {
		return nil, apperror.InvalidInput("quantity must be greater than zero")
	}

	if _, err := GetIngredient(db, ingredientID); err != nil {
		return nil, err
	}

	var itemID int
	checkQuery := `SELECT id FROM shopping_list_items WHERE list_id = ? AND ingredient_id = ?`
	err := db.QueryRow(checkQuery, listID, ingredientID).Scan(&itemID)

	if err == sql.ErrNoRows {
		insertQuery := `
			INSERT INTO shopping_list_items (list_id, ingredient_id, quantity, purchased)
			VALUES (?, ?, ?, FALSE)
		`
		if _, err := db.Exec(insertQuery, listID, ingredientID, quantity); err != nil {
			return nil, fmt.Errorf("failed to add item to shopping list: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check existing item: %w", err)
	} else {
		updateQuery := `UPDATE shopping_list_items SET quantity = quantity + ? WHERE id = ?`
		if _, err := db.Exec(updateQuery, quantity, itemID); err != nil {
			return nil, fmt.Errorf("failed to increment item quantity: %w", err)
		}
	}

	if err := touchShoppingList(db, listID); err != nil {
		return nil, err
	}

	return GetShoppingListWithItems(db, listID)
}

// UpdateShoppingListItem applies a partial update to one item. The
// purchased flag is only ever changed here, never by list generation.
func UpdateShoppingListItem(db *sql.DB, userID int, listID string, itemID int, quantity *float64, purchased *bool) error {
	if _, err := getOwnedShoppingList(db, userID, listID); err != nil {
		return err
	}

	var currentQuantity float64
	var currentPurchased bool
	checkQuery := `SELECT quantity, purchased FROM shopping_list_items WHERE id = ? AND list_id = ?`
	err := db.QueryRow(checkQuery, itemID, listID).Scan(&currentQuantity, &currentPurchased)
	if err == sql.ErrNoRows {
		return apperror.NotFound("shopping list item")
	} else if err != nil {
		return fmt.Errorf("failed to check shopping list item: %w", err)
	}

	if quantity != nil {
		if *quantity <= 0 {
			return apperror.InvalidInput("quantity must be greater than zero")
		}
		currentQuantity = *quantity
	}
	if purchased != nil {
		currentPurchased = *purchased
	}

	updateQuery := `UPDATE shopping_list_items SET quantity = ?, purchased = ? WHERE id = ?`
	if _, err := db.Exec(updateQuery, currentQuantity, currentPurchased, itemID); err != nil {
		return fmt.Errorf("failed to update shopping list item: %w", err)
	}

	return touchShoppingList(db, listID)
}

func DeleteShoppingListItem(db *sql.DB, userID int, listID string, itemID int) error {
	if _, err := getOwnedShoppingList(db, userID, listID); err != nil {
		return err
	}

	result, err := db.Exec("DELETE FROM shopping_list_items WHERE id = ? AND list_id = ?", itemID, listID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("shopping list item")
	}

	return touchShoppingList(db, listID)
}

func DeleteShoppingList(db *sql.DB, userID int, listID string) error {
	if _, err := getOwnedShoppingList(db, userID, listID); err != nil {
		return err
	}

	// items go with it via ON DELETE CASCADE
	_, err := db.Exec("DELETE FROM shopping_lists WHERE id = ?", listID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	return nil
}

func touchShoppingList(db *sql.DB, listID string) error {
	_, err := db.Exec("UPDATE shopping_lists SET updated_at = CURRENT_TIMESTAMP WHERE id = ?", listID)
	if err != nil {
		return fmt.Errorf("failed to touch shopping list: %w", err)
	}
	return nil
}

// GenerateShoppingList reconciles a recipe's requirements against an
// inventory's stock and materializes the shortfall as a new list owned by
// the caller.
//
// The recipe only needs to exist; it is a template and the generated list
// belongs to the caller, so no ownership or public check applies to it.
// The inventory must exist and belong to the caller, checked in that
// order. List and items are written in a single transaction: either the
// whole list persists or nothing does.
func GenerateShoppingList(db *sql.DB, userID, recipeID, inventoryID int) (*models.ShoppingList, error) {
	if _, err := GetRecipe(db, recipeID); err != nil {
		return nil, err
	}

	inventory, err := GetInventory(db, inventoryID)
	if err != nil {
		return nil, err
	}
	if inventory.UserID != userID {
		return nil, apperror.Forbidden("you do not own this inventory")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	listID := uuid.New().String()
	if _, err := tx.Exec("INSERT INTO shopping_lists (id, user_id) VALUES (?, ?)", listID, userID); err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	requirements, err := tx.Query(
		"SELECT ingredient_id, quantity FROM recipe_ingredients WHERE recipe_id = ?",
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe ingredients: %w", err)
	}
	defer requirements.Close()

	type shortfall struct {
		ingredientID int
		quantity     float64
	}
	var missing []shortfall

	for requirements.Next() {
		var ingredientID int
		var required float64
		if err := requirements.Scan(&ingredientID, &required); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}

		var available float64
		err := tx.QueryRow(
			"SELECT quantity FROM inventory_ingredients WHERE inventory_id = ? AND ingredient_id = ?",
			inventoryID, ingredientID,
		).Scan(&available)
		if err == sql.ErrNoRows {
			available = 0
		} else if err != nil {
			return nil, fmt.Errorf("failed to query inventory stock: %w", err)
		}

		if available >= required {
			continue
		}

		missing = append(missing, shortfall{
			ingredientID: ingredientID,
			quantity:     required - available,
		})
	}

	if err := requirements.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recipe ingredients: %w", err)
	}

	for _, m := range missing {
		insertQuery := `
			INSERT INTO shopping_list_items (list_id, ingredient_id, quantity, purchased)
			VALUES (?, ?, ?, FALSE)
		`
		if _, err := tx.Exec(insertQuery, listID, m.ingredientID, m.quantity); err != nil {
			return nil, fmt.Errorf("failed to insert shopping list item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit shopping list generation: %w", err)
	}

	logger.Info("Shopping list generated",
		"list_id", listID,
		"recipe_id", recipeID,
		"inventory_id", inventoryID,
		"items", len(missing))

	return GetShoppingListWithItems(db, listID)
}
