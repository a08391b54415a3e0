package models

import (
	"time"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

type Ingredient struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Unit      string    `json:"unit" db:"unit"`
	UnitPrice float64   `json:"unit_price" db:"unit_price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Recipe struct {
	ID              int                `json:"id" db:"id"`
	UserID          int                `json:"user_id" db:"user_id"`
	Name            string             `json:"name" db:"name"`
	Description     string             `json:"description" db:"description"`
	PrepTimeMinutes int                `json:"prep_time_minutes" db:"prep_time_minutes"`
	CookTimeMinutes int                `json:"cook_time_minutes" db:"cook_time_minutes"`
	IsPublic        bool               `json:"is_public" db:"is_public"`
	CreatedAt       time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" db:"updated_at"`
	Ingredients     []RecipeIngredient `json:"ingredients,omitempty"`
}

// RecipeIngredient is a recipe line joined with its ingredient.
// Quantity is expressed in the ingredient's unit.
type RecipeIngredient struct {
	ID       int     `json:"id" db:"ingredient_id"`
	Name     string  `json:"name" db:"name"`
	Quantity float64 `json:"quantity" db:"quantity"`
	Unit     string  `json:"unit" db:"unit"`
}

type Inventory struct {
	ID          int                   `json:"id" db:"id"`
	UserID      int                   `json:"user_id" db:"user_id"`
	Name        string                `json:"name" db:"name"`
	CreatedAt   time.Time             `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at" db:"updated_at"`
	Ingredients []InventoryIngredient `json:"ingredients,omitempty"`
}

type InventoryIngredient struct {
	ID        int     `json:"id" db:"ingredient_id"`
	Name      string  `json:"name" db:"name"`
	Quantity  float64 `json:"quantity" db:"quantity"`
	Unit      string  `json:"unit" db:"unit"`
	UnitPrice float64 `json:"unit_price" db:"unit_price"`
}

// InventoryStock is the raw inventory link row, returned by the
// single-ingredient quantity upsert.
type InventoryStock struct {
	ID           int     `json:"id" db:"id"`
	InventoryID  int     `json:"inventory_id" db:"inventory_id"`
	IngredientID int     `json:"ingredient_id" db:"ingredient_id"`
	Quantity     float64 `json:"quantity" db:"quantity"`
}

type ShoppingList struct {
	ID            string             `json:"id" db:"id"`
	UserID        int                `json:"user_id" db:"user_id"`
	CreatedAt     time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" db:"updated_at"`
	Items         []ShoppingListItem `json:"items"`
	TotalItems    int                `json:"total_items"`
	TotalQuantity float64            `json:"total_quantity"`
	TotalPrice    float64            `json:"total_price"`
}

type ShoppingListItem struct {
	ID             int       `json:"id" db:"id"`
	ListID         string    `json:"list_id" db:"list_id"`
	IngredientID   int       `json:"ingredient_id" db:"ingredient_id"`
	IngredientName string    `json:"ingredient_name" db:"ingredient_name"`
	Quantity       float64   `json:"quantity" db:"quantity"`
	Unit           string    `json:"unit" db:"unit"`
	Purchased      bool      `json:"purchased" db:"purchased"`
	EstimatedPrice float64   `json:"estimated_price" db:"estimated_price"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
