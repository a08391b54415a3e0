package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"pantrybook/internal/database"

	"github.com/gin-gonic/gin"
)

type createInventoryRequest struct {
	Name        *string                       `json:"name"`
	Ingredients []database.IngredientQuantity `json:"ingredients"`
}

type updateInventoryRequest struct {
	Name        *string                       `json:"name"`
	Ingredients []database.IngredientQuantity `json:"ingredients"`
}

type setQuantityRequest struct {
	Quantity *float64 `json:"quantity"`
}

func handleListInventories(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		inventories, err := database.GetInventories(db, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"inventories": inventories})
	}
}

func handleGetInventory(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		inventoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inventory id"})
			return
		}

		inventory, err := database.GetInventoryWithIngredients(db, inventoryID)
		if err != nil {
			respondError(c, err)
			return
		}

		if inventory.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have access to this inventory"})
			return
		}

		c.JSON(http.StatusOK, inventory)
	}
}

func handleCreateInventory(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		var req createInventoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name is required"})
			return
		}

		inventory, err := database.CreateInventory(db, userID, strings.TrimSpace(*req.Name), req.Ingredients)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":   "Inventory created",
			"inventory": inventory,
		})
	}
}

func handleUpdateInventory(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		inventoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inventory id"})
			return
		}

		var req updateInventoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		inventory, err := database.UpdateInventory(db, userID, inventoryID, req.Name, req.Ingredients)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":   "Inventory updated",
			"inventory": inventory,
		})
	}
}

func handleSetInventoryQuantity(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		inventoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inventory id"})
			return
		}

		ingredientID, err := strconv.Atoi(c.Param("ingredient_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ingredient id"})
			return
		}

		var req setQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Quantity is required"})
			return
		}

		stock, err := database.SetInventoryIngredientQuantity(db, userID, inventoryID, ingredientID, *req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Inventory quantity set",
			"stock":   stock,
		})
	}
}

func handleDeleteInventory(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		inventoryID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inventory id"})
			return
		}

		if err := database.DeleteInventory(db, userID, inventoryID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Inventory deleted"})
	}
}
