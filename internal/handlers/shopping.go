package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"pantrybook/internal/database"
	"pantrybook/internal/email"
	"pantrybook/internal/logger"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	IngredientID *int     `json:"ingredient_id"`
	Quantity     *float64 `json:"quantity"`
}

type updateItemRequest struct {
	Quantity  *float64 `json:"quantity"`
	Purchased *bool    `json:"purchased"`
}

func handleListShoppingLists(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		lists, err := database.GetShoppingLists(db, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"shopping_lists": lists})
	}
}

func handleGetShoppingList(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)
		listID := c.Param("id")

		list, err := database.GetShoppingListWithItems(db, listID)
		if err != nil {
			respondError(c, err)
			return
		}

		if list.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have access to this shopping list"})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

func handleCreateShoppingList(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		list, err := database.CreateShoppingList(db, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":       "Shopping list created",
			"shopping_list": list,
		})
	}
}

func handleDeleteShoppingList(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)
		listID := c.Param("id")

		if err := database.DeleteShoppingList(db, userID, listID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Shopping list deleted"})
	}
}

func handleAddShoppingListItem(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)
		listID := c.Param("id")

		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if req.IngredientID == nil || req.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Ingredient id and quantity are required"})
			return
		}

		list, err := database.AddItemToShoppingList(db, userID, listID, *req.IngredientID, *req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Item added",
			"shopping_list": list,
		})
	}
}

func handleUpdateShoppingListItem(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)
		listID := c.Param("id")

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item id"})
			return
		}

		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if err := database.UpdateShoppingListItem(db, userID, listID, itemID, req.Quantity, req.Purchased); err != nil {
			respondError(c, err)
			return
		}

		list, err := database.GetShoppingListWithItems(db, listID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Item updated",
			"shopping_list": list,
		})
	}
}

func handleDeleteShoppingListItem(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)
		listID := c.Param("id")

		itemID, err := strconv.Atoi(c.Param("item_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item id"})
			return
		}

		if err := database.DeleteShoppingListItem(db, userID, listID, itemID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
	}
}

func handleGenerateShoppingList(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		recipeID, err := strconv.Atoi(c.Param("recipe_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe id"})
			return
		}

		inventoryID, err := strconv.Atoi(c.Param("inventory_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid inventory id"})
			return
		}

		list, err := database.GenerateShoppingList(db, userID, recipeID, inventoryID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":       "Shopping list generated",
			"shopping_list": list,
		})
	}
}

func handleEmailShoppingList(db *sql.DB, emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)
		listID := c.Param("id")

		if !emailService.IsEnabled() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Email service is not configured"})
			return
		}

		list, err := database.GetShoppingListWithItems(db, listID)
		if err != nil {
			respondError(c, err)
			return
		}

		if list.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have access to this shopping list"})
			return
		}

		user, err := database.GetUserByID(db, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		if err := emailService.SendShoppingListEmail(user, list); err != nil {
			logger.Error("Failed to send shopping list email",
				"list_id", listID,
				"error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send email"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Shopping list sent"})
	}
}
