package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"pantrybook/internal/database"

	"github.com/gin-gonic/gin"
)

type createIngredientRequest struct {
	Name      *string  `json:"name"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
}

type updateIngredientRequest struct {
	Name      *string  `json:"name"`
	Unit      *string  `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
}

func handleListIngredients(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ingredients, err := database.GetIngredients(db)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
	}
}

func handleGetIngredient(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ingredientID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ingredient id"})
			return
		}

		ingredient, err := database.GetIngredient(db, ingredientID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, ingredient)
	}
}

func handleCreateIngredient(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createIngredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if req.Name == nil || req.Unit == nil || req.UnitPrice == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, unit and unit price are required"})
			return
		}

		name := strings.TrimSpace(*req.Name)
		unit := strings.TrimSpace(*req.Unit)
		if name == "" || unit == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, unit and unit price are required"})
			return
		}

		ingredient, err := database.CreateIngredient(db, name, unit, *req.UnitPrice)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, ingredient)
	}
}

func handleUpdateIngredient(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ingredientID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ingredient id"})
			return
		}

		var req updateIngredientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		ingredient, err := database.UpdateIngredient(db, ingredientID, req.Name, req.Unit, req.UnitPrice)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, ingredient)
	}
}

func handleDeleteIngredient(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ingredientID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid ingredient id"})
			return
		}

		if err := database.DeleteIngredient(db, ingredientID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
	}
}
