package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"pantrybook/internal/database"

	"github.com/gin-gonic/gin"
)

type createRecipeRequest struct {
	Name            *string                       `json:"name"`
	Description     *string                       `json:"description"`
	PrepTimeMinutes *int                          `json:"prep_time_minutes"`
	CookTimeMinutes *int                          `json:"cook_time_minutes"`
	IsPublic        bool                          `json:"is_public"`
	Ingredients     []database.IngredientQuantity `json:"ingredients"`
}

type updateRecipeRequest struct {
	Name            *string                       `json:"name"`
	Description     *string                       `json:"description"`
	PrepTimeMinutes *int                          `json:"prep_time_minutes"`
	CookTimeMinutes *int                          `json:"cook_time_minutes"`
	IsPublic        *bool                         `json:"is_public"`
	Ingredients     []database.IngredientQuantity `json:"ingredients"`
}

func handleListRecipes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		recipes, err := database.GetRecipes(db, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"recipes": recipes})
	}
}

func handleListPublicRecipes(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipes, err := database.GetPublicRecipes(db)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"recipes": recipes})
	}
}

func handleGetRecipe(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		recipeID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe id"})
			return
		}

		recipe, err := database.GetRecipeWithIngredients(db, recipeID)
		if err != nil {
			respondError(c, err)
			return
		}

		if !recipe.IsPublic && recipe.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"message": "You do not have access to this recipe"})
			return
		}

		c.JSON(http.StatusOK, recipe)
	}
}

func handleCreateRecipe(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		var req createRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		if req.Name == nil || req.Description == nil || req.PrepTimeMinutes == nil || req.CookTimeMinutes == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, description, prep time and cook time are required"})
			return
		}

		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, description, prep time and cook time are required"})
			return
		}

		recipe, err := database.CreateRecipe(db, userID, name, *req.Description,
			*req.PrepTimeMinutes, *req.CookTimeMinutes, req.IsPublic, req.Ingredients)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Recipe created",
			"recipe":  recipe,
		})
	}
}

func handleUpdateRecipe(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		recipeID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe id"})
			return
		}

		var req updateRecipeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
			return
		}

		recipe, err := database.UpdateRecipe(db, userID, recipeID, database.RecipeUpdate{
			Name:            req.Name,
			Description:     req.Description,
			PrepTimeMinutes: req.PrepTimeMinutes,
			CookTimeMinutes: req.CookTimeMinutes,
			IsPublic:        req.IsPublic,
			Ingredients:     req.Ingredients,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Recipe updated",
			"recipe":  recipe,
		})
	}
}

func handleDeleteRecipe(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.MustGet("user_id").(int)

		recipeID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid recipe id"})
			return
		}

		if err := database.DeleteRecipe(db, userID, recipeID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted"})
	}
}
