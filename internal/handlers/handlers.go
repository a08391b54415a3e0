package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"pantrybook/internal/apperror"
	"pantrybook/internal/auth"
	"pantrybook/internal/config"
	"pantrybook/internal/email"
	"pantrybook/internal/logger"
	"pantrybook/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, db *sql.DB, tokens *auth.TokenService, emailService *email.Service, cfg *config.Config) {
	r.Use(middleware.LogRequests())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Pantrybook recipe API"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", middleware.AuthRateLimit(cfg), handleRegister(db, tokens))
		authGroup.POST("/login", middleware.AuthRateLimit(cfg), handleLogin(db, tokens))
		authGroup.GET("/profile", middleware.RequireAuth(tokens), handleProfile(db))
	}

	ingredients := api.Group("/ingredients")
	{
		ingredients.GET("", handleListIngredients(db))
		ingredients.GET("/:id", handleGetIngredient(db))
		ingredients.POST("", middleware.RequireAuth(tokens), handleCreateIngredient(db))
		ingredients.PUT("/:id", middleware.RequireAuth(tokens), handleUpdateIngredient(db))
		ingredients.DELETE("/:id", middleware.RequireAuth(tokens), handleDeleteIngredient(db))
	}

	recipes := api.Group("/recipes")
	{
		recipes.GET("/public", handleListPublicRecipes(db))

		protected := recipes.Group("", middleware.RequireAuth(tokens))
		protected.GET("", handleListRecipes(db))
		protected.GET("/:id", handleGetRecipe(db))
		protected.POST("", handleCreateRecipe(db))
		protected.PUT("/:id", handleUpdateRecipe(db))
		protected.DELETE("/:id", handleDeleteRecipe(db))
	}

	inventories := api.Group("/inventories", middleware.RequireAuth(tokens))
	{
		inventories.GET("", handleListInventories(db))
		inventories.GET("/:id", handleGetInventory(db))
		inventories.POST("", handleCreateInventory(db))
		inventories.PUT("/:id", handleUpdateInventory(db))
		inventories.PUT("/:id/ingredients/:ingredient_id", handleSetInventoryQuantity(db))
		inventories.DELETE("/:id", handleDeleteInventory(db))
	}

	shopping := api.Group("/shopping", middleware.RequireAuth(tokens))
	{
		shopping.GET("/lists", handleListShoppingLists(db))
		shopping.GET("/lists/:id", handleGetShoppingList(db))
		shopping.POST("/lists", handleCreateShoppingList(db))
		shopping.DELETE("/lists/:id", handleDeleteShoppingList(db))
		shopping.POST("/lists/:id/items", handleAddShoppingListItem(db))
		shopping.PUT("/lists/:id/items/:item_id", handleUpdateShoppingListItem(db))
		shopping.DELETE("/lists/:id/items/:item_id", handleDeleteShoppingListItem(db))
		shopping.POST("/lists/:id/email", handleEmailShoppingList(db, emailService))
		shopping.POST("/generate/:recipe_id/:inventory_id", handleGenerateShoppingList(db))
	}
}

// respondError maps store-layer errors onto stable status classes.
// Internal failure detail is logged, never returned to the caller.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(statusForError(appErr), gin.H{"message": appErr.Message})
		return
	}

	logger.Error("Internal error",
		"path", c.FullPath(),
		"error", err.Error())
	c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal error occurred"})
}

func statusForError(err *apperror.AppError) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
