package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/middleware"
	"foodgram/internal/http-api/models"
	"foodgram/internal/http-api/repository"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RecipeHandler struct {
	svc          service.RecipeService
	relations    service.RelationService
	shoppingList service.ShoppingListService
	auth         service.AuthService
}

func NewRecipeHandler(
	svc service.RecipeService,
	relations service.RelationService,
	shoppingList service.ShoppingListService,
	auth service.AuthService,
) *RecipeHandler {
	return &RecipeHandler{
		svc:          svc,
		relations:    relations,
		shoppingList: shoppingList,
		auth:         auth,
	}
}

func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes (anonymous viewers see every recipe, flags render false)
	rg.GET("/", middleware.OptionalAuthMiddleware(h.auth), h.List)
	rg.GET("/:recipe_id", middleware.OptionalAuthMiddleware(h.auth), h.Get)

	// Authenticated routes
	rg.GET("/download_shopping_cart", middleware.AuthMiddleware(h.auth), h.DownloadShoppingCart)
	rg.POST("/", middleware.AuthMiddleware(h.auth), h.Create)
	rg.PATCH("/:recipe_id", middleware.AuthMiddleware(h.auth), h.Update)
	rg.DELETE("/:recipe_id", middleware.AuthMiddleware(h.auth), h.Delete)
	rg.POST("/:recipe_id/favorite", middleware.AuthMiddleware(h.auth), h.AddFavorite)
	rg.DELETE("/:recipe_id/favorite", middleware.AuthMiddleware(h.auth), h.RemoveFavorite)
	rg.POST("/:recipe_id/shopping_cart", middleware.AuthMiddleware(h.auth), h.AddToShoppingCart)
	rg.DELETE("/:recipe_id/shopping_cart", middleware.AuthMiddleware(h.auth), h.RemoveFromShoppingCart)
}

// viewerContext loads the acting user's relation sets for response
// decoration; anonymous viewers get nil.
func (h *RecipeHandler) viewerContext(ctx context.Context, c *gin.Context) (*dto.ViewerContext, error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return nil, nil
	}

	favorites, err := h.relations.FavoriteRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart, err := h.relations.CartRecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	subscriptions, err := h.relations.SubscribedAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ViewerContext{
		FavoriteIDs:   idSet(favorites),
		CartIDs:       idSet(cart),
		SubscribedIDs: idSet(subscriptions),
	}, nil
}

func idSet(ids []int64) map[int64]bool {
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (h *RecipeHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var filter repository.RecipeFilter

	if a := strings.TrimSpace(c.Query("author")); a != "" {
		authorID, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid author id"})
			return
		}
		filter.AuthorID = &authorID
	}

	// ?tags=breakfast&tags=dinner (repeatable), matched by slug
	for _, slug := range c.QueryArray("tags") {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			filter.TagSlugs = append(filter.TagSlugs, trimmed)
		}
	}

	// the viewer-relative filters only apply to authenticated requests
	if userID, ok := middleware.UserID(c); ok {
		if v, err := strconv.ParseBool(c.DefaultQuery("is_favorited", "false")); err == nil && v {
			filter.FavoritedBy = &userID
		}
		if v, err := strconv.ParseBool(c.DefaultQuery("is_in_shopping_cart", "false")); err == nil && v {
			filter.InCartOf = &userID
		}
	}

	page := 1
	pageSize := 20
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if parsed, err := strconv.Atoi(ps); err == nil && parsed > 0 && parsed <= 100 {
			pageSize = parsed
		}
	}

	list, total, err := h.svc.List(ctx, filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.viewerContext(ctx, c)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		resp = append(resp, dto.RecipeFromModel(r, viewer))
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, ok := parseIDParam(c, "recipe_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.svc.Get(ctx, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.viewerContext(ctx, c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecipeFromModel(*recipe, viewer))
}

func (h *RecipeHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	var in dto.WriteRecipeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.svc.Create(ctx, userID, in.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.viewerContext(ctx, c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RecipeFromModel(*recipe, viewer))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	recipeID, ok := parseIDParam(c, "recipe_id")
	if !ok {
		return
	}

	var in dto.WriteRecipeDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := h.svc.Update(ctx, userID, recipeID, in.ToInput())
	if err != nil {
		respondError(c, err)
		return
	}

	viewer, err := h.viewerContext(ctx, c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RecipeFromModel(*recipe, viewer))
}

func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	recipeID, ok := parseIDParam(c, "recipe_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, userID, recipeID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c *gin.Context) {
	h.addRelation(c, h.relations.AddFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFavorite)
}

func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	h.addRelation(c, h.relations.AddToShoppingCart)
}

func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	h.removeRelation(c, h.relations.RemoveFromShoppingCart)
}

// addRelation runs one toggle add and answers 201 with the compact recipe.
func (h *RecipeHandler) addRelation(c *gin.Context, add func(context.Context, int64, int64) (*models.Recipe, error)) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	recipeID, ok := parseIDParam(c, "recipe_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recipe, err := add(ctx, userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ShortRecipeFromModel(*recipe))
}

func (h *RecipeHandler) removeRelation(c *gin.Context, remove func(context.Context, int64, int64) error) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	recipeID, ok := parseIDParam(c, "recipe_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := remove(ctx, userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	document, err := h.shoppingList.Download(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_cart.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": "invalid " + name})
		return 0, false
	}
	return id, true
}
