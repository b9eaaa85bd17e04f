package handler

import (
	"context"
	"net/http"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type IngredientHandler struct {
	svc service.IngredientService
}

func NewIngredientHandler(svc service.IngredientService) *IngredientHandler {
	return &IngredientHandler{svc: svc}
}

func (h *IngredientHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:ingredient_id", h.Get)
}

// List: unpaginated reference data, optionally narrowed by ?name=<prefix>
func (h *IngredientHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.Search(ctx, c.Query("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.IngredientResponse, 0, len(list))
	for _, i := range list {
		resp = append(resp, dto.IngredientFromModel(i))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IngredientHandler) Get(c *gin.Context) {
	ingredientID, ok := parseIDParam(c, "ingredient_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	ingredient, err := h.svc.GetByID(ctx, ingredientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.IngredientFromModel(*ingredient))
}
