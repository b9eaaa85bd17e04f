package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/middleware"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc       service.UserService
	relations service.RelationService
	auth      service.AuthService
}

func NewUserHandler(svc service.UserService, relations service.RelationService, auth service.AuthService) *UserHandler {
	return &UserHandler{svc: svc, relations: relations, auth: auth}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/subscriptions", middleware.AuthMiddleware(h.auth), h.Subscriptions)
	rg.GET("/:user_id", middleware.OptionalAuthMiddleware(h.auth), h.Get)
	rg.POST("/:user_id/subscribe", middleware.AuthMiddleware(h.auth), h.Subscribe)
	rg.DELETE("/:user_id/subscribe", middleware.AuthMiddleware(h.auth), h.Unsubscribe)
}

func (h *UserHandler) Get(c *gin.Context) {
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.svc.Profile(ctx, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	var viewer *dto.ViewerContext
	if viewerID, authed := middleware.UserID(c); authed {
		subscribed, err := h.relations.IsSubscribed(ctx, viewerID, targetID)
		if err != nil {
			respondError(c, err)
			return
		}
		viewer = &dto.ViewerContext{SubscribedIDs: map[int64]bool{targetID: subscribed}}
	}

	c.JSON(http.StatusOK, dto.UserFromModel(*user, viewer))
}

// Subscriptions lists the authors the acting user follows, each with up to
// ?recipes_limit=N of their newest recipes embedded.
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
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

	recipesLimit := 0
	if rl := c.Query("recipes_limit"); rl != "" {
		if parsed, err := strconv.Atoi(rl); err == nil && parsed > 0 {
			recipesLimit = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	subscriptions, total, err := h.svc.Subscriptions(ctx, userID, page, pageSize, recipesLimit)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.SubscriptionResponse, 0, len(subscriptions))
	for _, s := range subscriptions {
		resp = append(resp, dto.SubscriptionFromModel(s.Author, s.Recipes, s.RecipesCount))
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

func (h *UserHandler) Subscribe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	authorID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	author, err := h.relations.Subscribe(ctx, userID, authorID)
	if err != nil {
		respondError(c, err)
		return
	}

	viewer := &dto.ViewerContext{SubscribedIDs: map[int64]bool{author.ID: true}}
	c.JSON(http.StatusCreated, dto.UserFromModel(*author, viewer))
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"errors": "user not authenticated"})
		return
	}

	authorID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.relations.Unsubscribe(ctx, userID, authorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
