package handler

import (
	"errors"
	"net/http"

	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the API error contract: domain
// violations are 400, authorization failures 403, missing resources 404,
// everything unexpected a bare 500. The body shape is {"errors": "..."}.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateRelation),
		errors.Is(err, service.ErrRelationNotFound),
		errors.Is(err, service.ErrSelfSubscription),
		errors.Is(err, service.ErrInvalidTag),
		errors.Is(err, service.ErrInvalidIngredient),
		errors.Is(err, service.ErrDuplicateIngredient):
		c.JSON(http.StatusBadRequest, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrNotRecipeAuthor):
		c.JSON(http.StatusForbidden, gin.H{"errors": err.Error()})
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrTagNotFound),
		errors.Is(err, service.ErrIngredientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"errors": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"errors": "internal server error"})
	}
}
