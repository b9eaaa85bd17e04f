package handler

import (
	"context"
	"net/http"
	"time"

	"foodgram/internal/http-api/dto"
	"foodgram/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	svc service.TagService
}

func NewTagHandler(svc service.TagService) *TagHandler {
	return &TagHandler{svc: svc}
}

func (h *TagHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.List)
	rg.GET("/:tag_id", h.Get)
}

// List: the whole tag set, unpaginated reference data
func (h *TagHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	list, err := h.svc.GetAll(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		resp = append(resp, dto.TagFromModel(t))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TagHandler) Get(c *gin.Context) {
	tagID, ok := parseIDParam(c, "tag_id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tag, err := h.svc.GetByID(ctx, tagID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TagFromModel(*tag))
}
