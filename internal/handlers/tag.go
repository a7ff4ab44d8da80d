package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gaaferHajji2/go-blog-api/internal/services"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

type TagHandler struct {
	tagService services.TagService
}

func NewTagHandler(tagService services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

type createTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (th *TagHandler) Create(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}

	tag, err := th.tagService.Create(c.Request.Context(), services.TagInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, gin.H{"tag": tag})
}

func (th *TagHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tag, err := th.tagService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"tag": tag})
}

func (th *TagHandler) List(c *gin.Context) {
	page, pageSize, ok := parsePage(c)
	if !ok {
		return
	}
	result, err := th.tagService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}

type updateTagRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (th *TagHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}

	tag, err := th.tagService.Update(c.Request.Context(), id, types.TagPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"tag": tag})
}

func (th *TagHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := th.tagService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
