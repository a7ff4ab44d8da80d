package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gaaferHajji2/go-blog-api/internal/services"
	"github.com/gaaferHajji2/go-blog-api/internal/types"
)

type PostHandler struct {
	postService services.PostService
}

func NewPostHandler(postService services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

type createPostRequest struct {
	AccountID uuid.UUID `json:"account_id" binding:"required"`
	Title     string    `json:"title" binding:"required"`
	Body      string    `json:"body" binding:"required"`
	Published bool      `json:"published"`
}

func (ph *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}

	post, err := ph.postService.Create(c.Request.Context(), services.PostInput{
		AccountID: req.AccountID,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondCreated(c, gin.H{"post": post})
}

func (ph *PostHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	post, err := ph.postService.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": post})
}

type updatePostRequest struct {
	Title     *string `json:"title"`
	Body      *string `json:"body"`
	Published *bool   `json:"published"`
}

func (ph *PostHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}

	post, err := ph.postService.Update(c.Request.Context(), id, types.PostPatch{
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": post})
}

func (ph *PostHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := ph.postService.Delete(c.Request.Context(), id); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

type assignTagsRequest struct {
	TagIDs []uuid.UUID `json:"tag_ids"`
}

func (ph *PostHandler) AssignTags(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req assignTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{Message: err.Error(), Code: "validation"}})
		return
	}

	post, err := ph.postService.AssignTags(c.Request.Context(), id, req.TagIDs)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"post": post})
}

func (ph *PostHandler) Published(c *gin.Context) {
	page, pageSize, ok := parsePage(c)
	if !ok {
		return
	}
	result, err := ph.postService.Published(c.Request.Context(), page, pageSize)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}
