package api

import (
	"alcyxob/coach-platform/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the community feed.
type FeedHandler struct {
	feedService service.FeedService
}

func NewFeedHandler(feedService service.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

type CreatePostRequest struct {
	Content  string `json:"content" binding:"required"`
	ImageKey string `json:"imageKey"`
}

type UploadURLRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type ListPostsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1"`
}

// ListPosts godoc
// @Summary Recent posts, newest first
// @Tags Feed
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max posts (default 20)"
// @Success 200 {array} service.PostView
// @Router /feed [get]
func (h *FeedHandler) ListPosts(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var q ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	posts, err := h.feedService.ListPosts(c.Request.Context(), userID, q.Limit)
	if err != nil {
		respondWithServiceError(c, err, "list posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// CreatePost godoc
// @Summary Publish a post
// @Description imageKey must come from a previous upload-url call.
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePostRequest true "Post"
// @Success 201 {object} service.PostView
// @Router /feed [post]
func (h *FeedHandler) CreatePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	post, err := h.feedService.CreatePost(c.Request.Context(), userID, req.Content, req.ImageKey)
	if err != nil {
		respondWithServiceError(c, err, "create post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *FeedHandler) ToggleLike(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	post, err := h.feedService.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		respondWithServiceError(c, err, "toggle like")
		return
	}
	c.JSON(http.StatusOK, post)
}

// RequestUploadURL godoc
// @Summary Get a presigned URL for a post image
// @Tags Feed
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UploadURLRequest true "Image content type"
// @Success 200 {object} service.UploadURLResponse
// @Failure 503 {object} gin.H "Object storage not configured"
// @Router /feed/upload-url [post]
func (h *FeedHandler) RequestUploadURL(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	var req UploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	resp, err := h.feedService.RequestImageUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondWithServiceError(c, err, "create upload URL")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeletePost godoc
// @Summary Delete own post
// @Tags Feed
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 204
// @Failure 403 {object} gin.H "Not the author"
// @Router /feed/{id} [delete]
func (h *FeedHandler) DeletePost(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	if err := h.feedService.DeletePost(c.Request.Context(), userID, postID); err != nil {
		respondWithServiceError(c, err, "delete post")
		return
	}
	c.Status(http.StatusNoContent)
}
