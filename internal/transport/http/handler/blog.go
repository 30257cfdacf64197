package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/app"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

type BlogHandler struct {
	blogService *app.BlogService
	logger      *slog.Logger
}

type BlogRequest struct {
	Title   string `json:"title" form:"title" binding:"notblank,min=5,max=60"`
	Content string `json:"content" form:"content" binding:"notblank,min=10"`
	Author  string `json:"author" form:"author" binding:"notblank"`
}

type blogIDQuery struct {
	ID uint `form:"id" binding:"required"`
}

type blogIDURI struct {
	ID uint `uri:"id" binding:"required"`
}

var blogBindingMessages = map[string]string{
	"title.notblank":   "Title cannot be empty",
	"title.min":        "Title must be between 5 and 60 characters",
	"title.max":        "Title must be between 5 and 60 characters",
	"content.notblank": "Content cannot be empty",
	"content.min":      "Content must have at least 10 characters",
	"author.notblank":  "Author name is required",
	"id.required":      "Blog id is required",
}

func NewBlogHandler(blogService *app.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogService: blogService, logger: logger}
}

func (h *BlogHandler) AddBlog(c *gin.Context) {
	var req BlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err, blogBindingMessages)
		return
	}

	blog, err := h.blogService.AddBlog(c.Request.Context(), req.input())
	if err != nil {
		internalError(c, h.logger, "add blog", err)
		return
	}

	h.logger.InfoContext(c.Request.Context(), "blog posted",
		slog.Uint64("blog_id", uint64(blog.ID)),
		slog.String("subject", middleware.Subject(c)),
	)
	response.Message(c, http.StatusOK, "Blog posted")
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	var q blogIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err, blogBindingMessages)
		return
	}

	if err := h.blogService.DeleteBlog(c.Request.Context(), q.ID); err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			response.Message(c, http.StatusNotFound, "Blog not found")
			return
		}
		internalError(c, h.logger, "delete blog", err)
		return
	}

	response.Message(c, http.StatusOK, "Deleted successfully")
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var q blogIDQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err, blogBindingMessages)
		return
	}
	var req BlogRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err, blogBindingMessages)
		return
	}

	if _, err := h.blogService.UpdateBlog(c.Request.Context(), q.ID, req.input()); err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			response.Message(c, http.StatusNotFound, "Blog not found")
			return
		}
		internalError(c, h.logger, "update blog", err)
		return
	}

	response.Message(c, http.StatusOK, "Updated successfully")
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	var uri blogIDURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err, blogBindingMessages)
		return
	}

	blog, err := h.blogService.GetBlog(c.Request.Context(), uri.ID)
	if err != nil {
		if errors.Is(err, app.ErrBlogNotFound) {
			response.Message(c, http.StatusNotFound, "Blog not found")
			return
		}
		internalError(c, h.logger, "get blog", err)
		return
	}

	response.Data(c, http.StatusOK, blog)
}

func (h *BlogHandler) ListBlogs(c *gin.Context) {
	blogs, err := h.blogService.ListBlogs(c.Request.Context())
	if err != nil {
		internalError(c, h.logger, "list blogs", err)
		return
	}
	response.Data(c, http.StatusOK, blogs)
}

func (r BlogRequest) input() app.BlogInput {
	return app.BlogInput{Title: r.Title, Content: r.Content, Author: r.Author}
}
