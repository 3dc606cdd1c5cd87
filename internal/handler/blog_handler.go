package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"goblog/internal/middleware"
	"goblog/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BlogHandler struct {
	rd       *Renderer
	posts    *service.PostService
	comments *service.CommentService
}

func NewBlogHandler(rd *Renderer, posts *service.PostService, comments *service.CommentService) *BlogHandler {
	return &BlogHandler{rd: rd, posts: posts, comments: comments}
}

// Index renders the listing of all posts, each with its author.
func (h *BlogHandler) Index(c *gin.Context) {
	posts, err := h.posts.ListAll()
	if err != nil {
		h.rd.ServerError(c, err)
		return
	}
	h.rd.HTML(c, http.StatusOK, "index.html", gin.H{"Posts": posts})
}

// Show renders a post with its comments; a POST carrying a comment
// form appends a comment when the caller is authenticated, otherwise
// flashes and redirects to the login page.
func (h *BlogHandler) Show(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodPost {
		var form CommentForm
		if err := c.ShouldBind(&form); err == nil {
			user := middleware.CurrentUser(c)
			if user == nil {
				h.rd.Flash(c, "You need to login or register to comment")
				c.Redirect(http.StatusSeeOther, "/login")
				return
			}
			if _, err := h.comments.AddToPost(user.ID, id, form.Text); err != nil {
				h.rd.ServerError(c, err)
				return
			}
			c.Redirect(http.StatusSeeOther, fmt.Sprintf("/post/%d", id))
			return
		}
	}

	post, err := h.posts.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.rd.ErrorPage(c, http.StatusNotFound, "The requested post was not found.")
			return
		}
		h.rd.ServerError(c, err)
		return
	}
	comments, err := h.comments.ListForPost(id)
	if err != nil {
		h.rd.ServerError(c, err)
		return
	}
	h.rd.HTML(c, http.StatusOK, "post.html", gin.H{"Post": post, "Comments": comments})
}

func (h *BlogHandler) ShowNew(c *gin.Context) {
	h.rd.HTML(c, http.StatusOK, "make_post.html", nil)
}

func (h *BlogHandler) Create(c *gin.Context) {
	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.rd.HTML(c, http.StatusOK, "make_post.html", gin.H{"FormError": "All fields are required and the image URL must be valid."})
		return
	}

	user := middleware.CurrentUser(c)
	_, err := h.posts.Create(c.Request.Context(), user.ID, form.Title, form.Subtitle, form.Body, form.ImgURL)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			h.rd.HTML(c, http.StatusOK, "make_post.html", gin.H{"FormError": "A post with that title already exists."})
			return
		}
		h.rd.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *BlogHandler) ShowEdit(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	post, err := h.posts.Get(id)
	if err != nil {
		h.rd.ErrorPage(c, http.StatusNotFound, "The requested post was not found.")
		return
	}
	h.rd.HTML(c, http.StatusOK, "make_post.html", gin.H{"Post": post, "Editing": true})
}

func (h *BlogHandler) Edit(c *gin.Context) {
	id, ok := h.postID(c)
	if !ok {
		return
	}
	post, err := h.posts.Get(id)
	if err != nil {
		h.rd.ErrorPage(c, http.StatusNotFound, "The requested post was not found.")
		return
	}

	var form PostForm
	if err := c.ShouldBind(&form); err != nil {
		h.rd.HTML(c, http.StatusOK, "make_post.html", gin.H{"Post": post, "Editing": true,
			"FormError": "All fields are required and the image URL must be valid."})
		return
	}

	if err := h.posts.Update(id, form.Title, form.Subtitle, form.Body, form.ImgURL); err != nil {
		h.rd.ServerError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a post and its comments. A missing id or a vanished
// row falls through to the listing unchanged; no not-found error is
// surfaced here.
func (h *BlogHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.Index(c)
		return
	}

	found, derr := h.posts.Delete(c.Request.Context(), uint(id))
	if derr != nil {
		h.rd.ServerError(c, derr)
		return
	}
	if !found {
		h.Index(c)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *BlogHandler) postID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.rd.ErrorPage(c, http.StatusNotFound, "The requested post was not found.")
		return 0, false
	}
	return uint(id), true
}
