package router

import (
	"fmt"
	"html/template"
	"net/http"

	"goblog/internal/handler"
	"goblog/internal/middleware"
	"goblog/internal/service"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	Users    *service.UserService
	Posts    *service.PostService
	Comments *service.CommentService
	Contact  *service.ContactService
	Flashes  service.FlashStore

	TemplateGlob string
}

// New wires the route table. Admin gating happens here at
// registration time, not inside the handlers.
func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	rd := handler.NewRenderer(deps.Flashes)

	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		rd.ErrorPage(c, http.StatusInternalServerError, fmt.Sprint(recovered))
	}))

	r.SetFuncMap(template.FuncMap{
		// Post and comment bodies are rich text authored through the
		// editor; render them as-is.
		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	})
	r.LoadHTMLGlob(deps.TemplateGlob)

	r.Use(middleware.CurrentSession(deps.Users))

	auth := handler.NewAuthHandler(rd, deps.Users)
	blog := handler.NewBlogHandler(rd, deps.Posts, deps.Comments)
	contact := handler.NewContactHandler(rd, deps.Contact)
	pages := handler.NewPageHandler(rd)

	r.GET("/", blog.Index)
	r.GET("/post/:id", blog.Show)
	r.POST("/post/:id", blog.Show)

	r.GET("/register", auth.ShowRegister)
	r.POST("/register", auth.Register)
	r.GET("/login", auth.ShowLogin)
	r.POST("/login", auth.Login)
	r.GET("/logout", auth.Logout)

	r.GET("/about", pages.About)
	r.GET("/403", pages.Forbidden)
	r.GET("/contact", contact.Show)
	r.POST("/contact", contact.Send)

	admin := r.Group("/", middleware.RequireAdmin())
	{
		admin.GET("/new_post", blog.ShowNew)
		admin.POST("/new_post", blog.Create)
		admin.GET("/edit-post/:id", blog.ShowEdit)
		admin.POST("/edit-post/:id", blog.Edit)
		admin.GET("/delete/:id", blog.Delete)
		admin.POST("/delete/:id", blog.Delete)
	}

	r.NoRoute(func(c *gin.Context) {
		rd.ErrorPage(c, http.StatusNotFound, "The requested URL was not found on the server.")
	})
	r.NoMethod(func(c *gin.Context) {
		rd.ErrorPage(c, http.StatusMethodNotAllowed, "The method is not allowed for the requested URL.")
	})

	return r
}
