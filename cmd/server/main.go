package main

import (
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"askbox/internal/db"
	"askbox/internal/middleware"
	"askbox/internal/router"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("askbox_session", store))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser())

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Askbox server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files: layout and includes first, then the view
	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	// FuncMap
	funcMap := template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t time.Time) string {
			duration := time.Since(t)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%d seconds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%d minutes ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%d hours ago", seconds/3600)
			} else if seconds < 2592000 {
				return fmt.Sprintf("%d days ago", seconds/86400)
			} else if seconds < 31536000 {
				return fmt.Sprintf("%d months ago", seconds/2592000)
			}
			return fmt.Sprintf("%d years ago", seconds/31536000)
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	views := []string{
		"index.html",
		"error.html",
		"confirm_delete.html",
		"question/list.html",
		"question/tagged.html",
		"question/detail.html",
		"question/ask.html",
		"question/edit.html",
		"answer/edit.html",
		"tag/list.html",
		"auth/login.html",
		"auth/signup.html",
		"user/profile.html",
		"user/settings.html",
	}
	for _, view := range views {
		r.AddFromFilesFuncs(view, funcMap, assemble(templatesDir+"/views/"+view)...)
	}

	return r
}
