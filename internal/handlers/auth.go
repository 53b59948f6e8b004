package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"askbox/internal/db"
	"askbox/internal/models"
	"askbox/internal/utils"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

func (h *AuthHandler) ShowSignup(c *gin.Context) {
	Render(c, http.StatusOK, "auth/signup.html", gin.H{"Title": "Sign Up"})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password1")
	confirm := c.PostForm("password2")

	renderWithError := func(msg string) {
		Render(c, http.StatusBadRequest, "auth/signup.html", gin.H{
			"Title":    "Sign Up",
			"Error":    msg,
			"Username": username,
		})
	}

	if username == "" {
		renderWithError("Username is required")
		return
	}
	if password != confirm {
		renderWithError("The two password fields didn't match")
		return
	}
	if errs := utils.ValidatePassword(password); len(errs) > 0 {
		renderWithError(strings.Join(errs, " "))
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not create your account")
		return
	}

	user := models.User{Username: username, Password: hash}
	if err := db.DB.Create(&user).Error; err != nil {
		renderWithError("That username is already taken")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	Render(c, http.StatusOK, "auth/login.html", gin.H{"Title": "Log In"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	renderWithError := func(msg string) {
		Render(c, http.StatusUnauthorized, "auth/login.html", gin.H{
			"Title":    "Log In",
			"Error":    msg,
			"Username": username,
		})
	}

	var user models.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		renderWithError("The username you entered isn't connected to an account.")
		return
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		renderWithError("The password you entered is incorrect.")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Save()

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}
