package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"askbox/internal/db"
	"askbox/internal/middleware"
	"askbox/internal/models"
	"askbox/internal/services"
	"askbox/internal/utils"
)

type AnswerHandler struct{}

func NewAnswerHandler() *AnswerHandler {
	return &AnswerHandler{}
}

// loadOwnedAnswer fetches the answer and checks the requester owns it.
// A missing answer and a foreign answer fail identically.
func loadOwnedAnswer(c *gin.Context) (*models.Answer, bool) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var answer models.Answer
	if err := db.DB.Preload("Question").First(&answer, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RenderNotFound(c)
		return nil, false
	}
	if err := services.AuthorizeOwner(user.ID, &answer); err != nil {
		RenderNotFound(c)
		return nil, false
	}
	return &answer, true
}

func (h *AnswerHandler) ShowEdit(c *gin.Context) {
	answer, ok := loadOwnedAnswer(c)
	if !ok {
		return
	}

	Render(c, http.StatusOK, "answer/edit.html", gin.H{
		"Title":  "Edit Answer",
		"Answer": answer,
	})
}

func (h *AnswerHandler) Update(c *gin.Context) {
	answer, ok := loadOwnedAnswer(c)
	if !ok {
		return
	}

	text := strings.TrimSpace(c.PostForm("text"))
	if text == "" {
		Render(c, http.StatusBadRequest, "answer/edit.html", gin.H{
			"Error":  "Answer text is required",
			"Answer": answer,
		})
		return
	}

	answer.Text = text
	if err := db.DB.Save(answer).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save your changes")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/questions/%d", answer.QuestionID))
}

func (h *AnswerHandler) ConfirmDelete(c *gin.Context) {
	answer, ok := loadOwnedAnswer(c)
	if !ok {
		return
	}

	Render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":      "Delete Answer",
		"Model":      "Answer",
		"Content":    answer.DisplayText(),
		"DeletePath": fmt.Sprintf("/delete/answers/%d", answer.ID),
		"Referer":    c.GetHeader("Referer"),
	})
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	answer, ok := loadOwnedAnswer(c)
	if !ok {
		return
	}

	if err := services.DeleteAnswer(db.DB, answer); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the answer")
		return
	}

	// The parent question page still exists and is the natural place
	// to land after removing one of its answers.
	fallback := fmt.Sprintf("/questions/%d", answer.QuestionID)
	dest := services.ResolveDeleteRedirect(fallback, c.PostForm("next"), "")
	c.Redirect(http.StatusFound, dest)
}
