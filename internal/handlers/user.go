package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"askbox/internal/db"
	"askbox/internal/middleware"
	"askbox/internal/models"
	"askbox/internal/services"
	"askbox/internal/utils"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// profileEntry is one row of the profile listing; exactly one of
// Question and Answer is set.
type profileEntry struct {
	Kind      string // "question" or "answer"
	Question  *models.Question
	Answer    *models.Answer
	CreatedAt time.Time
}

func questionEntries(questions []models.Question) []profileEntry {
	entries := make([]profileEntry, len(questions))
	for i := range questions {
		entries[i] = profileEntry{Kind: "question", Question: &questions[i], CreatedAt: questions[i].CreatedAt}
	}
	return entries
}

func answerEntries(answers []models.Answer) []profileEntry {
	entries := make([]profileEntry, len(answers))
	for i := range answers {
		entries[i] = profileEntry{Kind: "answer", Answer: &answers[i], CreatedAt: answers[i].CreatedAt}
	}
	return entries
}

func mergeNewestFirst(a, b []profileEntry) []profileEntry {
	merged := append(append([]profileEntry{}, a...), b...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	return merged
}

func votedQuestions(userID uint, value int) []models.Question {
	var questions []models.Question
	db.DB.Joins("JOIN votes ON votes.question_id = questions.id").
		Where("votes.user_id = ? AND votes.value = ?", userID, value).
		Order("questions.created_at DESC").
		Find(&questions)
	return questions
}

func votedAnswers(userID uint, value int) []models.Answer {
	var answers []models.Answer
	db.DB.Preload("Question").
		Joins("JOIN votes ON votes.answer_id = answers.id").
		Where("votes.user_id = ? AND votes.value = ?", userID, value).
		Order("answers.created_at DESC").
		Find(&answers)
	return answers
}

// Profile shows a user's public page with tabbed content listings.
func (h *UserHandler) Profile(c *gin.Context) {
	var owner models.User
	if err := db.DB.Where("username = ?", c.Param("username")).First(&owner).Error; err != nil {
		RenderNotFound(c)
		return
	}

	var questions []models.Question
	db.DB.Where("author_id = ?", owner.ID).Order("created_at DESC").Find(&questions)

	var answers []models.Answer
	db.DB.Preload("Question").Where("author_id = ?", owner.ID).Order("created_at DESC").Find(&answers)

	tab := strings.ToLower(c.Query("tab"))
	var contents []profileEntry
	switch tab {
	case "questions":
		contents = questionEntries(questions)
	case "answers":
		contents = answerEntries(answers)
	case "upvoted":
		contents = mergeNewestFirst(
			questionEntries(votedQuestions(owner.ID, models.Upvote)),
			answerEntries(votedAnswers(owner.ID, models.Upvote)))
	case "downvoted":
		contents = mergeNewestFirst(
			questionEntries(votedQuestions(owner.ID, models.Downvote)),
			answerEntries(votedAnswers(owner.ID, models.Downvote)))
	default:
		tab = "overview"
		contents = mergeNewestFirst(questionEntries(questions), answerEntries(answers))
	}

	Render(c, http.StatusOK, "user/profile.html", gin.H{
		"Title":        owner.Username,
		"ProfileOwner": owner,
		"Contents":     contents,
		"Tab":          tab,
	})
}

// ownProfile checks the URL names the requester's own account; anyone
// else gets the same page as for a user that does not exist.
func ownProfile(c *gin.Context) (*models.User, bool) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	if user.Username != c.Param("username") {
		RenderNotFound(c)
		return nil, false
	}
	return user, true
}

func (h *UserHandler) ShowSettings(c *gin.Context) {
	user, ok := ownProfile(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "user/settings.html", gin.H{
		"Title":    "Settings",
		"Username": user.Username,
	})
}

// UpdateSettings changes the account password when both the current
// and the new password are supplied and pass validation.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user, ok := ownProfile(c)
	if !ok {
		return
	}

	current := c.PostForm("current-password")
	newPassword := c.PostForm("new-password")

	renderWithError := func(msg string) {
		Render(c, http.StatusBadRequest, "user/settings.html", gin.H{
			"Title":    "Settings",
			"Username": user.Username,
			"Error":    msg,
		})
	}

	switch {
	case current != "" && newPassword != "":
		if !utils.CheckPasswordHash(current, user.Password) {
			renderWithError("Incorrect password")
			return
		}
		if errs := utils.ValidatePassword(newPassword); len(errs) > 0 {
			renderWithError(strings.Join(errs, " "))
			return
		}
		hash, err := utils.HashPassword(newPassword)
		if err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not update your password")
			return
		}
		if err := db.DB.Model(user).Update("password", hash).Error; err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not update your password")
			return
		}
		c.Redirect(http.StatusFound, "/users/"+user.Username)
	case current != "" || newPassword != "":
		renderWithError("Missing current or new password")
	default:
		Render(c, http.StatusOK, "user/settings.html", gin.H{
			"Title":    "Settings",
			"Username": user.Username,
		})
	}
}

func (h *UserHandler) ConfirmDelete(c *gin.Context) {
	user, ok := ownProfile(c)
	if !ok {
		return
	}
	Render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":      "Delete Account",
		"Model":      "Account",
		"Content":    user.Username,
		"DeletePath": "/delete/user/" + user.Username,
		"Referer":    c.GetHeader("Referer"),
	})
}

// Delete removes the account. Votes go with it; questions and answers
// the user wrote stay up.
func (h *UserHandler) Delete(c *gin.Context) {
	user, ok := ownProfile(c)
	if !ok {
		return
	}

	if err := services.DeleteUser(db.DB, user); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the account")
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Save()

	c.Redirect(http.StatusFound, "/")
}
