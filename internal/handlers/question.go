package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"askbox/internal/db"
	"askbox/internal/middleware"
	"askbox/internal/models"
	"askbox/internal/services"
	"askbox/internal/utils"
)

type QuestionHandler struct{}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

// fillQuestionCounts batch-fills answer, view, and net vote counts for
// a page of questions with one grouped query per count.
func fillQuestionCounts(questions []models.Question) {
	if len(questions) == 0 {
		return
	}

	questionIDs := make([]uint, len(questions))
	for i, q := range questions {
		questionIDs[i] = q.ID
	}

	type countResult struct {
		QuestionID uint
		Count      int
	}

	var answerCounts []countResult
	db.DB.Model(&models.Answer{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&answerCounts)

	var viewCounts []countResult
	db.DB.Model(&models.View{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&viewCounts)

	var voteCounts []countResult
	db.DB.Model(&models.Vote{}).
		Select("question_id, COALESCE(SUM(value), 0) as count").
		Where("question_id IN ?", questionIDs).
		Group("question_id").
		Scan(&voteCounts)

	answerMap := make(map[uint]int)
	for _, r := range answerCounts {
		answerMap[r.QuestionID] = r.Count
	}
	viewMap := make(map[uint]int)
	for _, r := range viewCounts {
		viewMap[r.QuestionID] = r.Count
	}
	voteMap := make(map[uint]int)
	for _, r := range voteCounts {
		voteMap[r.QuestionID] = r.Count
	}

	for i := range questions {
		questions[i].AnswerCount = answerMap[questions[i].ID]
		questions[i].ViewCount = viewMap[questions[i].ID]
		questions[i].VoteCount = voteMap[questions[i].ID]
	}
}

// fillAnswerVoteCounts batch-fills net vote counts for answers.
func fillAnswerVoteCounts(answers []models.Answer) {
	if len(answers) == 0 {
		return
	}

	answerIDs := make([]uint, len(answers))
	for i, a := range answers {
		answerIDs[i] = a.ID
	}

	type countResult struct {
		AnswerID uint
		Count    int
	}
	var results []countResult
	db.DB.Model(&models.Vote{}).
		Select("answer_id, COALESCE(SUM(value), 0) as count").
		Where("answer_id IN ?", answerIDs).
		Group("answer_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.AnswerID] = r.Count
	}
	for i := range answers {
		answers[i].VoteCount = countMap[answers[i].ID]
	}
}

// viewerIdentity resolves who is looking at a page: the session user if
// logged in, otherwise the first forwarded-for entry, falling back to
// the direct connection address.
func viewerIdentity(c *gin.Context) services.ViewerIdentity {
	if user, exists := currentUser(c); exists {
		id := user.ID
		return services.ViewerIdentity{UserID: &id}
	}

	ip := strings.TrimSpace(strings.Split(c.GetHeader("X-Forwarded-For"), ",")[0])
	if ip == "" {
		ip = c.RemoteIP()
	}
	return services.ViewerIdentity{IPAddress: ip}
}

func (h *QuestionHandler) Index(c *gin.Context) {
	Render(c, http.StatusOK, "index.html", gin.H{
		"Title": "Askbox",
	})
}

// List shows all questions, newest first, re-ordered by the tab.
func (h *QuestionHandler) List(c *gin.Context) {
	var questions []models.Question
	db.DB.Preload("Author").Preload("Tags").
		Order("created_at DESC").
		Find(&questions)

	fillQuestionCounts(questions)

	tab := services.ParseQuestionTab(c.Query("tab"))
	questions = services.FilterQuestions(questions, tab)

	Render(c, http.StatusOK, "question/list.html", gin.H{
		"Questions": questions,
		"Tab":       tab.String(),
		"Title":     "All Questions",
	})
}

// ListTagged shows the questions carrying one tag, same tabs as List.
func (h *QuestionHandler) ListTagged(c *gin.Context) {
	var tag models.Tag
	if err := db.DB.First(&tag, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RenderNotFound(c)
		return
	}

	var questions []models.Question
	db.DB.Preload("Author").Preload("Tags").
		Joins("JOIN question_tags ON question_tags.question_id = questions.id").
		Where("question_tags.tag_id = ?", tag.ID).
		Order("questions.created_at DESC").
		Find(&questions)

	fillQuestionCounts(questions)

	tab := services.ParseQuestionTab(c.Query("tab"))
	questions = services.FilterQuestions(questions, tab)

	Render(c, http.StatusOK, "question/tagged.html", gin.H{
		"Questions": questions,
		"Tag":       tag,
		"Tab":       tab.String(),
		"Title":     "Questions tagged #" + tag.Text,
	})
}

// Detail renders one question with its answers and vote metadata, and
// records the visit for the popularity ranking.
func (h *QuestionHandler) Detail(c *gin.Context) {
	var question models.Question
	if err := db.DB.Preload("Author").Preload("Tags").
		First(&question, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RenderNotFound(c)
		return
	}

	if err := services.RecordView(db.DB, viewerIdentity(c), question.ID); err != nil {
		// Best-effort popularity data, the page still renders.
		log.Printf("record view for question %d: %v", question.ID, err)
	}

	var answers []models.Answer
	db.DB.Preload("Author").
		Where("question_id = ?", question.ID).
		Order("created_at ASC").
		Find(&answers)
	fillAnswerVoteCounts(answers)

	questionVotes, _ := services.VoteCount(db.DB, services.TargetQuestion, question.ID)
	question.VoteCount = questionVotes
	viewCount, _ := services.ViewCount(db.DB, question.ID)
	question.ViewCount = int(viewCount)
	question.AnswerCount = len(answers)

	type renderedAnswer struct {
		models.Answer
		TextHTML template.HTML
	}
	rendered := make([]renderedAnswer, len(answers))
	for i, ans := range answers {
		rendered[i] = renderedAnswer{Answer: ans, TextHTML: utils.RenderMarkdown(ans.Text)}
	}

	data := gin.H{
		"Question":     question,
		"QuestionBody": utils.RenderMarkdown(question.Body),
		"Answers":      rendered,
		"Title":        question.Title,
	}

	if user, exists := currentUser(c); exists {
		meta, err := services.UserVoteMeta(db.DB, user.ID, question.ID)
		if err == nil {
			data["VoteMeta"] = meta
		}
	}

	Render(c, http.StatusOK, "question/detail.html", data)
}

// SubmitDetail handles the detail-page POST: it may create an answer
// and cast a vote in the same request.
func (h *QuestionHandler) SubmitDetail(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var question models.Question
	if err := db.DB.First(&question, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RenderNotFound(c)
		return
	}

	if text := strings.TrimSpace(c.PostForm("text")); text != "" {
		answer := models.Answer{
			AuthorID:   user.ID,
			QuestionID: question.ID,
			Text:       text,
		}
		if err := db.DB.Create(&answer).Error; err != nil {
			RenderError(c, http.StatusInternalServerError, "Could not save your answer")
			return
		}
	}

	if voteStr := c.PostForm("vote"); voteStr != "" {
		value := utils.StringToInt(voteStr)
		kind := services.TargetQuestion
		targetID := question.ID
		if ansIDStr := c.PostForm("answer_id"); ansIDStr != "" {
			var answer models.Answer
			if err := db.DB.First(&answer, utils.StringToUint(ansIDStr)).Error; err != nil {
				RenderNotFound(c)
				return
			}
			kind = services.TargetAnswer
			targetID = answer.ID
		}
		if err := services.CastVote(db.DB, user.ID, kind, targetID, value); err != nil {
			RenderError(c, http.StatusBadRequest, "Could not record your vote")
			return
		}
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/questions/%d", question.ID))
}

// validateQuestionForm checks the ask/edit form fields; it returns the
// resolved tags and an empty message when the submission is good.
func validateQuestionForm(title, body string, tagIDs []string) ([]models.Tag, string) {
	if title == "" {
		return nil, "Title is required"
	}
	if len([]rune(title)) > 200 {
		return nil, "Title must be at most 200 characters"
	}
	if body == "" {
		return nil, "Body is required"
	}
	if len(tagIDs) == 0 {
		return nil, "Pick at least one tag"
	}

	ids := make([]uint, 0, len(tagIDs))
	seen := make(map[uint]bool)
	for _, s := range tagIDs {
		id := utils.StringToUint(s)
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	var tags []models.Tag
	db.DB.Where("id IN ?", ids).Find(&tags)
	if len(tags) != len(ids) || len(tags) == 0 {
		return nil, "Unknown tag selected"
	}
	return tags, ""
}

func (h *QuestionHandler) ShowAsk(c *gin.Context) {
	var tags []models.Tag
	db.DB.Order("text ASC").Find(&tags)

	Render(c, http.StatusOK, "question/ask.html", gin.H{
		"Title": "Ask a Question",
		"Tags":  tags,
	})
}

func (h *QuestionHandler) Ask(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	title := strings.TrimSpace(c.PostForm("title"))
	body := c.PostForm("body")
	tags, errMsg := validateQuestionForm(title, body, c.PostFormArray("tags"))
	if errMsg != "" {
		var allTags []models.Tag
		db.DB.Order("text ASC").Find(&allTags)
		Render(c, http.StatusBadRequest, "question/ask.html", gin.H{
			"Error": errMsg,
			"Tags":  allTags,
			"Form":  gin.H{"Title": title, "Body": body},
		})
		return
	}

	question := models.Question{
		AuthorID: user.ID,
		Title:    title,
		Body:     body,
		Tags:     tags,
	}
	if err := db.DB.Create(&question).Error; err != nil {
		var allTags []models.Tag
		db.DB.Order("text ASC").Find(&allTags)
		Render(c, http.StatusInternalServerError, "question/ask.html", gin.H{
			"Error": "Could not save your question",
			"Tags":  allTags,
			"Form":  gin.H{"Title": title, "Body": body},
		})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/questions/%d", question.ID))
}

// loadOwnedQuestion fetches the question and checks the requester owns
// it. A missing question and a foreign question fail identically.
func loadOwnedQuestion(c *gin.Context) (*models.Question, bool) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	var question models.Question
	if err := db.DB.Preload("Tags").First(&question, utils.StringToUint(c.Param("id"))).Error; err != nil {
		RenderNotFound(c)
		return nil, false
	}
	if err := services.AuthorizeOwner(user.ID, &question); err != nil {
		RenderNotFound(c)
		return nil, false
	}
	return &question, true
}

func (h *QuestionHandler) ShowEdit(c *gin.Context) {
	question, ok := loadOwnedQuestion(c)
	if !ok {
		return
	}

	var tags []models.Tag
	db.DB.Order("text ASC").Find(&tags)

	Render(c, http.StatusOK, "question/edit.html", gin.H{
		"Title":    "Edit Question",
		"Question": question,
		"Tags":     tags,
	})
}

func (h *QuestionHandler) Update(c *gin.Context) {
	question, ok := loadOwnedQuestion(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	body := c.PostForm("body")
	tags, errMsg := validateQuestionForm(title, body, c.PostFormArray("tags"))
	if errMsg != "" {
		var allTags []models.Tag
		db.DB.Order("text ASC").Find(&allTags)
		Render(c, http.StatusBadRequest, "question/edit.html", gin.H{
			"Error":    errMsg,
			"Question": question,
			"Tags":     allTags,
		})
		return
	}

	question.Title = title
	question.Body = body
	if err := db.DB.Save(question).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save your changes")
		return
	}
	if err := db.DB.Model(question).Association("Tags").Replace(tags); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not save your changes")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/questions/%d", question.ID))
}

func (h *QuestionHandler) ConfirmDelete(c *gin.Context) {
	question, ok := loadOwnedQuestion(c)
	if !ok {
		return
	}

	Render(c, http.StatusOK, "confirm_delete.html", gin.H{
		"Title":      "Delete Question",
		"Model":      "Question",
		"Content":    question.Title,
		"DeletePath": fmt.Sprintf("/delete/questions/%d", question.ID),
		"Referer":    c.GetHeader("Referer"),
	})
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	question, ok := loadOwnedQuestion(c)
	if !ok {
		return
	}

	if err := services.DeleteQuestion(db.DB, question); err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not delete the question")
		return
	}

	// The question's own detail page is gone, never send the user there.
	forbidden := fmt.Sprintf("/questions/%d", question.ID)
	dest := services.ResolveDeleteRedirect("/questions", c.PostForm("next"), forbidden)
	c.Redirect(http.StatusFound, dest)
}
