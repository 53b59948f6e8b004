package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"askbox/internal/db"
	"askbox/internal/models"
	"askbox/internal/services"
)

type TagHandler struct{}

func NewTagHandler() *TagHandler {
	return &TagHandler{}
}

// fillTagQuestionCounts batch-fills how many questions carry each tag.
func fillTagQuestionCounts(tags []models.Tag) {
	if len(tags) == 0 {
		return
	}

	tagIDs := make([]uint, len(tags))
	for i, t := range tags {
		tagIDs[i] = t.ID
	}

	type countResult struct {
		TagID uint
		Count int
	}
	var results []countResult
	db.DB.Table("question_tags").
		Select("tag_id, COUNT(*) as count").
		Where("tag_id IN ?", tagIDs).
		Group("tag_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.TagID] = r.Count
	}
	for i := range tags {
		tags[i].QuestionCount = countMap[tags[i].ID]
	}
}

// List shows all tags, ordered by the tab (Popular by default).
func (h *TagHandler) List(c *gin.Context) {
	var tags []models.Tag
	db.DB.Find(&tags)

	fillTagQuestionCounts(tags)

	tab := services.ParseTagTab(c.Query("tab"))
	tags = services.SortTags(tags, tab)

	Render(c, http.StatusOK, "tag/list.html", gin.H{
		"Tags":  tags,
		"Tab":   tab.String(),
		"Title": "Tags",
	})
}
