package services

import (
	"sort"
	"strings"

	"askbox/internal/models"
)

// QuestionTab selects how a question listing is filtered and ordered.
type QuestionTab int

const (
	TabNewest QuestionTab = iota
	TabUnanswered
	TabPopular
)

// ParseQuestionTab maps the free-form query value onto a known tab.
// Matching is case-insensitive; anything unrecognized is Newest.
func ParseQuestionTab(s string) QuestionTab {
	switch strings.ToLower(s) {
	case "unanswered":
		return TabUnanswered
	case "popular":
		return TabPopular
	}
	return TabNewest
}

// String returns the canonical tab name. The canonical title-case form
// is always used, whatever casing the request supplied.
func (t QuestionTab) String() string {
	switch t {
	case TabUnanswered:
		return "Unanswered"
	case TabPopular:
		return "Popular"
	}
	return "Newest"
}

// FilterQuestions applies the tab to a newest-first base collection.
// The input slice is never modified; Unanswered keeps the relative
// order of the survivors and Popular sorts stably so ties stay in
// newest-first order.
func FilterQuestions(questions []models.Question, tab QuestionTab) []models.Question {
	switch tab {
	case TabUnanswered:
		kept := make([]models.Question, 0, len(questions))
		for _, q := range questions {
			if q.AnswerCount == 0 {
				kept = append(kept, q)
			}
		}
		return kept
	case TabPopular:
		sorted := make([]models.Question, len(questions))
		copy(sorted, questions)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].ViewCount > sorted[j].ViewCount
		})
		return sorted
	}
	return questions
}

// TagTab selects how the tag listing is ordered.
type TagTab int

const (
	TagTabPopular TagTab = iota
	TagTabNew
	TagTabName
)

// ParseTagTab maps the free-form query value onto a known tab.
// Matching is case-insensitive; anything unrecognized is Popular.
func ParseTagTab(s string) TagTab {
	switch strings.ToLower(s) {
	case "new":
		return TagTabNew
	case "name":
		return TagTabName
	}
	return TagTabPopular
}

// String returns the canonical tab name, title-cased like QuestionTab.
func (t TagTab) String() string {
	switch t {
	case TagTabNew:
		return "New"
	case TagTabName:
		return "Name"
	}
	return "Popular"
}

// SortTags orders the tag collection per the tab: Popular by how many
// questions carry the tag, New by creation time, Name alphabetically.
// The input slice is never modified.
func SortTags(tags []models.Tag, tab TagTab) []models.Tag {
	sorted := make([]models.Tag, len(tags))
	copy(sorted, tags)
	switch tab {
	case TagTabNew:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	case TagTabName:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Text < sorted[j].Text
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].QuestionCount > sorted[j].QuestionCount
		})
	}
	return sorted
}
