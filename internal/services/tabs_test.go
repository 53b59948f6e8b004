package services

import (
	"testing"
	"time"

	"askbox/internal/models"
)

func TestParseQuestionTab(t *testing.T) {
	tests := []struct {
		in   string
		want QuestionTab
	}{
		{"", TabNewest},
		{"newest", TabNewest},
		{"unanswered", TabUnanswered},
		{"UNANSWERED", TabUnanswered},
		{"Popular", TabPopular},
		{"garbage", TabNewest},
	}
	for _, tt := range tests {
		if got := ParseQuestionTab(tt.in); got != tt.want {
			t.Errorf("ParseQuestionTab(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestQuestionTabCanonicalNames(t *testing.T) {
	// The displayed name is always the title-case form, whatever the
	// request supplied.
	if got := ParseQuestionTab("pOpUlAr").String(); got != "Popular" {
		t.Errorf("tab name = %q, want %q", got, "Popular")
	}
	if got := ParseQuestionTab("unanswered").String(); got != "Unanswered" {
		t.Errorf("tab name = %q, want %q", got, "Unanswered")
	}
	if got := ParseQuestionTab("nonsense").String(); got != "Newest" {
		t.Errorf("tab name = %q, want %q", got, "Newest")
	}
}

func TestFilterQuestionsUnanswered(t *testing.T) {
	questions := []models.Question{
		{ID: 3, AnswerCount: 0},
		{ID: 2, AnswerCount: 2},
		{ID: 1, AnswerCount: 0},
	}

	got := FilterQuestions(questions, TabUnanswered)
	if len(got) != 2 || got[0].ID != 3 || got[1].ID != 1 {
		t.Errorf("Unanswered kept %v, want IDs [3 1] in order", ids(got))
	}
	if len(questions) != 3 {
		t.Error("FilterQuestions modified its input")
	}
}

func TestFilterQuestionsPopular(t *testing.T) {
	// Input is newest-first; ties on views must keep that order.
	questions := []models.Question{
		{ID: 4, ViewCount: 2},
		{ID: 3, ViewCount: 9},
		{ID: 2, ViewCount: 2},
		{ID: 1, ViewCount: 5},
	}

	got := FilterQuestions(questions, TabPopular)
	want := []uint{3, 1, 4, 2}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("Popular order = %v, want %v", ids(got), want)
		}
	}
	if questions[0].ID != 4 {
		t.Error("FilterQuestions modified its input")
	}
}

func TestFilterQuestionsNewest(t *testing.T) {
	questions := []models.Question{{ID: 2}, {ID: 1}}
	got := FilterQuestions(questions, TabNewest)
	if len(got) != 2 || got[0].ID != 2 {
		t.Errorf("Newest reordered the base collection: %v", ids(got))
	}
}

func TestParseTagTab(t *testing.T) {
	tests := []struct {
		in   string
		want TagTab
	}{
		{"", TagTabPopular},
		{"new", TagTabNew},
		{"NAME", TagTabName},
		{"whatever", TagTabPopular},
	}
	for _, tt := range tests {
		if got := ParseTagTab(tt.in); got != tt.want {
			t.Errorf("ParseTagTab(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := ParseTagTab("name").String(); got != "Name" {
		t.Errorf("tab name = %q, want %q", got, "Name")
	}
}

func TestSortTags(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tags := []models.Tag{
		{ID: 1, Text: "web", CreatedAt: base, QuestionCount: 4},
		{ID: 2, Text: "go", CreatedAt: base.Add(time.Hour), QuestionCount: 9},
		{ID: 3, Text: "testing", CreatedAt: base.Add(2 * time.Hour), QuestionCount: 4},
	}

	popular := SortTags(tags, TagTabPopular)
	if popular[0].ID != 2 || popular[1].ID != 1 || popular[2].ID != 3 {
		t.Errorf("Popular order wrong: %v", tagIDs(popular))
	}

	newest := SortTags(tags, TagTabNew)
	if newest[0].ID != 3 || newest[2].ID != 1 {
		t.Errorf("New order wrong: %v", tagIDs(newest))
	}

	byName := SortTags(tags, TagTabName)
	if byName[0].Text != "go" || byName[1].Text != "testing" || byName[2].Text != "web" {
		t.Errorf("Name order wrong: %v", tagIDs(byName))
	}

	if tags[0].ID != 1 {
		t.Error("SortTags modified its input")
	}
}

func ids(questions []models.Question) []uint {
	out := make([]uint, len(questions))
	for i, q := range questions {
		out[i] = q.ID
	}
	return out
}

func tagIDs(tags []models.Tag) []uint {
	out := make([]uint, len(tags))
	for i, tag := range tags {
		out[i] = tag.ID
	}
	return out
}
