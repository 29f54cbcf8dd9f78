package service

import (
	"testing"

	"refcheck_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionRequestValidate(t *testing.T) {
	req := QuestionRequest{
		QuestionText: "How long did you work together?",
		QuestionType: model.TypeText,
	}
	assert.NoError(t, req.Validate())

	req.QuestionType = "ESSAY"
	assert.Error(t, req.Validate())
}

func TestQuestionRequestValidateChoices(t *testing.T) {
	req := QuestionRequest{
		QuestionText: "Would you rehire them?",
		QuestionType: model.TypeRadio,
		Choices:      []string{"Yes"},
	}
	err := req.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 choices")

	req.Choices = append(req.Choices, "No")
	assert.NoError(t, req.Validate())
}

func TestQuestionRequestValidateRating(t *testing.T) {
	req := QuestionRequest{
		QuestionText: "Rate their performance overall",
		QuestionType: model.TypeRating,
	}
	require.NoError(t, req.Validate())
	// unset scale defaults to 5
	assert.Equal(t, 5, req.RatingScale)

	req.RatingScale = 1
	assert.Error(t, req.Validate())

	req.RatingScale = 11
	assert.Error(t, req.Validate())

	req.RatingScale = 10
	assert.NoError(t, req.Validate())
}

func TestQuestionRequestToModel(t *testing.T) {
	required := false
	req := QuestionRequest{
		QuestionText: "Strengths observed",
		QuestionType: model.TypeCheckbox,
		IsRequired:   &required,
		Choices:      []string{"Leadership", "Teamwork"},
	}
	require.NoError(t, req.Validate())

	q := req.toModel()
	assert.Equal(t, model.TypeCheckbox, q.QuestionType)
	assert.False(t, q.IsRequired)
	assert.Equal(t, model.StringList{"Leadership", "Teamwork"}, q.Choices)
	// rating scale keeps its default even for non-rating types
	assert.Equal(t, 5, q.RatingScale)
}

func TestQuestionRequestToModelDefaults(t *testing.T) {
	req := QuestionRequest{
		QuestionText: "How long did you work together?",
		QuestionType: model.TypeText,
	}
	q := req.toModel()
	// required by default when the flag is omitted
	assert.True(t, q.IsRequired)
	assert.Empty(t, q.Choices)
}

func TestTemplateDuplicate(t *testing.T) {
	original := &model.Template{
		BaseModel:    model.BaseModel{ID: 1},
		Title:        "Standard Reference Check",
		Description:  "For full-time hires",
		Instructions: "Answer honestly",
		IsActive:     true,
		CreatedBy:    10,
		Questions: []model.Question{
			{BaseModel: model.BaseModel{ID: 5}, QuestionText: "Q1 text here", QuestionType: model.TypeText, Order: 1},
			{BaseModel: model.BaseModel{ID: 6}, QuestionText: "Q2 text here", QuestionType: model.TypeRating, RatingScale: 5, Order: 2},
		},
	}

	copied := original.Duplicate("", 20)
	assert.Equal(t, "Standard Reference Check (Copy)", copied.Title)
	assert.False(t, copied.IsActive)
	assert.Equal(t, uint(20), copied.CreatedBy)
	require.Len(t, copied.Questions, 2)
	assert.Zero(t, copied.Questions[0].ID)
	assert.Equal(t, "Q1 text here", copied.Questions[0].QuestionText)

	named := original.Duplicate("Contractor Check", 20)
	assert.Equal(t, "Contractor Check", named.Title)
}

func TestBuildQuestions(t *testing.T) {
	reqs := []QuestionRequest{
		{QuestionText: "How long did you work together?", QuestionType: model.TypeText},
		{QuestionText: "Would you rehire them?", QuestionType: model.TypeRadio, Choices: []string{"Yes", "No"}, Order: 7},
	}

	questions, err := buildQuestions(reqs)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 1, questions[0].Order)
	assert.Equal(t, 7, questions[1].Order)
	assert.Equal(t, model.StringList{"Yes", "No"}, questions[1].Choices)

	reqs[1].Choices = nil
	_, err = buildQuestions(reqs)
	assert.Error(t, err)
}
