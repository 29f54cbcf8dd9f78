package service

import (
	"testing"

	"refcheck_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []model.Question {
	return []model.Question{
		{
			BaseModel:    model.BaseModel{ID: 1},
			QuestionText: "How long did you work together?",
			QuestionType: model.TypeText,
			IsRequired:   true,
		},
		{
			BaseModel:    model.BaseModel{ID: 2},
			QuestionText: "Would you rehire them?",
			QuestionType: model.TypeRadio,
			IsRequired:   true,
			Choices:      model.StringList{"Yes", "No"},
		},
		{
			BaseModel:    model.BaseModel{ID: 3},
			QuestionText: "Rate their performance",
			QuestionType: model.TypeRating,
			IsRequired:   false,
			RatingScale:  5,
		},
	}
}

func TestValidateAnswersPass(t *testing.T) {
	answers := []AnswerInput{
		{QuestionID: 1, Value: "Three years"},
		{QuestionID: 2, Value: "Yes"},
		{QuestionID: 3, Value: "4"},
	}

	fieldErrors, rows := ValidateAnswers(sampleQuestions(), answers)
	require.Empty(t, fieldErrors)
	require.Len(t, rows, 3)

	assert.Equal(t, uint(1), rows[0].QuestionID)
	assert.Equal(t, model.TypeText, rows[0].QuestionType)
	assert.Equal(t, "Three years", rows[0].AnswerValue)
}

func TestValidateAnswersMissingRequired(t *testing.T) {
	answers := []AnswerInput{
		{QuestionID: 1, Value: "Three years"},
		// question 2 omitted entirely
	}

	fieldErrors, rows := ValidateAnswers(sampleQuestions(), answers)
	require.Nil(t, rows)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "This field is required", fieldErrors[2])
}

func TestValidateAnswersUnknownQuestion(t *testing.T) {
	answers := []AnswerInput{
		{QuestionID: 1, Value: "Three years"},
		{QuestionID: 2, Value: "Yes"},
		{QuestionID: 99, Value: "stray"},
	}

	fieldErrors, rows := ValidateAnswers(sampleQuestions(), answers)
	require.Nil(t, rows)
	assert.Equal(t, "Question not found", fieldErrors[99])
}

func TestValidateAnswersInvalidChoice(t *testing.T) {
	answers := []AnswerInput{
		{QuestionID: 1, Value: "Three years"},
		{QuestionID: 2, Value: "Maybe"},
	}

	fieldErrors, rows := ValidateAnswers(sampleQuestions(), answers)
	require.Nil(t, rows)
	assert.Equal(t, "Invalid option selected", fieldErrors[2])
}

func TestValidateAnswersOptionalLeftEmpty(t *testing.T) {
	answers := []AnswerInput{
		{QuestionID: 1, Value: "Three years"},
		{QuestionID: 2, Value: "No"},
	}

	fieldErrors, rows := ValidateAnswers(sampleQuestions(), answers)
	require.Empty(t, fieldErrors)
	require.Len(t, rows, 3)
	// the optional rating is stored with an empty value
	assert.Equal(t, uint(3), rows[2].QuestionID)
	assert.Equal(t, "", rows[2].AnswerValue)
}

func TestAnswerInputCanonical(t *testing.T) {
	multi := AnswerInput{QuestionID: 1, Values: []string{"Leadership", "Teamwork"}}
	assert.Equal(t, `["Leadership","Teamwork"]`, multi.canonical())

	single := AnswerInput{QuestionID: 1, Value: "Yes"}
	assert.Equal(t, "Yes", single.canonical())

	// Values wins over Value when both are set
	both := AnswerInput{QuestionID: 1, Value: "ignored", Values: []string{"a"}}
	assert.Equal(t, `["a"]`, both.canonical())
}

func TestValidateAnswersCheckboxValues(t *testing.T) {
	questions := []model.Question{
		{
			BaseModel:    model.BaseModel{ID: 5},
			QuestionText: "Strengths",
			QuestionType: model.TypeCheckbox,
			IsRequired:   true,
			Choices:      model.StringList{"Leadership", "Teamwork", "Communication"},
		},
	}
	answers := []AnswerInput{
		{QuestionID: 5, Values: []string{"Leadership", "Communication"}},
	}

	fieldErrors, rows := ValidateAnswers(questions, answers)
	require.Empty(t, fieldErrors)
	require.Len(t, rows, 1)
	assert.Equal(t, `["Leadership","Communication"]`, rows[0].AnswerValue)
	assert.Equal(t, []string{"Leadership", "Communication"}, model.AnswerValues(rows[0].AnswerValue))
}

func TestResponseDetailDeletedForm(t *testing.T) {
	// Deleting a template soft-deletes its forms, so the form preload on an
	// old response comes back empty. The detail must still render.
	response := &model.Response{
		BaseModel: model.BaseModel{ID: 7},
		FormID:    3,
		Answers: []model.Answer{
			{QuestionID: 1, QuestionType: model.TypeText, AnswerValue: "Three years"},
			{QuestionID: 2, QuestionType: model.TypeRadio, AnswerValue: "Yes"},
		},
	}

	svc := &ResponseService{}
	detail, err := svc.detail(response)
	require.NoError(t, err)

	assert.Equal(t, uint(7), detail.ID)
	assert.Equal(t, uint(3), detail.FormID)
	assert.Empty(t, detail.TemplateTitle)
	assert.Empty(t, detail.RefereeName)
	require.Len(t, detail.Answers, 2)
	assert.Equal(t, "Question 1", detail.Answers[0].QuestionText)
	assert.Equal(t, "Three years", detail.Answers[0].AnswerValue)
	assert.Equal(t, "Question 2", detail.Answers[1].QuestionText)
}
