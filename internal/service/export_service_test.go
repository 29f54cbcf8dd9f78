package service

import (
	"testing"
	"time"

	"refcheck_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponsePDF(t *testing.T) {
	detail := &ResponseDetail{
		ID:            1,
		FormID:        2,
		TemplateTitle: "Standard Reference Check",
		RefereeName:   "Jane Smith",
		RefereeEmail:  "jane@example.com",
		ApplicantName: "John Doe",
		SubmittedAt:   time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Answers: []AnswerView{
			{QuestionID: 1, QuestionText: "How long did you work together?", QuestionType: model.TypeText, AnswerValue: "Three years"},
			{QuestionID: 2, QuestionText: "Rate their performance", QuestionType: model.TypeRating, AnswerValue: "4"},
			{QuestionID: 3, QuestionText: "Anything else?", QuestionType: model.TypeTextarea, AnswerValue: ""},
		},
	}

	data, err := BuildResponsePDF(detail)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBuildResponsePDFNoAnswers(t *testing.T) {
	detail := &ResponseDetail{
		TemplateTitle: "Empty Check",
		RefereeName:   "Jane Smith",
		SubmittedAt:   time.Now(),
	}

	data, err := BuildResponsePDF(detail)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}
