package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestQuestionTypeValid(t *testing.T) {
	for _, qt := range QuestionTypes {
		assert.True(t, qt.Valid(), "expected %s to be valid", qt)
	}
	assert.False(t, QuestionType("ESSAY").Valid())
	assert.False(t, QuestionType("").Valid())
}

func TestQuestionTypeHasChoices(t *testing.T) {
	assert.True(t, TypeSelect.HasChoices())
	assert.True(t, TypeRadio.HasChoices())
	assert.True(t, TypeCheckbox.HasChoices())
	assert.False(t, TypeText.HasChoices())
	assert.False(t, TypeRating.HasChoices())
}

func TestValidateAnswerText(t *testing.T) {
	q := Question{QuestionType: TypeText, IsRequired: true}

	ok, msg := q.ValidateAnswer("")
	assert.False(t, ok)
	assert.Equal(t, "This field is required", msg)

	ok, msg = q.ValidateAnswer("   ")
	assert.False(t, ok)
	assert.Equal(t, "This field is required", msg)

	ok, _ = q.ValidateAnswer("worked together for 3 years")
	assert.True(t, ok)

	q.IsRequired = false
	ok, _ = q.ValidateAnswer("")
	assert.True(t, ok)

	q.MaxLength = intPtr(5)
	ok, msg = q.ValidateAnswer("too long for the limit")
	assert.False(t, ok)
	assert.Equal(t, "Answer must be 5 characters or less", msg)

	// the limit counts characters, not bytes
	ok, _ = q.ValidateAnswer("héllo")
	assert.True(t, ok)

	ok, msg = q.ValidateAnswer("héllo!")
	assert.False(t, ok)
	assert.Equal(t, "Answer must be 5 characters or less", msg)
}

func TestValidateAnswerSingleChoice(t *testing.T) {
	q := Question{
		QuestionType: TypeRadio,
		IsRequired:   true,
		Choices:      StringList{"Yes", "No"},
	}

	ok, msg := q.ValidateAnswer("")
	assert.False(t, ok)
	assert.Equal(t, "This field is required", msg)

	ok, msg = q.ValidateAnswer("Maybe")
	assert.False(t, ok)
	assert.Equal(t, "Invalid option selected", msg)

	ok, _ = q.ValidateAnswer("Yes")
	assert.True(t, ok)

	q.IsRequired = false
	ok, _ = q.ValidateAnswer("")
	assert.True(t, ok)
}

func TestValidateAnswerCheckbox(t *testing.T) {
	q := Question{
		QuestionType: TypeCheckbox,
		IsRequired:   true,
		Choices:      StringList{"Leadership", "Teamwork", "Communication"},
	}

	ok, msg := q.ValidateAnswer("")
	assert.False(t, ok)
	assert.Equal(t, "This field is required", msg)

	ok, _ = q.ValidateAnswer(`["Leadership","Teamwork"]`)
	assert.True(t, ok)

	ok, msg = q.ValidateAnswer(`["Leadership","Cooking"]`)
	assert.False(t, ok)
	assert.Equal(t, "Invalid option selected", msg)

	// single plain value is accepted too
	ok, _ = q.ValidateAnswer("Teamwork")
	assert.True(t, ok)
}

func TestValidateAnswerRating(t *testing.T) {
	q := Question{QuestionType: TypeRating, IsRequired: true, RatingScale: 5}

	ok, msg := q.ValidateAnswer("")
	assert.False(t, ok)
	assert.Equal(t, "This field is required", msg)

	ok, msg = q.ValidateAnswer("6")
	assert.False(t, ok)
	assert.Equal(t, "Rating must be between 1 and 5", msg)

	ok, msg = q.ValidateAnswer("0")
	assert.False(t, ok)
	assert.Equal(t, "Rating must be between 1 and 5", msg)

	ok, msg = q.ValidateAnswer("great")
	assert.False(t, ok)
	assert.Equal(t, "Invalid rating value", msg)

	for _, v := range []string{"1", "3", "5", " 4 "} {
		ok, _ = q.ValidateAnswer(v)
		assert.True(t, ok, "expected rating %q to pass", v)
	}
}

func TestValidateAnswerEmail(t *testing.T) {
	q := Question{QuestionType: TypeEmail, IsRequired: true}

	ok, msg := q.ValidateAnswer("not-an-email")
	assert.False(t, ok)
	assert.Equal(t, "Please enter a valid email address", msg)

	ok, _ = q.ValidateAnswer("referee@example.com")
	assert.True(t, ok)
}

func TestValidateAnswerPhone(t *testing.T) {
	q := Question{QuestionType: TypePhone, IsRequired: true}

	ok, msg := q.ValidateAnswer("no digits here")
	assert.False(t, ok)
	assert.Equal(t, "Please enter a valid phone number", msg)

	ok, _ = q.ValidateAnswer("+60123456789")
	assert.True(t, ok)
}

func TestValidateAnswerDate(t *testing.T) {
	q := Question{QuestionType: TypeDate, IsRequired: true}

	ok, msg := q.ValidateAnswer("tomorrow")
	assert.False(t, ok)
	assert.Equal(t, "Please enter a valid date", msg)

	ok, msg = q.ValidateAnswer("2025-13-40")
	assert.False(t, ok)
	assert.Equal(t, "Please enter a valid date", msg)

	ok, _ = q.ValidateAnswer("2025-06-15")
	assert.True(t, ok)

	q.IsRequired = false
	ok, _ = q.ValidateAnswer("")
	assert.True(t, ok)
}

func TestAnswerValues(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, AnswerValues(`["a","b"]`))
	assert.Equal(t, []string{"single"}, AnswerValues("single"))
	assert.Nil(t, AnswerValues(""))
	assert.Nil(t, AnswerValues("   "))
	// malformed JSON array falls back to a single raw value
	assert.Equal(t, []string{"[broken"}, AnswerValues("[broken"))
}

func TestRenderHTMLText(t *testing.T) {
	q := Question{
		BaseModel:    BaseModel{ID: 7},
		QuestionType: TypeText,
		IsRequired:   true,
		MaxLength:    intPtr(100),
		Placeholder:  "Your answer",
	}

	html := q.RenderHTML()
	assert.Contains(t, html, `name="question_7"`)
	assert.Contains(t, html, `type="text"`)
	assert.Contains(t, html, " required")
	assert.Contains(t, html, `maxlength="100"`)
	assert.Contains(t, html, `placeholder="Your answer"`)
}

func TestRenderHTMLSelect(t *testing.T) {
	q := Question{
		BaseModel:    BaseModel{ID: 3},
		QuestionType: TypeSelect,
		Choices:      StringList{"Yes", "No <really>"},
	}

	html := q.RenderHTML()
	assert.Contains(t, html, `<select name="question_3"`)
	// optional selects get an empty option
	assert.Contains(t, html, "-- Select an option --")
	// options are escaped
	assert.Contains(t, html, "No &lt;really&gt;")
	assert.NotContains(t, html, "No <really>")

	q.IsRequired = true
	html = q.RenderHTML()
	assert.NotContains(t, html, "-- Select an option --")
}

func TestRenderHTMLRating(t *testing.T) {
	q := Question{
		BaseModel:    BaseModel{ID: 4},
		QuestionType: TypeRating,
		RatingScale:  5,
		RatingLabels: LabelMap{"1": "Poor", "5": "Excellent"},
	}

	html := q.RenderHTML()
	assert.Contains(t, html, `value="1"`)
	assert.Contains(t, html, `value="5"`)
	assert.Contains(t, html, ">Poor<")
	assert.Contains(t, html, ">Excellent<")
	assert.Contains(t, html, "Scale: 1 (Low) - 5 (High)")
}

func TestRenderHTMLCheckbox(t *testing.T) {
	q := Question{
		BaseModel:    BaseModel{ID: 9},
		QuestionType: TypeCheckbox,
		Choices:      StringList{"A", "B"},
	}

	html := q.RenderHTML()
	assert.Contains(t, html, `type="checkbox"`)
	assert.Contains(t, html, `id="q9_opt0"`)
	assert.Contains(t, html, `id="q9_opt1"`)
}

func TestQuestionDuplicate(t *testing.T) {
	q := Question{
		BaseModel:    BaseModel{ID: 11},
		TemplateID:   2,
		QuestionText: "How was their teamwork?",
		QuestionType: TypeCheckbox,
		IsRequired:   true,
		Order:        3,
		Choices:      StringList{"Good", "Bad"},
		RatingLabels: LabelMap{"1": "Poor"},
	}

	copied := q.Duplicate()
	require.Equal(t, q.QuestionText, copied.QuestionText)
	require.Equal(t, q.QuestionType, copied.QuestionType)
	assert.Zero(t, copied.ID)
	assert.Zero(t, copied.TemplateID)
	assert.Equal(t, q.Order, copied.Order)

	// deep copies, mutating the original must not leak into the copy
	q.Choices[0] = "changed"
	q.RatingLabels["1"] = "changed"
	assert.Equal(t, "Good", copied.Choices[0])
	assert.Equal(t, "Poor", copied.RatingLabels["1"])
}
