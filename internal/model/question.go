package model

import (
	"encoding/json"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

type QuestionType string

const (
	TypeText     QuestionType = "TEXT"
	TypeTextarea QuestionType = "TEXTAREA"
	TypeSelect   QuestionType = "SELECT"
	TypeRadio    QuestionType = "RADIO"
	TypeCheckbox QuestionType = "CHECKBOX"
	TypeRating   QuestionType = "RATING"
	TypeDate     QuestionType = "DATE"
	TypeEmail    QuestionType = "EMAIL"
	TypePhone    QuestionType = "PHONE"
)

// QuestionTypes lists every supported type tag.
var QuestionTypes = []QuestionType{
	TypeText, TypeTextarea, TypeSelect, TypeRadio, TypeCheckbox,
	TypeRating, TypeDate, TypeEmail, TypePhone,
}

func (t QuestionType) Valid() bool {
	for _, qt := range QuestionTypes {
		if t == qt {
			return true
		}
	}
	return false
}

// HasChoices reports whether the type is backed by a choice list.
func (t QuestionType) HasChoices() bool {
	return t == TypeSelect || t == TypeRadio || t == TypeCheckbox
}

// Question is a single question within a template, polymorphic by
// QuestionType with type-specific settings.
// swagger:model Question
type Question struct {
	BaseModel
	TemplateID   uint         `gorm:"index;type:bigint unsigned" json:"templateId"`
	QuestionText string       `gorm:"type:text;not null" json:"questionText"`
	QuestionType QuestionType `gorm:"size:20;not null;default:'TEXT'" json:"questionType"`
	IsRequired   bool         `gorm:"default:true" json:"isRequired"`
	Order        int          `gorm:"column:order;default:0" json:"order"`
	Choices      StringList   `gorm:"type:json" json:"choices"`                // SELECT/RADIO/CHECKBOX
	RatingScale  int          `gorm:"default:5" json:"ratingScale"`            // Maximum rating value
	RatingLabels LabelMap     `gorm:"type:json" json:"ratingLabels,omitempty"` // e.g. {"1": "Poor", "5": "Excellent"}
	MaxLength    *int         `json:"maxLength,omitempty"`
	Placeholder  string       `gorm:"size:255" json:"placeholder"`
	HelpText     string       `gorm:"type:text" json:"helpText"`
}

func (Question) TableName() string {
	return "questions"
}

// BeforeCreate assigns the next order within the template when unset.
func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.Order == 0 && q.TemplateID != 0 {
		var max int
		row := tx.Model(&Question{}).
			Where("template_id = ?", q.TemplateID).
			Select("COALESCE(MAX(`order`), 0)").Row()
		if err := row.Scan(&max); err == nil {
			q.Order = max + 1
		} else {
			q.Order = 1
		}
	}
	return nil
}

// Duplicate returns an unsaved copy of the question for a new template.
func (q *Question) Duplicate() Question {
	copied := Question{
		QuestionText: q.QuestionText,
		QuestionType: q.QuestionType,
		IsRequired:   q.IsRequired,
		Order:        q.Order,
		RatingScale:  q.RatingScale,
		MaxLength:    q.MaxLength,
		Placeholder:  q.Placeholder,
		HelpText:     q.HelpText,
	}
	if len(q.Choices) > 0 {
		copied.Choices = append(StringList(nil), q.Choices...)
	}
	if len(q.RatingLabels) > 0 {
		copied.RatingLabels = make(LabelMap, len(q.RatingLabels))
		for k, v := range q.RatingLabels {
			copied.RatingLabels[k] = v
		}
	}
	return copied
}

func (q *Question) hasChoice(value string) bool {
	for _, c := range q.Choices {
		if c == value {
			return true
		}
	}
	return false
}

// AnswerValues decodes a checkbox answer. Answers arrive either as a JSON
// array ("[\"a\",\"b\"]") or as a single plain value.
func AnswerValues(answer string) []string {
	trimmed := strings.TrimSpace(answer)
	if strings.HasPrefix(trimmed, "[") {
		var values []string
		if err := json.Unmarshal([]byte(trimmed), &values); err == nil {
			return values
		}
	}
	if trimmed == "" {
		return nil
	}
	return []string{answer}
}

// ValidateAnswer checks an answer value against the question's type rules.
// It returns false plus a user-facing message when the answer is rejected.
func (q *Question) ValidateAnswer(answer string) (bool, string) {
	switch q.QuestionType {
	case TypeText, TypeTextarea:
		return q.validateText(answer)
	case TypeSelect, TypeRadio:
		return q.validateSingleChoice(answer)
	case TypeCheckbox:
		return q.validateMultipleChoice(answer)
	case TypeRating:
		return q.validateRating(answer)
	case TypeEmail:
		return q.validateEmail(answer)
	case TypePhone:
		return q.validatePhone(answer)
	case TypeDate:
		return q.validateDate(answer)
	default:
		return true, ""
	}
}

func (q *Question) validateText(answer string) (bool, string) {
	if q.IsRequired && strings.TrimSpace(answer) == "" {
		return false, "This field is required"
	}
	if q.MaxLength != nil && utf8.RuneCountInString(answer) > *q.MaxLength {
		return false, fmt.Sprintf("Answer must be %d characters or less", *q.MaxLength)
	}
	return true, ""
}

func (q *Question) validateSingleChoice(answer string) (bool, string) {
	if q.IsRequired && answer == "" {
		return false, "This field is required"
	}
	if answer != "" && !q.hasChoice(answer) {
		return false, "Invalid option selected"
	}
	return true, ""
}

func (q *Question) validateMultipleChoice(answer string) (bool, string) {
	values := AnswerValues(answer)
	if q.IsRequired && len(values) == 0 {
		return false, "This field is required"
	}
	for _, v := range values {
		if !q.hasChoice(v) {
			return false, "Invalid option selected"
		}
	}
	return true, ""
}

func (q *Question) validateRating(answer string) (bool, string) {
	if answer == "" {
		if q.IsRequired {
			return false, "This field is required"
		}
		return true, ""
	}
	rating, err := strconv.Atoi(strings.TrimSpace(answer))
	if err != nil {
		return false, "Invalid rating value"
	}
	if rating < 1 || rating > q.RatingScale {
		return false, fmt.Sprintf("Rating must be between 1 and %d", q.RatingScale)
	}
	return true, ""
}

func (q *Question) validateEmail(answer string) (bool, string) {
	if q.IsRequired && strings.TrimSpace(answer) == "" {
		return false, "This field is required"
	}
	if answer != "" && !strings.Contains(answer, "@") {
		return false, "Please enter a valid email address"
	}
	return true, ""
}

func (q *Question) validatePhone(answer string) (bool, string) {
	if q.IsRequired && strings.TrimSpace(answer) == "" {
		return false, "This field is required"
	}
	if answer != "" && !strings.ContainsAny(answer, "0123456789") {
		return false, "Please enter a valid phone number"
	}
	return true, ""
}

func (q *Question) validateDate(answer string) (bool, string) {
	if answer == "" {
		if q.IsRequired {
			return false, "This field is required"
		}
		return true, ""
	}
	if _, err := time.Parse("2006-01-02", answer); err != nil {
		return false, "Please enter a valid date"
	}
	return true, ""
}

// RenderHTML returns the bootstrap-flavoured input markup for the question,
// used by the referee-facing form page.
func (q *Question) RenderHTML() string {
	switch q.QuestionType {
	case TypeTextarea:
		return q.renderTextarea()
	case TypeSelect:
		return q.renderSelect()
	case TypeRadio:
		return q.renderRadio()
	case TypeCheckbox:
		return q.renderCheckbox()
	case TypeRating:
		return q.renderRating()
	case TypeEmail:
		return q.renderInput("email", q.placeholderOr("email@example.com"))
	case TypePhone:
		return q.renderInput("tel", q.placeholderOr("+60123456789"))
	case TypeDate:
		return q.renderInput("date", "")
	default:
		return q.renderInput("text", q.Placeholder)
	}
}

func (q *Question) fieldName() string {
	return fmt.Sprintf("question_%d", q.ID)
}

func (q *Question) requiredAttr() string {
	if q.IsRequired {
		return " required"
	}
	return ""
}

func (q *Question) placeholderOr(fallback string) string {
	if q.Placeholder != "" {
		return q.Placeholder
	}
	return fallback
}

func (q *Question) renderInput(inputType, placeholder string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<input type=%q name=%q class="form-control"%s`, inputType, q.fieldName(), q.requiredAttr())
	if placeholder != "" {
		fmt.Fprintf(&b, ` placeholder=%q`, html.EscapeString(placeholder))
	}
	if q.MaxLength != nil {
		fmt.Fprintf(&b, ` maxlength="%d"`, *q.MaxLength)
	}
	b.WriteString(">")
	return b.String()
}

func (q *Question) renderTextarea() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<textarea name=%q class="form-control" rows="4"%s`, q.fieldName(), q.requiredAttr())
	if q.Placeholder != "" {
		fmt.Fprintf(&b, ` placeholder=%q`, html.EscapeString(q.Placeholder))
	}
	if q.MaxLength != nil {
		fmt.Fprintf(&b, ` maxlength="%d"`, *q.MaxLength)
	}
	b.WriteString("></textarea>")
	return b.String()
}

func (q *Question) renderSelect() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<select name=%q class="form-select"%s>`, q.fieldName(), q.requiredAttr())
	if !q.IsRequired {
		b.WriteString(`<option value="">-- Select an option --</option>`)
	}
	for _, option := range q.Choices {
		escaped := html.EscapeString(option)
		fmt.Fprintf(&b, `<option value=%q>%s</option>`, escaped, escaped)
	}
	b.WriteString("</select>")
	return b.String()
}

func (q *Question) renderRadio() string {
	var b strings.Builder
	for i, option := range q.Choices {
		escaped := html.EscapeString(option)
		fmt.Fprintf(&b,
			`<div class="form-check"><input class="form-check-input" type="radio" name=%q value=%q id="q%d_opt%d"%s><label class="form-check-label" for="q%d_opt%d">%s</label></div>`,
			q.fieldName(), escaped, q.ID, i, q.requiredAttr(), q.ID, i, escaped)
	}
	return b.String()
}

func (q *Question) renderCheckbox() string {
	var b strings.Builder
	for i, option := range q.Choices {
		escaped := html.EscapeString(option)
		fmt.Fprintf(&b,
			`<div class="form-check"><input class="form-check-input" type="checkbox" name=%q value=%q id="q%d_opt%d"><label class="form-check-label" for="q%d_opt%d">%s</label></div>`,
			q.fieldName(), escaped, q.ID, i, q.ID, i, escaped)
	}
	return b.String()
}

func (q *Question) renderRating() string {
	var b strings.Builder
	b.WriteString(`<div class="rating-scale">`)
	for i := 1; i <= q.RatingScale; i++ {
		label := strconv.Itoa(i)
		if l, ok := q.RatingLabels[label]; ok && l != "" {
			label = html.EscapeString(l)
		}
		fmt.Fprintf(&b,
			`<div class="form-check form-check-inline"><input class="form-check-input" type="radio" name=%q value="%d" id="q%d_rate%d"%s><label class="form-check-label" for="q%d_rate%d">%s</label></div>`,
			q.fieldName(), i, q.ID, i, q.requiredAttr(), q.ID, i, label)
	}
	fmt.Fprintf(&b, `</div><small class="form-text text-muted">Scale: 1 (Low) - %d (High)</small>`, q.RatingScale)
	return b.String()
}
