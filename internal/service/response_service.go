package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"refcheck_backend/internal/config"
	"refcheck_backend/internal/model"
	"refcheck_backend/internal/repository"
	"refcheck_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const formViewCachePrefix = "refcheck:form:view:"
const formViewCacheTTL = 5 * time.Minute

type ResponseService struct {
	Repo         *repository.ResponseRepository
	FormRepo     *repository.FormRepository
	TemplateRepo *repository.TemplateRepository
	Redis        *redis.Client
	Cfg          *config.Config
}

func NewResponseService(repo *repository.ResponseRepository, formRepo *repository.FormRepository, templateRepo *repository.TemplateRepository, rdb *redis.Client, cfg *config.Config) *ResponseService {
	return &ResponseService{
		Repo:         repo,
		FormRepo:     formRepo,
		TemplateRepo: templateRepo,
		Redis:        rdb,
		Cfg:          cfg,
	}
}

// PublicQuestion is a question as shown to the referee, with its rendered
// input markup. Correct-answer style fields never leave the server.
type PublicQuestion struct {
	ID           uint               `json:"id"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	IsRequired   bool               `json:"isRequired"`
	Order        int                `json:"order"`
	HelpText     string             `json:"helpText,omitempty"`
	HTML         string             `json:"html"`
}

// PublicFormView is the referee-facing payload for a tokenized form link.
type PublicFormView struct {
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	Instructions  string           `json:"instructions,omitempty"`
	RefereeName   string           `json:"refereeName"`
	ApplicantName string           `json:"applicantName"`
	Questions     []PublicQuestion `json:"questions"`
}

// lookupForm resolves a token and applies the access rules shared by the
// public fetch and submit paths.
func (s *ResponseService) lookupForm(token string) (*model.Form, error) {
	form, err := s.FormRepo.FindByToken(token)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrFormNotFound
	} else if err != nil {
		return nil, err
	}

	if form.Status == model.FormCompleted {
		return nil, util.ErrFormCompleted
	}
	if form.IsExpired(s.Cfg.Form.Expiry) {
		return nil, util.ErrFormExpired
	}
	return form, nil
}

// GetFormByToken returns the public view for a pending, unexpired form.
// The rendered payload is cached briefly in Redis; status and expiry are
// always re-checked against the database.
func (s *ResponseService) GetFormByToken(ctx context.Context, token string) (*PublicFormView, error) {
	form, err := s.lookupForm(token)
	if err != nil {
		return nil, err
	}

	cacheKey := formViewCachePrefix + token
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var view PublicFormView
			if json.Unmarshal([]byte(cached), &view) == nil {
				return &view, nil
			}
		}
	}

	questions, err := s.TemplateRepo.ListQuestions(form.TemplateID)
	if err != nil {
		return nil, err
	}

	view := &PublicFormView{
		Title:         form.Template.Title,
		Description:   form.Template.Description,
		Instructions:  form.Template.Instructions,
		RefereeName:   form.Referee.Name,
		ApplicantName: form.Referee.ApplicantName,
		Questions:     make([]PublicQuestion, len(questions)),
	}
	for i := range questions {
		q := &questions[i]
		view.Questions[i] = PublicQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			QuestionType: q.QuestionType,
			IsRequired:   q.IsRequired,
			Order:        q.Order,
			HelpText:     q.HelpText,
			HTML:         q.RenderHTML(),
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(view); err == nil {
			s.Redis.Set(ctx, cacheKey, payload, formViewCacheTTL)
		}
	}

	return view, nil
}

// AnswerInput is one submitted answer. Checkbox questions send Values,
// everything else sends Value.
type AnswerInput struct {
	QuestionID uint     `json:"questionId" binding:"required"`
	Value      string   `json:"value"`
	Values     []string `json:"values"`
}

// canonical returns the stored representation: multi-value answers become
// a JSON array string, matching the single answer_value column.
func (a *AnswerInput) canonical() string {
	if len(a.Values) > 0 {
		b, err := json.Marshal(a.Values)
		if err == nil {
			return string(b)
		}
	}
	return a.Value
}

type SubmitRequest struct {
	Answers []AnswerInput `json:"answers" binding:"required"`
}

// ValidateAnswers checks every submitted answer against the template's
// questions. It returns field-level errors keyed by question id, and the
// answer rows to persist when validation passes. Answers referencing
// questions outside the template are rejected.
func ValidateAnswers(questions []model.Question, answers []AnswerInput) (map[uint]string, []model.Answer) {
	byID := make(map[uint]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	submitted := make(map[uint]string, len(answers))
	fieldErrors := make(map[uint]string)
	for i := range answers {
		a := &answers[i]
		if _, ok := byID[a.QuestionID]; !ok {
			fieldErrors[a.QuestionID] = "Question not found"
			continue
		}
		submitted[a.QuestionID] = a.canonical()
	}

	rows := make([]model.Answer, 0, len(questions))
	for i := range questions {
		q := &questions[i]
		value := submitted[q.ID]
		if ok, msg := q.ValidateAnswer(value); !ok {
			fieldErrors[q.ID] = msg
			continue
		}
		rows = append(rows, model.Answer{
			QuestionID:   q.ID,
			QuestionType: q.QuestionType,
			AnswerValue:  value,
		})
	}

	if len(fieldErrors) > 0 {
		return fieldErrors, nil
	}
	return nil, rows
}

// Submit records a response for a pending form. The response, its answers
// and the form's move to COMPLETED happen in one transaction; a second
// submission fails on the form's unique response.
func (s *ResponseService) Submit(ctx context.Context, token string, req SubmitRequest, metadata map[string]string) (*model.Response, map[uint]string, error) {
	form, err := s.lookupForm(token)
	if err != nil {
		return nil, nil, err
	}

	questions, err := s.TemplateRepo.ListQuestions(form.TemplateID)
	if err != nil {
		return nil, nil, err
	}

	fieldErrors, rows := ValidateAnswers(questions, req.Answers)
	if len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	response := &model.Response{
		FormID:      form.ID,
		SubmittedAt: time.Now(),
		Metadata:    model.LabelMap(metadata),
		Answers:     rows,
	}

	if err := s.Repo.CreateWithAnswers(response, s.FormRepo); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, util.ErrFormCompleted
		}
		return nil, nil, err
	}

	if s.Redis != nil {
		s.Redis.Del(ctx, formViewCachePrefix+token)
	}

	return response, nil, nil
}

// AnswerView joins an answer with its question text for display.
type AnswerView struct {
	QuestionID   uint               `json:"questionId"`
	QuestionText string             `json:"questionText"`
	QuestionType model.QuestionType `json:"questionType"`
	AnswerValue  string             `json:"answerValue"`
}

type ResponseDetail struct {
	ID            uint           `json:"id"`
	FormID        uint           `json:"formId"`
	TemplateTitle string         `json:"templateTitle"`
	RefereeName   string         `json:"refereeName"`
	RefereeEmail  string         `json:"refereeEmail"`
	ApplicantName string         `json:"applicantName"`
	SubmittedAt   time.Time      `json:"submittedAt"`
	Metadata      model.LabelMap `json:"metadata,omitempty"`
	Answers       []AnswerView   `json:"answers"`
}

// Get returns a response with question text joined in. Questions deleted
// since submission fall back to a placeholder.
func (s *ResponseService) Get(id uint) (*ResponseDetail, error) {
	response, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrResponseNotFound
	} else if err != nil {
		return nil, err
	}
	return s.detail(response)
}

// detail joins question text into the stored answers. The form, template
// and referee may have been soft-deleted since submission, so every preloaded
// association is optional; answers then fall back to the placeholder text.
func (s *ResponseService) detail(response *model.Response) (*ResponseDetail, error) {
	detail := &ResponseDetail{
		ID:          response.ID,
		FormID:      response.FormID,
		SubmittedAt: response.SubmittedAt,
		Metadata:    response.Metadata,
		Answers:     make([]AnswerView, len(response.Answers)),
	}

	textByID := make(map[uint]string)
	if response.Form != nil {
		questions, err := s.TemplateRepo.ListQuestions(response.Form.TemplateID)
		if err != nil {
			return nil, err
		}
		for _, q := range questions {
			textByID[q.ID] = q.QuestionText
		}
		if response.Form.Template != nil {
			detail.TemplateTitle = response.Form.Template.Title
		}
		if response.Form.Referee != nil {
			detail.RefereeName = response.Form.Referee.Name
			detail.RefereeEmail = response.Form.Referee.Email
			detail.ApplicantName = response.Form.Referee.ApplicantName
		}
	}
	for i, a := range response.Answers {
		text, ok := textByID[a.QuestionID]
		if !ok {
			text = fmt.Sprintf("Question %d", a.QuestionID)
		}
		detail.Answers[i] = AnswerView{
			QuestionID:   a.QuestionID,
			QuestionText: text,
			QuestionType: a.QuestionType,
			AnswerValue:  a.AnswerValue,
		}
	}
	return detail, nil
}

type ResponseSummary struct {
	ID            uint      `json:"id"`
	FormID        uint      `json:"formId"`
	TemplateTitle string    `json:"templateTitle"`
	RefereeName   string    `json:"refereeName"`
	ApplicantName string    `json:"applicantName"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

func (s *ResponseService) List(templateID uint, page, limit int) ([]ResponseSummary, int64, error) {
	responses, total, err := s.Repo.List(templateID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ResponseSummary, len(responses))
	for i := range responses {
		r := &responses[i]
		summaries[i] = ResponseSummary{
			ID:          r.ID,
			FormID:      r.FormID,
			SubmittedAt: r.SubmittedAt,
		}
		if r.Form != nil {
			if r.Form.Template != nil {
				summaries[i].TemplateTitle = r.Form.Template.Title
			}
			if r.Form.Referee != nil {
				summaries[i].RefereeName = r.Form.Referee.Name
				summaries[i].ApplicantName = r.Form.Referee.ApplicantName
			}
		}
	}
	return summaries, total, nil
}
