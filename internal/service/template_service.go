package service

import (
	"errors"
	"fmt"

	"refcheck_backend/internal/model"
	"refcheck_backend/internal/repository"
	"refcheck_backend/internal/util"

	"gorm.io/gorm"
)

type TemplateService struct {
	Repo *repository.TemplateRepository
}

func NewTemplateService(repo *repository.TemplateRepository) *TemplateService {
	return &TemplateService{Repo: repo}
}

type QuestionRequest struct {
	QuestionText string             `json:"questionText" binding:"required,min=5"`
	QuestionType model.QuestionType `json:"questionType" binding:"required"`
	IsRequired   *bool              `json:"isRequired"`
	Order        int                `json:"order"`
	Choices      []string           `json:"choices"`
	RatingScale  int                `json:"ratingScale"`
	RatingLabels map[string]string  `json:"ratingLabels"`
	MaxLength    *int               `json:"maxLength"`
	Placeholder  string             `json:"placeholder"`
	HelpText     string             `json:"helpText"`
}

// Validate enforces the per-type settings rules: choice questions need at
// least two choices, rating scales stay within 2..10.
func (r *QuestionRequest) Validate() error {
	if !r.QuestionType.Valid() {
		return fmt.Errorf("unknown question type %q", r.QuestionType)
	}
	if r.QuestionType.HasChoices() && len(r.Choices) < 2 {
		return fmt.Errorf("%s questions must have at least 2 choices", r.QuestionType)
	}
	if r.QuestionType == model.TypeRating {
		if r.RatingScale == 0 {
			r.RatingScale = 5
		}
		if r.RatingScale < 2 || r.RatingScale > 10 {
			return errors.New("rating scale must be between 2 and 10")
		}
	}
	return nil
}

func (r *QuestionRequest) toModel() model.Question {
	q := model.Question{
		QuestionText: r.QuestionText,
		QuestionType: r.QuestionType,
		IsRequired:   true,
		Order:        r.Order,
		RatingScale:  r.RatingScale,
		MaxLength:    r.MaxLength,
		Placeholder:  r.Placeholder,
		HelpText:     r.HelpText,
	}
	if r.IsRequired != nil {
		q.IsRequired = *r.IsRequired
	}
	if q.RatingScale == 0 {
		q.RatingScale = 5
	}
	if r.QuestionType.HasChoices() {
		q.Choices = model.StringList(r.Choices)
	}
	if len(r.RatingLabels) > 0 {
		q.RatingLabels = model.LabelMap(r.RatingLabels)
	}
	return q
}

type TemplateRequest struct {
	Title        string            `json:"title" binding:"required,min=3"`
	Description  string            `json:"description"`
	Instructions string            `json:"instructions"`
	IsActive     *bool             `json:"isActive"`
	Questions    []QuestionRequest `json:"questions"`
}

func (s *TemplateService) Create(req TemplateRequest, createdBy uint) (*model.Template, error) {
	exists, err := s.Repo.TitleExists(req.Title, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateTitle
	}

	t := &model.Template{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		CreatedBy:    createdBy,
		IsActive:     true,
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	t.Questions, err = buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.CreateWithQuestions(t); err != nil {
		return nil, err
	}
	return t, nil
}

// buildQuestions validates the requests and converts them to models,
// numbering unordered questions by position.
func buildQuestions(reqs []QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, 0, len(reqs))
	for i := range reqs {
		if err := reqs[i].Validate(); err != nil {
			return nil, err
		}
		q := reqs[i].toModel()
		if q.Order == 0 {
			q.Order = i + 1
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (s *TemplateService) Get(id uint) (*model.Template, error) {
	t, err := s.Repo.FindByIDWithQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	}
	return t, err
}

type TemplateListResult struct {
	Templates []model.Template `json:"templates"`
	Total     int64            `json:"total"`
	Active    int64            `json:"active"`
	Inactive  int64            `json:"inactive"`
}

func (s *TemplateService) List(search, status string, page, limit int) (*TemplateListResult, int64, error) {
	ts, total, err := s.Repo.List(search, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	allTotal, active, inactive, err := s.Repo.CountByStatus()
	if err != nil {
		return nil, 0, err
	}

	return &TemplateListResult{
		Templates: ts,
		Total:     allTotal,
		Active:    active,
		Inactive:  inactive,
	}, total, nil
}

func (s *TemplateService) Update(id uint, req TemplateRequest) (*model.Template, error) {
	t, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	} else if err != nil {
		return nil, err
	}

	exists, err := s.Repo.TitleExists(req.Title, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrDuplicateTitle
	}

	t.Title = req.Title
	t.Description = req.Description
	t.Instructions = req.Instructions
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	// A request without a questions field updates the metadata only; a
	// present field replaces the whole question set.
	if req.Questions == nil {
		if err := s.Repo.Update(t); err != nil {
			return nil, err
		}
		return t, nil
	}

	questions, err := buildQuestions(req.Questions)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateWithQuestions(t, questions); err != nil {
		return nil, err
	}
	t.Questions = questions
	return t, nil
}

func (s *TemplateService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrTemplateNotFound
	} else if err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// Duplicate copies a template with all its questions. The copy starts
// inactive so it can be reviewed before use.
func (s *TemplateService) Duplicate(id uint, newTitle string, userID uint) (*model.Template, error) {
	original, err := s.Repo.FindByIDWithQuestions(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	} else if err != nil {
		return nil, err
	}

	copied := original.Duplicate(newTitle, userID)
	if err := s.Repo.CreateWithQuestions(copied); err != nil {
		return nil, err
	}
	return copied, nil
}

func (s *TemplateService) AddQuestion(templateID uint, req QuestionRequest) (*model.Question, error) {
	if _, err := s.Repo.FindByID(templateID); errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	} else if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	q := req.toModel()
	q.TemplateID = templateID
	if err := s.Repo.CreateQuestion(&q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *TemplateService) UpdateQuestion(templateID, questionID uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.Repo.FindQuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && q.TemplateID != templateID) {
		return nil, util.ErrQuestionNotFound
	} else if err != nil {
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	updated := req.toModel()
	updated.BaseModel = q.BaseModel
	updated.TemplateID = q.TemplateID
	if updated.Order == 0 {
		updated.Order = q.Order
	}

	if err := s.Repo.UpdateQuestion(&updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *TemplateService) RemoveQuestion(templateID, questionID uint) error {
	q, err := s.Repo.FindQuestionByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && q.TemplateID != templateID) {
		return util.ErrQuestionNotFound
	} else if err != nil {
		return err
	}
	return s.Repo.DeleteQuestion(templateID, questionID)
}
