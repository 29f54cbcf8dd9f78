package service

import (
	"errors"

	"refcheck_backend/internal/config"
	"refcheck_backend/internal/model"
	"refcheck_backend/internal/repository"
	"refcheck_backend/internal/util"

	"gorm.io/gorm"
)

type FormService struct {
	Repo         *repository.FormRepository
	TemplateRepo *repository.TemplateRepository
	RefereeRepo  *repository.RefereeRepository
	ResponseRepo *repository.ResponseRepository
	Cfg          *config.Config
}

func NewFormService(repo *repository.FormRepository, templateRepo *repository.TemplateRepository, refereeRepo *repository.RefereeRepository, responseRepo *repository.ResponseRepository, cfg *config.Config) *FormService {
	return &FormService{
		Repo:         repo,
		TemplateRepo: templateRepo,
		RefereeRepo:  refereeRepo,
		ResponseRepo: responseRepo,
		Cfg:          cfg,
	}
}

type AssignFormRequest struct {
	TemplateID uint `json:"templateId" binding:"required"`
	RefereeID  uint `json:"refereeId" binding:"required"`
}

// FormView is a form plus its referee-facing access URL. ResponseID is
// set once the form has been completed.
type FormView struct {
	model.Form
	AccessURL  string `json:"accessUrl"`
	ResponseID uint   `json:"responseId,omitempty"`
}

func (s *FormService) view(form *model.Form) *FormView {
	return &FormView{
		Form:      *form,
		AccessURL: form.AccessURL(s.Cfg.Form.BaseURL),
	}
}

// Assign creates a form for an active template and referee. The token is
// generated on create and never changes.
func (s *FormService) Assign(req AssignFormRequest) (*FormView, error) {
	template, err := s.TemplateRepo.FindByID(req.TemplateID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTemplateNotFound
	} else if err != nil {
		return nil, err
	}
	if !template.IsActive {
		return nil, util.ErrTemplateInactive
	}

	referee, err := s.RefereeRepo.FindByID(req.RefereeID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRefereeNotFound
	} else if err != nil {
		return nil, err
	}
	if !referee.IsActive {
		return nil, util.ErrRefereeInactive
	}

	form := &model.Form{
		TemplateID: req.TemplateID,
		RefereeID:  req.RefereeID,
		Status:     model.FormPending,
	}
	if err := s.Repo.Create(form); err != nil {
		return nil, err
	}

	form.Template = template
	form.Referee = referee
	return s.view(form), nil
}

func (s *FormService) Get(id uint) (*FormView, error) {
	form, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrFormNotFound
	} else if err != nil {
		return nil, err
	}

	view := s.view(form)
	if form.Status == model.FormCompleted {
		if response, err := s.ResponseRepo.FindByFormID(form.ID); err == nil {
			view.ResponseID = response.ID
		}
	}
	return view, nil
}

func (s *FormService) List(status string, templateID, refereeID uint, page, limit int) ([]FormView, int64, error) {
	forms, total, err := s.Repo.List(status, templateID, refereeID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]FormView, len(forms))
	for i := range forms {
		views[i] = *s.view(&forms[i])
	}
	return views, total, nil
}

// Delete removes an assignment. Completed forms carry a response and are
// kept as audit records.
func (s *FormService) Delete(id uint) error {
	form, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrFormNotFound
	} else if err != nil {
		return err
	}

	if form.Status != model.FormPending {
		return util.ErrFormNotPending
	}
	return s.Repo.Delete(id)
}
