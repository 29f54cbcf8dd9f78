package service

import (
	"errors"

	"refcheck_backend/internal/model"
	"refcheck_backend/internal/repository"
	"refcheck_backend/internal/util"

	"gorm.io/gorm"
)

type RefereeService struct {
	Repo     *repository.RefereeRepository
	FormRepo *repository.FormRepository
}

func NewRefereeService(repo *repository.RefereeRepository, formRepo *repository.FormRepository) *RefereeService {
	return &RefereeService{Repo: repo, FormRepo: formRepo}
}

type RefereeRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	Relationship  string `json:"relationship" binding:"required"`
	ApplicantName string `json:"applicantName" binding:"required"`
	IsActive      *bool  `json:"isActive"`
}

func (s *RefereeService) Create(req RefereeRequest) (*model.Referee, error) {
	if !model.ValidPhone(req.Phone) {
		return nil, util.ErrInvalidPhoneNumber
	}

	referee := &model.Referee{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Relationship:  req.Relationship,
		ApplicantName: req.ApplicantName,
		IsActive:      true,
	}
	if req.IsActive != nil {
		referee.IsActive = *req.IsActive
	}

	if err := s.Repo.Create(referee); err != nil {
		return nil, err
	}
	return referee, nil
}

func (s *RefereeService) Get(id uint) (*model.Referee, error) {
	referee, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrRefereeNotFound
	}
	return referee, err
}

// GetWithForms returns a referee along with all forms assigned to them.
func (s *RefereeService) GetWithForms(id uint) (*model.Referee, []model.Form, error) {
	referee, err := s.Get(id)
	if err != nil {
		return nil, nil, err
	}

	forms, err := s.FormRepo.ListByReferee(id)
	if err != nil {
		return nil, nil, err
	}
	return referee, forms, nil
}

type RefereeListResult struct {
	Referees []model.Referee `json:"referees"`
	Total    int64           `json:"total"`
	Active   int64           `json:"active"`
	Inactive int64           `json:"inactive"`
}

func (s *RefereeService) List(search, status string, page, limit int) (*RefereeListResult, int64, error) {
	referees, total, err := s.Repo.List(search, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	allTotal, active, inactive, err := s.Repo.CountByStatus()
	if err != nil {
		return nil, 0, err
	}

	return &RefereeListResult{
		Referees: referees,
		Total:    allTotal,
		Active:   active,
		Inactive: inactive,
	}, total, nil
}

func (s *RefereeService) Update(id uint, req RefereeRequest) (*model.Referee, error) {
	referee, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if !model.ValidPhone(req.Phone) {
		return nil, util.ErrInvalidPhoneNumber
	}

	referee.Name = req.Name
	referee.Email = req.Email
	referee.Phone = req.Phone
	referee.Relationship = req.Relationship
	referee.ApplicantName = req.ApplicantName
	if req.IsActive != nil {
		referee.IsActive = *req.IsActive
	}

	if err := s.Repo.Update(referee); err != nil {
		return nil, err
	}
	return referee, nil
}

// Deactivate is a soft delete, the referee record and its forms stay.
func (s *RefereeService) Deactivate(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Deactivate(id)
}
