package repository

import (
	"time"

	"refcheck_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// CreateWithAnswers writes the response, its answers and the form status
// flip in a single transaction. A response is created exactly once.
func (r *ResponseRepository) CreateWithAnswers(response *model.Response, forms *FormRepository) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(response).Error; err != nil {
			return err
		}
		return forms.MarkCompleted(tx, response.FormID, response.SubmittedAt)
	})
}

func (r *ResponseRepository) FindByID(id uint) (*model.Response, error) {
	var response model.Response
	err := r.DB.Preload("Form").Preload("Form.Template").Preload("Form.Referee").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id asc")
		}).
		First(&response, id).Error
	return &response, err
}

func (r *ResponseRepository) FindByFormID(formID uint) (*model.Response, error) {
	var response model.Response
	err := r.DB.Where("form_id = ?", formID).First(&response).Error
	return &response, err
}

func (r *ResponseRepository) List(templateID uint, page, limit int) ([]model.Response, int64, error) {
	var responses []model.Response
	var total int64

	query := r.DB.Model(&model.Response{})
	if templateID > 0 {
		query = query.Joins("JOIN forms ON forms.id = responses.form_id").
			Where("forms.template_id = ?", templateID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Form").Preload("Form.Template").Preload("Form.Referee").
		Order("responses.submitted_at desc").Offset(offset).Limit(limit).Find(&responses).Error
	return responses, total, err
}

// ListByTemplate returns all responses for a template with answers loaded,
// oldest first, for spreadsheet export.
func (r *ResponseRepository) ListByTemplate(templateID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.DB.Joins("JOIN forms ON forms.id = responses.form_id").
		Where("forms.template_id = ?", templateID).
		Preload("Form").Preload("Form.Referee").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("question_id asc")
		}).
		Order("responses.submitted_at asc").Find(&responses).Error
	return responses, err
}

func (r *ResponseRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).Count(&count).Error
	return count, err
}

func (r *ResponseRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Response{}).Where("submitted_at >= ?", since).Count(&count).Error
	return count, err
}
