package repository

import (
	"errors"
	"time"

	"refcheck_backend/internal/model"

	"gorm.io/gorm"
)

type FormRepository struct {
	DB *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{DB: db}
}

// Create inserts the form. On the unlikely token collision the token is
// regenerated and the insert retried.
func (r *FormRepository) Create(form *model.Form) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = r.DB.Create(form).Error
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		form.Token = ""
		form.ID = 0
	}
	return err
}

func (r *FormRepository) FindByID(id uint) (*model.Form, error) {
	var form model.Form
	err := r.DB.Preload("Template").Preload("Referee").First(&form, id).Error
	return &form, err
}

func (r *FormRepository) FindByToken(token string) (*model.Form, error) {
	var form model.Form
	err := r.DB.Preload("Template").Preload("Referee").
		Where("token = ?", token).First(&form).Error
	return &form, err
}

func (r *FormRepository) List(status string, templateID, refereeID uint, page, limit int) ([]model.Form, int64, error) {
	var forms []model.Form
	var total int64

	query := r.DB.Model(&model.Form{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if templateID > 0 {
		query = query.Where("template_id = ?", templateID)
	}
	if refereeID > 0 {
		query = query.Where("referee_id = ?", refereeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Preload("Template").Preload("Referee").
		Order("created_at desc").Offset(offset).Limit(limit).Find(&forms).Error
	return forms, total, err
}

func (r *FormRepository) ListByReferee(refereeID uint) ([]model.Form, error) {
	var forms []model.Form
	err := r.DB.Preload("Template").
		Where("referee_id = ?", refereeID).
		Order("created_at desc").Find(&forms).Error
	return forms, err
}

func (r *FormRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Form{}).Count(&count).Error
	return count, err
}

func (r *FormRepository) CountByStatus(status model.FormStatus) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Form{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// MarkCompleted transitions the form to COMPLETED inside the given
// transaction. Only pending forms are affected.
func (r *FormRepository) MarkCompleted(tx *gorm.DB, formID uint, submittedAt time.Time) error {
	result := tx.Model(&model.Form{}).
		Where("id = ? AND status = ?", formID, model.FormPending).
		Updates(map[string]interface{}{
			"status":       model.FormCompleted,
			"submitted_at": submittedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FormRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Form{}, id).Error
}
