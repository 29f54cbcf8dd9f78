package repository

import (
	"refcheck_backend/internal/model"

	"gorm.io/gorm"
)

type TemplateRepository struct {
	DB *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{DB: db}
}

func (r *TemplateRepository) Create(t *model.Template) error {
	return r.DB.Create(t).Error
}

// CreateWithQuestions saves the template and its questions in one transaction.
func (r *TemplateRepository) CreateWithQuestions(t *model.Template) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(t).Error
	})
}

func (r *TemplateRepository) FindByID(id uint) (*model.Template, error) {
	var t model.Template
	err := r.DB.First(&t, id).Error
	return &t, err
}

func (r *TemplateRepository) FindByIDWithQuestions(id uint) (*model.Template, error) {
	var t model.Template
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` asc, created_at asc")
	}).First(&t, id).Error
	return &t, err
}

func (r *TemplateRepository) List(search, status string, page, limit int) ([]model.Template, int64, error) {
	var ts []model.Template
	var total int64

	query := r.DB.Model(&model.Template{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	switch status {
	case "active":
		query = query.Where("is_active = ?", true)
	case "inactive":
		query = query.Where("is_active = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&ts).Error
	return ts, total, err
}

// CountByStatus returns total, active and inactive template counts.
func (r *TemplateRepository) CountByStatus() (total, active, inactive int64, err error) {
	if err = r.DB.Model(&model.Template{}).Count(&total).Error; err != nil {
		return
	}
	if err = r.DB.Model(&model.Template{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return
	}
	inactive = total - active
	return
}

func (r *TemplateRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Template{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

// TitleExists checks case-insensitive title uniqueness among active
// templates, excluding the given id (0 for new templates).
func (r *TemplateRepository) TitleExists(title string, excludeID uint) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Template{}).
		Where("LOWER(title) = LOWER(?)", title).
		Where("is_active = ?", true)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *TemplateRepository) Update(t *model.Template) error {
	return r.DB.Save(t).Error
}

// UpdateWithQuestions saves the template and swaps its question set for the
// given one in a single transaction.
func (r *TemplateRepository) UpdateWithQuestions(t *model.Template, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(t).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", t.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		for i := range questions {
			questions[i].ID = 0
			questions[i].TemplateID = t.ID
			if err := tx.Create(&questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes the template together with its questions and assigned forms.
func (r *TemplateRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("template_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).Delete(&model.Form{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Template{}, id).Error
	})
}

func (r *TemplateRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *TemplateRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *TemplateRepository) ListQuestions(templateID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("template_id = ?", templateID).
		Order("`order` asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *TemplateRepository) UpdateQuestion(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *TemplateRepository) DeleteQuestion(templateID, questionID uint) error {
	return r.DB.Where("template_id = ?", templateID).Delete(&model.Question{}, questionID).Error
}
