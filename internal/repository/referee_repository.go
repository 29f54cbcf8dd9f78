package repository

import (
	"refcheck_backend/internal/model"

	"gorm.io/gorm"
)

type RefereeRepository struct {
	DB *gorm.DB
}

func NewRefereeRepository(db *gorm.DB) *RefereeRepository {
	return &RefereeRepository{DB: db}
}

func (r *RefereeRepository) Create(referee *model.Referee) error {
	return r.DB.Create(referee).Error
}

func (r *RefereeRepository) FindByID(id uint) (*model.Referee, error) {
	var referee model.Referee
	err := r.DB.First(&referee, id).Error
	return &referee, err
}

func (r *RefereeRepository) List(search, status string, page, limit int) ([]model.Referee, int64, error) {
	var referees []model.Referee
	var total int64

	query := r.DB.Model(&model.Referee{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"name LIKE ? OR email LIKE ? OR applicant_name LIKE ? OR relationship LIKE ?",
			like, like, like, like,
		)
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
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&referees).Error
	return referees, total, err
}

func (r *RefereeRepository) CountByStatus() (total, active, inactive int64, err error) {
	if err = r.DB.Model(&model.Referee{}).Count(&total).Error; err != nil {
		return
	}
	if err = r.DB.Model(&model.Referee{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return
	}
	inactive = total - active
	return
}

func (r *RefereeRepository) CountActive() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Referee{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

func (r *RefereeRepository) Update(referee *model.Referee) error {
	return r.DB.Save(referee).Error
}

// Deactivate soft deletes a referee by flipping is_active.
func (r *RefereeRepository) Deactivate(id uint) error {
	return r.DB.Model(&model.Referee{}).Where("id = ?", id).Update("is_active", false).Error
}
