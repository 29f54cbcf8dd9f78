package model

// Template is a reusable set of ordered questions sent to referees.
// swagger:model Template
type Template struct {
	BaseModel
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	Instructions string     `gorm:"type:text" json:"instructions"` // Shown to referees before filling the form
	CreatedBy    uint       `gorm:"index;type:bigint unsigned" json:"createdBy"`
	Creator      *User      `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"isActive"`
	Questions    []Question `gorm:"foreignKey:TemplateID" json:"questions,omitempty"`
}

func (Template) TableName() string {
	return "templates"
}

// Duplicate returns an unsaved copy of the template and all its questions.
// The copy starts inactive so it can be reviewed before use.
func (t *Template) Duplicate(newTitle string, newUser uint) *Template {
	if newTitle == "" {
		newTitle = t.Title + " (Copy)"
	}
	if newUser == 0 {
		newUser = t.CreatedBy
	}

	copied := &Template{
		Title:        newTitle,
		Description:  t.Description,
		Instructions: t.Instructions,
		CreatedBy:    newUser,
		IsActive:     false,
	}

	copied.Questions = make([]Question, len(t.Questions))
	for i := range t.Questions {
		copied.Questions[i] = t.Questions[i].Duplicate()
	}

	return copied
}
