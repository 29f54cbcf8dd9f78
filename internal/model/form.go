package model

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type FormStatus string

const (
	FormPending   FormStatus = "PENDING"
	FormCompleted FormStatus = "COMPLETED"
)

const tokenBytes = 32

// Form is the assignment of a template to a referee, reachable through a
// unique access token.
// swagger:model Form
type Form struct {
	BaseModel
	TemplateID  uint       `gorm:"index;type:bigint unsigned" json:"templateId"`
	Template    *Template  `gorm:"foreignKey:TemplateID" json:"template,omitempty"`
	RefereeID   uint       `gorm:"index;type:bigint unsigned" json:"refereeId"`
	Referee     *Referee   `gorm:"foreignKey:RefereeID" json:"referee,omitempty"`
	Token       string     `gorm:"size:64;uniqueIndex;<-:create" json:"token"`
	Status      FormStatus `gorm:"size:20;default:'PENDING'" json:"status"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

func (Form) TableName() string {
	return "forms"
}

// GenerateToken returns a URL-safe random access token.
func GenerateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// BeforeCreate sets the access token once. The column is create-only, so
// the token never changes afterwards.
func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.Token == "" {
		token, err := GenerateToken()
		if err != nil {
			return err
		}
		f.Token = token
	}
	return nil
}

// AccessURL builds the public link sent to the referee.
func (f *Form) AccessURL(baseURL string) string {
	return fmt.Sprintf("%s/form/%s/", baseURL, f.Token)
}

// IsExpired reports whether the form link has passed its validity window.
func (f *Form) IsExpired(window time.Duration) bool {
	return time.Now().After(f.CreatedAt.Add(window))
}
