package model

import "time"

// Response is the submitted answer set for a form. It is written once at
// submission time and treated as an immutable audit record.
// swagger:model Response
type Response struct {
	BaseModel
	FormID      uint      `gorm:"uniqueIndex;type:bigint unsigned" json:"formId"`
	Form        *Form     `gorm:"foreignKey:FormID" json:"form,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
	Metadata    LabelMap  `gorm:"type:json" json:"metadata,omitempty"` // ip, user agent
	Answers     []Answer  `gorm:"foreignKey:ResponseID" json:"answers,omitempty"`
}

func (Response) TableName() string {
	return "responses"
}

// Answer records a single question's value within a response. The question
// type is snapshotted so the record stays readable if the question changes.
// swagger:model Answer
type Answer struct {
	BaseModel
	ResponseID   uint         `gorm:"type:bigint unsigned;uniqueIndex:idx_response_question" json:"responseId"`
	QuestionID   uint         `gorm:"type:bigint unsigned;uniqueIndex:idx_response_question" json:"questionId"`
	QuestionType QuestionType `gorm:"size:20" json:"questionType"`
	AnswerValue  string       `gorm:"type:text" json:"answerValue"`
}

func (Answer) TableName() string {
	return "answers"
}
