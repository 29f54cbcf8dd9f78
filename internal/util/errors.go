package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrTemplateNotFound   = errors.New("template not found")
	ErrTemplateInactive   = errors.New("template is inactive")
	ErrDuplicateTitle     = errors.New("a template with this title already exists")
	ErrQuestionNotFound   = errors.New("question not found")
	ErrRefereeNotFound    = errors.New("referee not found")
	ErrRefereeInactive    = errors.New("referee is inactive")
	ErrFormNotFound       = errors.New("form not found")
	ErrFormCompleted      = errors.New("form already submitted")
	ErrFormExpired        = errors.New("form link has expired")
	ErrFormNotPending     = errors.New("only pending forms can be deleted")
	ErrResponseNotFound   = errors.New("response not found")
	ErrInvalidPhoneNumber = errors.New("phone number must be entered in the format '+999999999', up to 15 digits")
)
