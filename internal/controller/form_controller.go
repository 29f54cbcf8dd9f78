package controller

import (
	"errors"
	"net/http"
	"strconv"

	"refcheck_backend/internal/service"
	"refcheck_backend/internal/util"
	"refcheck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type FormController struct {
	FormService     *service.FormService
	ResponseService *service.ResponseService
}

func NewFormController(formService *service.FormService, responseService *service.ResponseService) *FormController {
	return &FormController{
		FormService:     formService,
		ResponseService: responseService,
	}
}

// Assign godoc
// @Summary Assign a template to a referee
// @Description Creates a form with a fresh access token. The link is returned once here.
// @Tags forms
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   body body service.AssignFormRequest true "assignment payload"
// @Success 201 {object} util.Response{data=service.FormView}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/forms [post]
func (c *FormController) Assign(ctx *gin.Context) {
	var req service.AssignFormRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	form, err := c.FormService.Assign(req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTemplateNotFound), errors.Is(err, util.ErrRefereeNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		case errors.Is(err, util.ErrTemplateInactive), errors.Is(err, util.ErrRefereeInactive):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, form)
}

// List godoc
// @Summary List assigned forms
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param   status query string false "PENDING or COMPLETED"
// @Param   templateId query int false "filter by template"
// @Param   refereeId query int false "filter by referee"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/forms [get]
func (c *FormController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	status := ctx.Query("status")

	var templateID, refereeID uint
	if v, err := strconv.Atoi(ctx.Query("templateId")); err == nil && v > 0 {
		templateID = uint(v)
	}
	if v, err := strconv.Atoi(ctx.Query("refereeId")); err == nil && v > 0 {
		refereeID = uint(v)
	}

	forms, total, err := c.FormService.List(status, templateID, refereeID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  forms,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Get a form with its access link
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param   id path int true "form id"
// @Success 200 {object} util.Response{data=service.FormView}
// @Failure 404 {object} util.Response
// @Router /api/forms/{id} [get]
func (c *FormController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid form id")
		return
	}

	form, err := c.FormService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrFormNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, form)
}

// Delete godoc
// @Summary Revoke a pending form
// @Description Completed forms cannot be deleted; their responses are permanent.
// @Tags forms
// @Produce json
// @Security BearerAuth
// @Param   id path int true "form id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/forms/{id} [delete]
func (c *FormController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid form id")
		return
	}

	if err := c.FormService.Delete(uint(id)); err != nil {
		switch {
		case errors.Is(err, util.ErrFormNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrFormNotPending):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

// ViewForm godoc
// @Summary Public form view for referees
// @Description No authentication; the token is the credential.
// @Tags public
// @Produce json
// @Param   token path string true "form access token"
// @Success 200 {object} util.Response{data=service.PublicFormView}
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /form/{token} [get]
func (c *FormController) ViewForm(ctx *gin.Context) {
	token := ctx.Param("token")

	view, err := c.ResponseService.GetFormByToken(ctx.Request.Context(), token)
	if err != nil {
		c.publicFormError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// SubmitForm godoc
// @Summary Submit a completed reference form
// @Tags public
// @Accept  json
// @Produce json
// @Param   token path string true "form access token"
// @Param   body body service.SubmitRequest true "answers"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "validation errors, keyed by question id"
// @Failure 404 {object} util.Response
// @Failure 410 {object} util.Response
// @Router /form/{token}/submit [post]
func (c *FormController) SubmitForm(ctx *gin.Context) {
	token := ctx.Param("token")

	var req service.SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	metadata := map[string]string{
		"ip":         ctx.ClientIP(),
		"user_agent": ctx.Request.UserAgent(),
	}

	response, fieldErrors, err := c.ResponseService.Submit(ctx.Request.Context(), token, req, metadata)
	if err != nil {
		monitoring.FormSubmissionCounter.WithLabelValues("error").Inc()
		c.publicFormError(ctx, err)
		return
	}
	if len(fieldErrors) > 0 {
		monitoring.FormSubmissionCounter.WithLabelValues("invalid").Inc()
		util.ValidationFailed(ctx, fieldErrors)
		return
	}

	monitoring.FormSubmissionCounter.WithLabelValues("success").Inc()
	util.Created(ctx, gin.H{
		"id":          response.ID,
		"submittedAt": response.SubmittedAt,
	})
}

func (c *FormController) publicFormError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrFormNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrFormCompleted):
		util.Error(ctx, http.StatusGone, err.Error())
	case errors.Is(err, util.ErrFormExpired):
		util.Error(ctx, http.StatusGone, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
