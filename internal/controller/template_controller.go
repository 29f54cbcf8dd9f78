package controller

import (
	"errors"
	"net/http"
	"strconv"

	"refcheck_backend/internal/service"
	"refcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	TemplateService *service.TemplateService
}

func NewTemplateController(templateService *service.TemplateService) *TemplateController {
	return &TemplateController{TemplateService: templateService}
}

// Create godoc
// @Summary Create a question template
// @Tags templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   body body service.TemplateRequest true "template payload"
// @Success 201 {object} util.Response{data=model.Template}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/templates [post]
func (c *TemplateController) Create(ctx *gin.Context) {
	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	t, err := c.TemplateService.Create(req, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrDuplicateTitle) {
			util.Error(ctx, http.StatusConflict, err.Error())
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, t)
}

// List godoc
// @Summary List question templates
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param   search query string false "search in title and description"
// @Param   status query string false "active or inactive"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/templates [get]
func (c *TemplateController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	search := ctx.Query("search")
	status := ctx.Query("status")

	result, total, err := c.TemplateService.List(search, status, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  result,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Get a template with its questions
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Success 200 {object} util.Response{data=model.Template}
// @Failure 404 {object} util.Response
// @Router /api/templates/{id} [get]
func (c *TemplateController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}

	t, err := c.TemplateService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, t)
}

// Update godoc
// @Summary Update template title, description and active flag
// @Tags templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Param   body body service.TemplateRequest true "template payload"
// @Success 200 {object} util.Response{data=model.Template}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/templates/{id} [put]
func (c *TemplateController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}

	var req service.TemplateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	t, err := c.TemplateService.Update(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTemplateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrDuplicateTitle):
			util.Error(ctx, http.StatusConflict, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, t)
}

// Delete godoc
// @Summary Delete a template and everything assigned from it
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/templates/{id} [delete]
func (c *TemplateController) Delete(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}

	if err := c.TemplateService.Delete(uint(id)); err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}

type DuplicateTemplateRequest struct {
	Title string `json:"title"`
}

// Duplicate godoc
// @Summary Duplicate a template with all its questions
// @Tags templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Param   body body DuplicateTemplateRequest false "optional new title"
// @Success 201 {object} util.Response{data=model.Template}
// @Failure 404 {object} util.Response
// @Router /api/templates/{id}/duplicate [post]
func (c *TemplateController) Duplicate(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}

	var req DuplicateTemplateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	copied, err := c.TemplateService.Duplicate(uint(id), req.Title, claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, copied)
}

// AddQuestion godoc
// @Summary Add a question to a template
// @Tags templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Param   body body service.QuestionRequest true "question payload"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/templates/{id}/questions [post]
func (c *TemplateController) AddQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.TemplateService.AddQuestion(uint(id), req)
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Tags templates
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Param   questionId path int true "question id"
// @Param   body body service.QuestionRequest true "question payload"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response
// @Router /api/templates/{id}/questions/{questionId} [put]
func (c *TemplateController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}
	questionID, err := strconv.Atoi(ctx.Param("questionId"))
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q, err := c.TemplateService.UpdateQuestion(uint(id), uint(questionID), req)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, q)
}

// RemoveQuestion godoc
// @Summary Remove a question from a template
// @Tags templates
// @Produce json
// @Security BearerAuth
// @Param   id path int true "template id"
// @Param   questionId path int true "question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/templates/{id}/questions/{questionId} [delete]
func (c *TemplateController) RemoveQuestion(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}
	questionID, err := strconv.Atoi(ctx.Param("questionId"))
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.TemplateService.RemoveQuestion(uint(id), uint(questionID)); err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
