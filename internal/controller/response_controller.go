package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"refcheck_backend/internal/service"
	"refcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ResponseController struct {
	ResponseService *service.ResponseService
	ExportService   *service.ExportService
}

func NewResponseController(responseService *service.ResponseService, exportService *service.ExportService) *ResponseController {
	return &ResponseController{
		ResponseService: responseService,
		ExportService:   exportService,
	}
}

// List godoc
// @Summary List submitted responses
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param   templateId query int false "filter by template"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/responses [get]
func (c *ResponseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	var templateID uint
	if v, err := strconv.Atoi(ctx.Query("templateId")); err == nil && v > 0 {
		templateID = uint(v)
	}

	responses, total, err := c.ResponseService.List(templateID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  responses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// Get godoc
// @Summary Get a response with its answers
// @Tags responses
// @Produce json
// @Security BearerAuth
// @Param   id path int true "response id"
// @Success 200 {object} util.Response{data=service.ResponseDetail}
// @Failure 404 {object} util.Response
// @Router /api/responses/{id} [get]
func (c *ResponseController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid response id")
		return
	}

	detail, err := c.ResponseService.Get(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrResponseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, detail)
}

// DownloadPDF godoc
// @Summary Download a response as PDF
// @Tags responses
// @Produce application/pdf
// @Security BearerAuth
// @Param   id path int true "response id"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/responses/{id}/pdf [get]
func (c *ResponseController) DownloadPDF(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid response id")
		return
	}

	data, filename, err := c.ExportService.ResponsePDF(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, util.ErrResponseNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/pdf", data)
}

// ExportTemplateXLSX godoc
// @Summary Export all responses for a template as a spreadsheet
// @Tags responses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param   id path int true "template id"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/templates/{id}/responses/export [get]
func (c *ResponseController) ExportTemplateXLSX(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid template id")
		return
	}

	data, filename, err := c.ExportService.TemplateResponsesXLSX(ctx.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
