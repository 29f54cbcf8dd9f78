package controller

import (
	"errors"
	"strconv"

	"refcheck_backend/internal/service"
	"refcheck_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RefereeController struct {
	RefereeService *service.RefereeService
}

func NewRefereeController(refereeService *service.RefereeService) *RefereeController {
	return &RefereeController{RefereeService: refereeService}
}

// Create godoc
// @Summary Register a referee for an applicant
// @Tags referees
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   body body service.RefereeRequest true "referee payload"
// @Success 201 {object} util.Response{data=model.Referee}
// @Failure 400 {object} util.Response
// @Router /api/referees [post]
func (c *RefereeController) Create(ctx *gin.Context) {
	var req service.RefereeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	referee, err := c.RefereeService.Create(req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidPhoneNumber) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, referee)
}

// List godoc
// @Summary List referees
// @Tags referees
// @Produce json
// @Security BearerAuth
// @Param   search query string false "search in name, email, relationship and applicant"
// @Param   status query string false "active or inactive"
// @Param   page query int false "page number"
// @Param   limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/referees [get]
func (c *RefereeController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	search := ctx.Query("search")
	status := ctx.Query("status")

	result, total, err := c.RefereeService.List(search, status, page, limit)
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
// @Summary Get a referee with their assigned forms
// @Tags referees
// @Produce json
// @Security BearerAuth
// @Param   id path int true "referee id"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response
// @Router /api/referees/{id} [get]
func (c *RefereeController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid referee id")
		return
	}

	referee, forms, err := c.RefereeService.GetWithForms(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrRefereeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"referee": referee,
		"forms":   forms,
	})
}

// Update godoc
// @Summary Update referee details
// @Tags referees
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id path int true "referee id"
// @Param   body body service.RefereeRequest true "referee payload"
// @Success 200 {object} util.Response{data=model.Referee}
// @Failure 404 {object} util.Response
// @Router /api/referees/{id} [put]
func (c *RefereeController) Update(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid referee id")
		return
	}

	var req service.RefereeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	referee, err := c.RefereeService.Update(uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrRefereeNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrInvalidPhoneNumber):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, referee)
}

// Deactivate godoc
// @Summary Deactivate a referee
// @Description Marks the referee inactive; their submitted responses are kept.
// @Tags referees
// @Produce json
// @Security BearerAuth
// @Param   id path int true "referee id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/referees/{id} [delete]
func (c *RefereeController) Deactivate(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid referee id")
		return
	}

	if err := c.RefereeService.Deactivate(uint(id)); err != nil {
		if errors.Is(err, util.ErrRefereeNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, nil)
}
