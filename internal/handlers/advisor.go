// internal/handlers/advisor.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/autorunai/moto-backend/internal/i18n"
	"github.com/autorunai/moto-backend/internal/models"
	"github.com/autorunai/moto-backend/internal/nocodb"
	"github.com/autorunai/moto-backend/internal/services"
	"github.com/autorunai/moto-backend/internal/utils"
)

type AdvisorHandler struct {
	advisors *services.AdvisorService
	cache    *services.CachedAdvisorRepository
}

func NewAdvisorHandler(advisors *services.AdvisorService, cache *services.CachedAdvisorRepository) *AdvisorHandler {
	return &AdvisorHandler{advisors: advisors, cache: cache}
}

// ListActive handles GET /v1/asesores
func (h *AdvisorHandler) ListActive(c *gin.Context) {
	advisors, err := h.advisors.ListActive(c.Request.Context())
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, advisors)
}

// Resolve handles GET /v1/asesores/resolve/:identifier
//
// The three outcomes map to three distinct statuses so the caller can tell
// "no such advisor" (404) from "be more specific" (409) from "NocoDB is
// down" (502).
func (h *AdvisorHandler) Resolve(c *gin.Context) {
	identifier := c.Param("identifier")

	resolution, err := h.advisors.Resolve(c.Request.Context(), identifier)
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}

	switch resolution.Kind {
	case models.ResolutionFound:
		utils.SuccessResponse(c, resolution.Advisor)
	case models.ResolutionAmbiguous:
		utils.AmbiguousResponse(c, "asesor")
	default:
		utils.NotFoundResponse(c, "asesor")
	}
}

// List handles GET /v1/admin/asesores — every status, optional ?q= search.
func (h *AdvisorHandler) List(c *gin.Context) {
	advisors, err := h.advisors.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, advisors)
}

// GetByID handles GET /v1/admin/asesores/:id
func (h *AdvisorHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advisor ID", nil)
		return
	}

	advisor, err := h.advisors.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "asesor")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, advisor)
}

// Create handles POST /v1/admin/asesores
func (h *AdvisorHandler) Create(c *gin.Context) {
	var req models.CreateAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	advisor, err := h.advisors.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrSlugConflict) {
			lang := utils.GetLangFromContext(c)
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeySlugConflict))
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.CreatedResponse(c, advisor)
}

// Update handles PUT /v1/admin/asesores/:id
func (h *AdvisorHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advisor ID", nil)
		return
	}

	var req models.UpdateAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	advisor, err := h.advisors.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSlugConflict):
			lang := utils.GetLangFromContext(c)
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeySlugConflict))
		case errors.Is(err, nocodb.ErrRecordNotFound):
			utils.NotFoundResponse(c, "asesor")
		default:
			utils.UpstreamErrorResponse(c, "")
		}
		return
	}
	utils.SuccessResponse(c, advisor)
}

type statusRequest struct {
	Status string `json:"estado" binding:"required"`
}

// SetStatus handles PUT /v1/admin/asesores/:id/estado
func (h *AdvisorHandler) SetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advisor ID", nil)
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	ctx := c.Request.Context()
	switch req.Status {
	case "activo":
		err = h.advisors.Activate(ctx, id)
	case "inactivo":
		err = h.advisors.Deactivate(ctx, id)
	case "retirado":
		err = h.advisors.Retire(ctx, id)
	default:
		utils.BadRequestResponse(c, "estado must be one of: activo, inactivo, retirado", nil)
		return
	}

	if err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "asesor")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyAdvisorUpdated)})
}

// Delete handles DELETE /v1/admin/asesores/:id
func (h *AdvisorHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid advisor ID", nil)
		return
	}

	if err := h.advisors.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "asesor")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyAdvisorDeleted)})
}

// InvalidateCache handles POST /v1/admin/cache/invalidate
func (h *AdvisorHandler) InvalidateCache(c *gin.Context) {
	h.cache.InvalidateCache()

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyCacheInvalidated)})
}
