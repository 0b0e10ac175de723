// internal/handlers/moto.go
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

// Sortable columns for the public listing. Anything else falls back to the
// model name.
var motoSortFields = []string{"Productos_motos", "Marca", "Categoria", "Precio_comercial", "CreatedAt"}

type MotoHandler struct {
	motos *services.MotoService
}

func NewMotoHandler(motos *services.MotoService) *MotoHandler {
	return &MotoHandler{motos: motos}
}

// List handles GET /v1/motos
//
// Filters: marca, categoria, cilindraje, disponibles=true. Shapes:
// default rows, ?extendida=true for parsed markdown and image URLs,
// ?formato=legacy for the flat cards the first front end consumed.
func (h *MotoHandler) List(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	opts := models.ListMotosOptions{
		ActiveOnly:    c.DefaultQuery("activas", "true") != "false",
		Brand:         c.Query("marca"),
		Category:      c.Query("categoria"),
		Displacement:  c.Query("cilindraje"),
		AvailableOnly: c.Query("disponibles") == "true",
		Limit:         params.Limit,
		Offset:        params.Offset(),
		OrderBy:       params.SortField(motoSortFields, "Productos_motos"),
		OrderDesc:     params.Order == "desc",
	}

	ctx := c.Request.Context()

	if c.Query("extendida") == "true" {
		extended, total, err := h.motos.ListExtended(ctx, opts)
		if err != nil {
			utils.UpstreamErrorResponse(c, "")
			return
		}
		utils.PaginatedResponse(c, utils.CreatePaginationResult(extended, total, params))
		return
	}

	motos, total, err := h.motos.List(ctx, opts)
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}

	if c.Query("formato") == "legacy" {
		cards := make([]models.MotoLegacy, 0, len(motos))
		for i := range motos {
			cards = append(cards, h.motos.ToLegacy(&motos[i]))
		}
		utils.PaginatedResponse(c, utils.CreatePaginationResult(cards, total, params))
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(motos, total, params))
}

// Search handles GET /v1/motos/buscar?q=
func (h *MotoHandler) Search(c *gin.Context) {
	motos, err := h.motos.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, motos)
}

// GetByID handles GET /v1/motos/:id?year=2026|2027
//
// Returns the extended row plus the price set for the requested model year.
// Omitting year picks 2027 when the row has a next-year price, 2026
// otherwise.
func (h *MotoHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid moto ID", nil)
		return
	}

	ext, err := h.motos.GetExtended(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "moto")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}

	year := utils.ParseYear(c.Query("year"))
	if c.Query("year") == "" {
		year = utils.DefaultYear(&ext.Moto)
	}
	prices := utils.ComputePrices(&ext.Moto, year)

	utils.SuccessResponse(c, gin.H{
		"moto":    ext,
		"year":    year,
		"precios": prices,
	})
}

// Prices handles GET /v1/motos/:id/precios — both model years side by side.
func (h *MotoHandler) Prices(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid moto ID", nil)
		return
	}

	moto, err := h.motos.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "moto")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"modelo":  moto.Model,
		"2026":    utils.ComputePrices(moto, utils.Year2026),
		"2027":    utils.ComputePrices(moto, utils.Year2027),
		"default": utils.DefaultYear(moto),
	})
}

// Stats handles GET /v1/stats/catalogo
func (h *MotoHandler) Stats(c *gin.Context) {
	stats, err := h.motos.Stats(c.Request.Context())
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, stats)
}

// Create handles POST /v1/admin/motos
func (h *MotoHandler) Create(c *gin.Context) {
	var req models.CreateMotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
		return
	}

	moto, err := h.motos.Create(c.Request.Context(), &req)
	if err != nil {
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.CreatedResponse(c, moto)
}

// Update handles PUT /v1/admin/motos/:id — patches raw sheet columns.
func (h *MotoHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid moto ID", nil)
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	moto, err := h.motos.Update(c.Request.Context(), id, fields)
	if err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "moto")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, moto)
}

// SetStatus handles PUT /v1/admin/motos/:id/estado
func (h *MotoHandler) SetStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid moto ID", nil)
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
		err = h.motos.Activate(ctx, id)
	case "inactivo":
		err = h.motos.Deactivate(ctx, id)
	default:
		utils.BadRequestResponse(c, "estado must be one of: activo, inactivo", nil)
		return
	}

	if err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "moto")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyMotoUpdated)})
}

// Delete handles DELETE /v1/admin/motos/:id
func (h *MotoHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid moto ID", nil)
		return
	}

	if err := h.motos.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, nocodb.ErrRecordNotFound) {
			utils.NotFoundResponse(c, "moto")
			return
		}
		utils.UpstreamErrorResponse(c, "")
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{"message": i18n.T(lang, i18n.KeyMotoDeleted)})
}
