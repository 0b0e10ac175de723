// internal/services/moto_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/autorunai/moto-backend/internal/models"
	"github.com/autorunai/moto-backend/internal/utils"
)

// MotoRepository is the read/write port over the price-list table.
type MotoRepository interface {
	List(ctx context.Context, opts models.ListMotosOptions) ([]models.Moto, int64, error)
	GetByID(ctx context.Context, id int) (*models.Moto, error)
	Search(ctx context.Context, query string) ([]models.Moto, error)
	Create(ctx context.Context, fields map[string]any) (*models.Moto, error)
	Update(ctx context.Context, id int, fields map[string]any) (*models.Moto, error)
	SetStatus(ctx context.Context, id int, status models.MotoStatus) error
	Delete(ctx context.Context, id int) error
	BaseURL() string
}

type MotoService struct {
	repo MotoRepository
}

func NewMotoService(repo MotoRepository) *MotoService {
	return &MotoService{repo: repo}
}

func (s *MotoService) List(ctx context.Context, opts models.ListMotosOptions) ([]models.Moto, int64, error) {
	return s.repo.List(ctx, opts)
}

// ListExtended returns the catalog with images resolved and markdown fields
// parsed, ready for the grid and detail views.
func (s *MotoService) ListExtended(ctx context.Context, opts models.ListMotosOptions) ([]models.MotoExtended, int64, error) {
	motos, total, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	extended := make([]models.MotoExtended, 0, len(motos))
	for i := range motos {
		extended = append(extended, s.Extend(&motos[i]))
	}
	return extended, total, nil
}

func (s *MotoService) GetByID(ctx context.Context, id int) (*models.Moto, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *MotoService) GetExtended(ctx context.Context, id int) (*models.MotoExtended, error) {
	moto, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	ext := s.Extend(moto)
	return &ext, nil
}

// Search finds motos by model name. Empty query falls back to the default
// active listing.
func (s *MotoService) Search(ctx context.Context, query string) ([]models.Moto, error) {
	if strings.TrimSpace(query) == "" {
		motos, _, err := s.repo.List(ctx, models.ListMotosOptions{ActiveOnly: true})
		return motos, err
	}
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

// Extend derives everything the UI shows that NocoDB stores obliquely:
// attachment URLs, parsed feature/spec-sheet markdown and plain-text
// snippets. Malformed markdown degrades to empty maps, never an error.
func (s *MotoService) Extend(moto *models.Moto) models.MotoExtended {
	ext := models.MotoExtended{Moto: *moto}

	for _, photo := range moto.Photos {
		if photo.SignedPath != "" {
			ext.GalleryImages = append(ext.GalleryImages, s.attachmentURL(photo))
		}
	}
	if len(ext.GalleryImages) > 0 {
		ext.MainImage = ext.GalleryImages[0]
	}

	ext.FeatureMap = utils.ParseSections(moto.Features)
	ext.SpecSheetMap = utils.ParseSpecSheet(moto.SpecSheet)
	ext.PlainText = utils.StripMarkdown(moto.Description)
	ext.WarrantyText = utils.StripMarkdown(moto.Warranty)
	return ext
}

func (s *MotoService) attachmentURL(a models.Attachment) string {
	return s.repo.BaseURL() + "/" + a.SignedPath
}

// ToLegacy maps a row to the flat card shape the first front end consumed.
func (s *MotoService) ToLegacy(moto *models.Moto) models.MotoLegacy {
	brand, ok := models.BrandMap[moto.Brand]
	if !ok {
		brand = "TVS"
	}
	category, ok := models.CategoryMap[moto.Category]
	if !ok {
		category = "trabajo"
	}

	var image string
	if len(moto.Photos) > 0 && moto.Photos[0].SignedPath != "" {
		image = s.attachmentURL(moto.Photos[0])
	}

	var displacement string
	if moto.Displacement != "" {
		displacement = moto.Displacement + "cc"
	}

	return models.MotoLegacy{
		ID:           utils.GenerateSlug(moto.Model),
		Model:        moto.Model,
		Brand:        brand,
		Category:     category,
		Price2026:    utils.CleanNumber(moto.CommercialPrice),
		DownPayment:  utils.CleanNumber(moto.DownPayment),
		CashPrice:    utils.CleanNumber(moto.CashPrice),
		Image:        image,
		Displacement: displacement,
	}
}

// Stats summarizes the active catalog for the admin dashboard.
func (s *MotoService) Stats(ctx context.Context) (*models.CatalogStats, error) {
	motos, _, err := s.repo.List(ctx, models.ListMotosOptions{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}

	stats := &models.CatalogStats{
		Total:      len(motos),
		ByBrand:    make(map[string]int),
		ByCategory: make(map[string]int),
	}
	for i := range motos {
		stats.ByBrand[motos[i].Brand]++
		stats.ByCategory[motos[i].Category]++
		if utils.HasNextYearPrice(&motos[i]) {
			stats.With2027++
		}
	}
	return stats, nil
}

// Create adds a catalog row. New motos go live immediately; use Deactivate
// to stage instead.
func (s *MotoService) Create(ctx context.Context, req *models.CreateMotoRequest) (*models.Moto, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	fields := map[string]any{
		"Productos_motos": req.Model,
		"Marca":           req.Brand,
		"Categoria":       req.Category,
		"Activo":          int(models.MotoStatusActive),
	}
	setIfPresent(fields, "Categoria_Cilindraje", req.Displacement)
	setIfPresent(fields, "Modelo", req.ModelYear)
	setIfPresent(fields, "descripcion_rapida", req.Description)
	setIfPresent(fields, "caracteristicas y beneficios", req.Features)
	setIfPresent(fields, "garantia", req.Warranty)
	setIfPresent(fields, "ficha_tecnica", req.SpecSheet)
	setIfPresent(fields, "motos_disponibles", req.Availability)
	if req.CommercialPrice != nil {
		fields["Precio_comercial"] = req.CommercialPrice
	}
	if req.TransitFeeCash != nil {
		fields["vueltas_transito_de_contado"] = req.TransitFeeCash
	}
	if req.TransitFeeFinanced != nil {
		fields["vueltas_transito_con_prenda"] = req.TransitFeeFinanced
	}

	moto, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"moto_id": moto.ID,
		"model":   moto.Model,
	}).Info("Moto created")
	return moto, nil
}

// Update patches arbitrary columns. The admin UI edits the sheet columns
// directly, so this takes the raw field map rather than a typed DTO.
func (s *MotoService) Update(ctx context.Context, id int, fields map[string]any) (*models.Moto, error) {
	if len(fields) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	delete(fields, "Id")
	return s.repo.Update(ctx, id, fields)
}

func (s *MotoService) Activate(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, models.MotoStatusActive)
}

func (s *MotoService) Deactivate(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, models.MotoStatusInactive)
}

func (s *MotoService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func setIfPresent(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
