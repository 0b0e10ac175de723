// internal/services/advisor_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/autorunai/moto-backend/internal/models"
	"github.com/autorunai/moto-backend/internal/utils"
)

// ErrSlugConflict is returned when a create or update would reuse a slug
// that belongs to another advisor. Slugs are unique across all statuses.
var ErrSlugConflict = errors.New("an advisor with this slug already exists")

// AdvisorDirectory is the read port the resolver runs against.
type AdvisorDirectory interface {
	// GetBySlug matches the slug exactly, any status. Nil without error
	// when nothing matches.
	GetBySlug(ctx context.Context, slug string) (*models.Advisor, error)
	// ListActive returns advisors with active status; the resolver does its
	// own display-name filtering on top.
	ListActive(ctx context.Context) ([]models.Advisor, error)
}

// AdvisorRepository extends the directory with the management operations
// used by the admin surface.
type AdvisorRepository interface {
	AdvisorDirectory
	ListAll(ctx context.Context) ([]models.Advisor, error)
	GetByID(ctx context.Context, id int) (*models.Advisor, error)
	Search(ctx context.Context, query string) ([]models.Advisor, error)
	Create(ctx context.Context, fields map[string]any) (*models.Advisor, error)
	Update(ctx context.Context, id int, fields map[string]any) (*models.Advisor, error)
	SetStatus(ctx context.Context, id int, status models.AdvisorStatus) error
	Delete(ctx context.Context, id int) error
}

type AdvisorService struct {
	repo AdvisorRepository
}

func NewAdvisorService(repo AdvisorRepository) *AdvisorService {
	return &AdvisorService{repo: repo}
}

// Resolve maps a caller-supplied identifier (slug, full name, partial name,
// any casing or accents) to exactly one advisor, or reports not_found /
// ambiguous. The step order is load-bearing: exactness wins over
// convenience, and reordering changes outcomes on ambiguous inputs.
//
//  1. Exact slug, any status — retired advisors stay reachable by their
//     direct URL on purpose.
//  2. Slug derived from the identifier, same lookup.
//  3. Case-insensitive exact name match among active advisors.
//  4. Unique substring match among active advisors.
//  5. If substring matching found several, narrow to names starting with
//     the identifier; a unique survivor wins.
//
// Directory failures come back as an error, never as not_found.
func (s *AdvisorService) Resolve(ctx context.Context, identifier string) (models.Resolution, error) {
	clean := strings.TrimSpace(identifier)
	if clean == "" {
		return models.Resolution{Kind: models.ResolutionNotFound}, nil
	}

	// Step 1: the identifier may already be a slug.
	if advisor, err := s.lookupSlug(ctx, clean); err != nil {
		return models.Resolution{}, err
	} else if advisor != nil {
		return found(advisor), nil
	}

	// Step 2: derive a slug from it ("Juan Pablo" → "juan-pablo").
	if derived := utils.GenerateSlug(clean); derived != clean {
		if advisor, err := s.lookupSlug(ctx, derived); err != nil {
			return models.Resolution{}, err
		} else if advisor != nil {
			return found(advisor), nil
		}
	}

	// Steps 3-5 filter the active set in memory; the list is small enough
	// that one fetch beats a query per strategy.
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return models.Resolution{}, fmt.Errorf("resolve %q: %w", clean, err)
	}

	lower := strings.ToLower(clean)

	var exact []models.Advisor
	for _, a := range active {
		if a.Selectable() && strings.ToLower(a.Name) == lower {
			exact = append(exact, a)
		}
	}
	if len(exact) == 1 {
		return found(&exact[0]), nil
	}

	var partial []models.Advisor
	for _, a := range active {
		if a.Selectable() && strings.Contains(strings.ToLower(a.Name), lower) {
			partial = append(partial, a)
		}
	}
	switch {
	case len(partial) == 0:
		return models.Resolution{Kind: models.ResolutionNotFound}, nil
	case len(partial) == 1:
		return found(&partial[0]), nil
	}

	var prefixed []models.Advisor
	for _, a := range partial {
		if strings.HasPrefix(strings.ToLower(a.Name), lower) {
			prefixed = append(prefixed, a)
		}
	}
	if len(prefixed) == 1 {
		return found(&prefixed[0]), nil
	}

	logrus.WithFields(logrus.Fields{
		"identifier": clean,
		"candidates": len(partial),
	}).Info("Ambiguous advisor identifier")
	return models.Resolution{Kind: models.ResolutionAmbiguous}, nil
}

func (s *AdvisorService) lookupSlug(ctx context.Context, slug string) (*models.Advisor, error) {
	advisor, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("slug lookup %q: %w", slug, err)
	}
	// A slug on a nameless half-filled row never resolves.
	if advisor != nil && !advisor.Selectable() {
		return nil, nil
	}
	return advisor, nil
}

func found(a *models.Advisor) models.Resolution {
	return models.Resolution{Kind: models.ResolutionFound, Advisor: a}
}

// ListActive returns the advisors the public catalog may bind to.
func (s *AdvisorService) ListActive(ctx context.Context) ([]models.Advisor, error) {
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	selectable := make([]models.Advisor, 0, len(active))
	for _, a := range active {
		if a.Selectable() {
			selectable = append(selectable, a)
		}
	}
	return selectable, nil
}

func (s *AdvisorService) ListAll(ctx context.Context) ([]models.Advisor, error) {
	return s.repo.ListAll(ctx)
}

func (s *AdvisorService) GetByID(ctx context.Context, id int) (*models.Advisor, error) {
	return s.repo.GetByID(ctx, id)
}

// Search finds advisors by partial name, any status. Empty query lists all.
func (s *AdvisorService) Search(ctx context.Context, query string) ([]models.Advisor, error) {
	if strings.TrimSpace(query) == "" {
		return s.repo.ListAll(ctx)
	}
	return s.repo.Search(ctx, strings.TrimSpace(query))
}

// Create registers a new advisor. A missing slug is derived from the name;
// either way the slug must not collide with an existing one.
func (s *AdvisorService) Create(ctx context.Context, req *models.CreateAdvisorRequest) (*models.Advisor, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Name)
	}

	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugConflict
	}

	fields := map[string]any{
		"Asesor": req.Name,
		"Phone":  req.Phone,
		"slug":   slug,
		"Activo": int(models.AdvisorStatusActive),
	}
	if req.Email != nil {
		fields["Email"] = *req.Email
	}

	advisor, err := s.repo.Create(ctx, fields)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"advisor_id": advisor.ID,
		"slug":       slug,
	}).Info("Advisor created")
	return advisor, nil
}

// Update applies a partial update. A slug change re-checks uniqueness
// against every other advisor.
func (s *AdvisorService) Update(ctx context.Context, id int, req *models.UpdateAdvisorRequest) (*models.Advisor, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	fields := make(map[string]any)
	if req.Name != nil {
		fields["Asesor"] = *req.Name
	}
	if req.Phone != nil {
		fields["Phone"] = *req.Phone
	}
	if req.Email != nil {
		fields["Email"] = *req.Email
	}
	if req.Slug != nil {
		existing, err := s.repo.GetBySlug(ctx, *req.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrSlugConflict
		}
		fields["slug"] = *req.Slug
	}

	if len(fields) == 0 {
		return s.repo.GetByID(ctx, id)
	}
	return s.repo.Update(ctx, id, fields)
}

// Deactivate takes an advisor off the catalog without losing the record.
func (s *AdvisorService) Deactivate(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, models.AdvisorStatusInactive)
}

// Activate puts an advisor (inactive or retired) back on the catalog.
func (s *AdvisorService) Activate(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, models.AdvisorStatusActive)
}

// Retire marks an advisor as no longer working here. The record stays for
// history and the direct slug URL keeps working.
func (s *AdvisorService) Retire(ctx context.Context, id int) error {
	return s.repo.SetStatus(ctx, id, models.AdvisorStatusRetired)
}

// Delete permanently removes the record. Cannot be undone; Retire is almost
// always the better choice.
func (s *AdvisorService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
