// internal/services/advisor_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/autorunai/moto-backend/internal/models"
)

// fakeAdvisorRepo is an in-memory AdvisorRepository for resolver tests.
type fakeAdvisorRepo struct {
	advisors []models.Advisor
	err      error

	listActiveCalls int
}

func (f *fakeAdvisorRepo) GetBySlug(ctx context.Context, slug string) (*models.Advisor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.advisors {
		if f.advisors[i].Slug == slug {
			return &f.advisors[i], nil
		}
	}
	return nil, nil
}

func (f *fakeAdvisorRepo) ListActive(ctx context.Context) ([]models.Advisor, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.listActiveCalls++
	var active []models.Advisor
	for _, a := range f.advisors {
		if a.Status == models.AdvisorStatusActive {
			active = append(active, a)
		}
	}
	return active, nil
}

func (f *fakeAdvisorRepo) ListAll(ctx context.Context) ([]models.Advisor, error) {
	return f.advisors, f.err
}

func (f *fakeAdvisorRepo) GetByID(ctx context.Context, id int) (*models.Advisor, error) {
	for i := range f.advisors {
		if f.advisors[i].ID == id {
			return &f.advisors[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeAdvisorRepo) Search(ctx context.Context, query string) ([]models.Advisor, error) {
	return f.advisors, f.err
}

func (f *fakeAdvisorRepo) Create(ctx context.Context, fields map[string]any) (*models.Advisor, error) {
	if f.err != nil {
		return nil, f.err
	}
	advisor := models.Advisor{
		ID:     len(f.advisors) + 1,
		Name:   fields["Asesor"].(string),
		Status: models.AdvisorStatusActive,
	}
	if slug, ok := fields["slug"].(string); ok {
		advisor.Slug = slug
	}
	if phone, ok := fields["Phone"].(string); ok {
		advisor.Phone = phone
	}
	f.advisors = append(f.advisors, advisor)
	return &advisor, nil
}

func (f *fakeAdvisorRepo) Update(ctx context.Context, id int, fields map[string]any) (*models.Advisor, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.GetByID(ctx, id)
}

func (f *fakeAdvisorRepo) SetStatus(ctx context.Context, id int, status models.AdvisorStatus) error {
	if f.err != nil {
		return f.err
	}
	for i := range f.advisors {
		if f.advisors[i].ID == id {
			f.advisors[i].Status = status
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeAdvisorRepo) Delete(ctx context.Context, id int) error {
	return f.err
}

type AdvisorResolveSuite struct {
	suite.Suite
	repo    *fakeAdvisorRepo
	service *AdvisorService
}

func (s *AdvisorResolveSuite) SetupTest() {
	email := "ale@example.com"
	s.repo = &fakeAdvisorRepo{
		advisors: []models.Advisor{
			{ID: 1, Name: "Alejandra González", Phone: "3001234567", Email: &email, Slug: "alejandra-gonzalez", Status: models.AdvisorStatusActive},
			{ID: 2, Name: "Juan Pablo Restrepo", Phone: "3002345678", Slug: "juan-pablo", Status: models.AdvisorStatusActive},
			{ID: 3, Name: "Juan Carlos Mejía", Phone: "3003456789", Slug: "juan-carlos", Status: models.AdvisorStatusActive},
			{ID: 4, Name: "Carlos Retirado", Phone: "3004567890", Slug: "carlos-retirado", Status: models.AdvisorStatusRetired},
			{ID: 5, Name: "", Phone: "3005678901", Slug: "sin-nombre", Status: models.AdvisorStatusActive},
			{ID: 6, Name: "Carlos Andrés Torres", Phone: "3006789012", Slug: "carlos-andres", Status: models.AdvisorStatusActive},
		},
	}
	s.service = NewAdvisorService(s.repo)
}

func (s *AdvisorResolveSuite) resolve(identifier string) models.Resolution {
	res, err := s.service.Resolve(context.Background(), identifier)
	s.Require().NoError(err)
	return res
}

func (s *AdvisorResolveSuite) TestExactSlug() {
	res := s.resolve("alejandra-gonzalez")
	s.Equal(models.ResolutionFound, res.Kind)
	s.Equal(1, res.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestRetiredSlugStillResolves() {
	// Direct slug URLs keep working after retirement.
	res := s.resolve("carlos-retirado")
	s.Equal(models.ResolutionFound, res.Kind)
	s.Equal(4, res.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestDerivedSlug() {
	// "Alejandra González" slugs to "alejandra-gonzalez" and resolves to the
	// same advisor as the slug itself.
	bySlug := s.resolve("alejandra-gonzalez")
	byName := s.resolve("Alejandra González")
	s.Equal(models.ResolutionFound, byName.Kind)
	s.Equal(bySlug.Advisor.ID, byName.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestExactNameCaseInsensitive() {
	res := s.resolve("JUAN PABLO RESTREPO")
	s.Equal(models.ResolutionFound, res.Kind)
	s.Equal(2, res.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestUniqueSubstring() {
	res := s.resolve("alejandra")
	s.Equal(models.ResolutionFound, res.Kind)
	s.Equal(1, res.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestAmbiguousSubstring() {
	// "Juan" matches Juan Pablo and Juan Carlos; prefix narrowing keeps both.
	res := s.resolve("Juan")
	s.Equal(models.ResolutionAmbiguous, res.Kind)
	s.Nil(res.Advisor)
}

func (s *AdvisorResolveSuite) TestPrefixNarrowsAmbiguity() {
	// "Carlos" substring-matches Juan Carlos Mejía and Carlos Andrés Torres,
	// but only the latter starts with it.
	res := s.resolve("Carlos")
	s.Equal(models.ResolutionFound, res.Kind)
	s.Equal(6, res.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestSubstringMatchesAccentedName() {
	// Substring matching is literal: the stored name carries the accent.
	res := s.resolve("juan carlos mejía")
	s.Equal(models.ResolutionFound, res.Kind)
	s.Equal(3, res.Advisor.ID)
}

func (s *AdvisorResolveSuite) TestEmptyIdentifier() {
	s.Equal(models.ResolutionNotFound, s.resolve("").Kind)
	s.Equal(models.ResolutionNotFound, s.resolve("   ").Kind)
}

func (s *AdvisorResolveSuite) TestUnknownIdentifier() {
	s.Equal(models.ResolutionNotFound, s.resolve("nadie-con-este-nombre").Kind)
}

func (s *AdvisorResolveSuite) TestNamelessRowNeverResolves() {
	// Half-filled rows can carry a slug; they must not resolve.
	s.Equal(models.ResolutionNotFound, s.resolve("sin-nombre").Kind)
}

func (s *AdvisorResolveSuite) TestRetiredNameDoesNotResolve() {
	// Name matching only sees active advisors; the retired one is reachable
	// by slug alone.
	s.Equal(models.ResolutionNotFound, s.resolve("Carlos Retirado").Kind)
}

func (s *AdvisorResolveSuite) TestUpstreamErrorIsNotNotFound() {
	s.repo.err = errors.New("nocodb: 502")

	_, err := s.service.Resolve(context.Background(), "alejandra")
	s.Error(err)
}

func TestAdvisorResolveSuite(t *testing.T) {
	suite.Run(t, new(AdvisorResolveSuite))
}

func TestListActiveFiltersNamelessRows(t *testing.T) {
	repo := &fakeAdvisorRepo{
		advisors: []models.Advisor{
			{ID: 1, Name: "Alejandra González", Status: models.AdvisorStatusActive},
			{ID: 2, Name: "   ", Status: models.AdvisorStatusActive},
		},
	}
	service := NewAdvisorService(repo)

	advisors, err := service.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, advisors, 1)
	assert.Equal(t, "Alejandra González", advisors[0].Name)
}

func TestCreateDerivesSlug(t *testing.T) {
	repo := &fakeAdvisorRepo{}
	service := NewAdvisorService(repo)

	advisor, err := service.Create(context.Background(), &models.CreateAdvisorRequest{
		Name:  "María Peñalosa",
		Phone: "3001234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "maria-penalosa", advisor.Slug)
}

func TestCreateRejectsDuplicateSlug(t *testing.T) {
	repo := &fakeAdvisorRepo{
		advisors: []models.Advisor{
			{ID: 1, Name: "Alejandra González", Slug: "alejandra-gonzalez", Status: models.AdvisorStatusActive},
		},
	}
	service := NewAdvisorService(repo)

	_, err := service.Create(context.Background(), &models.CreateAdvisorRequest{
		Name:  "Alejandra González",
		Phone: "3001234567",
	})
	assert.ErrorIs(t, err, ErrSlugConflict)
}
