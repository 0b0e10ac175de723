// internal/nocodb/advisor_store.go
package nocodb

import (
	"context"
	"fmt"

	"github.com/autorunai/moto-backend/internal/models"
)

// AdvisorStore reads and manages the "Asesores" table.
type AdvisorStore struct {
	client *Client
	table  string
}

func NewAdvisorStore(client *Client, table string) *AdvisorStore {
	return &AdvisorStore{client: client, table: table}
}

// GetBySlug looks up an advisor by exact slug, regardless of status.
// Returns nil without error when no row matches.
func (s *AdvisorStore) GetBySlug(ctx context.Context, slug string) (*models.Advisor, error) {
	var resp models.ListResponse[models.Advisor]
	q := Query{Where: fmt.Sprintf("(slug,eq,%s)", slug), Limit: 1}
	if err := s.client.List(ctx, s.table, q, &resp); err != nil {
		return nil, fmt.Errorf("advisor by slug %q: %w", slug, err)
	}
	if len(resp.List) == 0 {
		return nil, nil
	}
	return &resp.List[0], nil
}

// ListActive returns every advisor with Activo = 1.
func (s *AdvisorStore) ListActive(ctx context.Context) ([]models.Advisor, error) {
	var resp models.ListResponse[models.Advisor]
	q := Query{Where: fmt.Sprintf("(Activo,eq,%d)", models.AdvisorStatusActive)}
	if err := s.client.List(ctx, s.table, q, &resp); err != nil {
		return nil, fmt.Errorf("list active advisors: %w", err)
	}
	return resp.List, nil
}

// ListAll returns every advisor row, any status. Admin use.
func (s *AdvisorStore) ListAll(ctx context.Context) ([]models.Advisor, error) {
	var resp models.ListResponse[models.Advisor]
	if err := s.client.List(ctx, s.table, Query{}, &resp); err != nil {
		return nil, fmt.Errorf("list advisors: %w", err)
	}
	return resp.List, nil
}

func (s *AdvisorStore) GetByID(ctx context.Context, id int) (*models.Advisor, error) {
	var advisor models.Advisor
	if err := s.client.GetRecord(ctx, s.table, id, &advisor); err != nil {
		return nil, err
	}
	return &advisor, nil
}

// Search finds advisors whose name contains the query, any status.
func (s *AdvisorStore) Search(ctx context.Context, query string) ([]models.Advisor, error) {
	var resp models.ListResponse[models.Advisor]
	q := Query{Where: fmt.Sprintf("(Asesor,like,%%%s%%)", query)}
	if err := s.client.List(ctx, s.table, q, &resp); err != nil {
		return nil, fmt.Errorf("search advisors %q: %w", query, err)
	}
	return resp.List, nil
}

func (s *AdvisorStore) Create(ctx context.Context, fields map[string]any) (*models.Advisor, error) {
	var advisor models.Advisor
	if err := s.client.CreateRecord(ctx, s.table, fields, &advisor); err != nil {
		return nil, fmt.Errorf("create advisor: %w", err)
	}
	return &advisor, nil
}

func (s *AdvisorStore) Update(ctx context.Context, id int, fields map[string]any) (*models.Advisor, error) {
	var advisor models.Advisor
	if err := s.client.UpdateRecord(ctx, s.table, id, fields, &advisor); err != nil {
		return nil, fmt.Errorf("update advisor %d: %w", id, err)
	}
	return &advisor, nil
}

// SetStatus performs the soft lifecycle transitions (0 inactive, 1 active,
// 2 retired).
func (s *AdvisorStore) SetStatus(ctx context.Context, id int, status models.AdvisorStatus) error {
	_, err := s.Update(ctx, id, map[string]any{"Activo": int(status)})
	return err
}

// Delete removes the row permanently. Retiring is almost always the right
// call instead.
func (s *AdvisorStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteRecord(ctx, s.table, id); err != nil {
		return fmt.Errorf("delete advisor %d: %w", id, err)
	}
	return nil
}
