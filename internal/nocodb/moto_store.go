// internal/nocodb/moto_store.go
package nocodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/autorunai/moto-backend/internal/models"
)

// MotoStore reads and manages the "lista_de_precios" table.
type MotoStore struct {
	client *Client
	table  string
}

func NewMotoStore(client *Client, table string) *MotoStore {
	return &MotoStore{client: client, table: table}
}

// List applies the catalog filters NocoDB-side and returns matching rows
// with the total row count.
func (s *MotoStore) List(ctx context.Context, opts models.ListMotosOptions) ([]models.Moto, int64, error) {
	var clauses []string
	if opts.ActiveOnly {
		clauses = append(clauses, fmt.Sprintf("(Activo,eq,%d)", models.MotoStatusActive))
	}
	if opts.Brand != "" {
		clauses = append(clauses, fmt.Sprintf("(Marca,eq,%s)", opts.Brand))
	}
	if opts.Category != "" {
		clauses = append(clauses, fmt.Sprintf("(Categoria,eq,%s)", opts.Category))
	}
	if opts.Displacement != "" {
		clauses = append(clauses, fmt.Sprintf("(Categoria_Cilindraje,eq,%s)", opts.Displacement))
	}
	if opts.AvailableOnly {
		clauses = append(clauses, "(motos_disponibles,eq,Disponible)")
	}

	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = "Productos_motos"
	}
	sort := orderBy
	if opts.OrderDesc {
		sort = "-" + orderBy
	}

	q := Query{
		Where:  strings.Join(clauses, "~and"),
		Sort:   sort,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}

	var resp models.ListResponse[models.Moto]
	if err := s.client.List(ctx, s.table, q, &resp); err != nil {
		return nil, 0, fmt.Errorf("list motos: %w", err)
	}

	total := resp.PageInfo.TotalRows
	if total == 0 {
		total = int64(len(resp.List))
	}
	return resp.List, total, nil
}

func (s *MotoStore) GetByID(ctx context.Context, id int) (*models.Moto, error) {
	var moto models.Moto
	if err := s.client.GetRecord(ctx, s.table, id, &moto); err != nil {
		return nil, err
	}
	return &moto, nil
}

// Search finds motos whose model name contains the query.
func (s *MotoStore) Search(ctx context.Context, query string) ([]models.Moto, error) {
	var resp models.ListResponse[models.Moto]
	q := Query{Where: fmt.Sprintf("(Productos_motos,like,%%%s%%)", query)}
	if err := s.client.List(ctx, s.table, q, &resp); err != nil {
		return nil, fmt.Errorf("search motos %q: %w", query, err)
	}
	return resp.List, nil
}

func (s *MotoStore) Create(ctx context.Context, fields map[string]any) (*models.Moto, error) {
	var moto models.Moto
	if err := s.client.CreateRecord(ctx, s.table, fields, &moto); err != nil {
		return nil, fmt.Errorf("create moto: %w", err)
	}
	return &moto, nil
}

func (s *MotoStore) Update(ctx context.Context, id int, fields map[string]any) (*models.Moto, error) {
	var moto models.Moto
	if err := s.client.UpdateRecord(ctx, s.table, id, fields, &moto); err != nil {
		return nil, fmt.Errorf("update moto %d: %w", id, err)
	}
	return &moto, nil
}

// SetStatus puts a moto on or off the public catalog.
func (s *MotoStore) SetStatus(ctx context.Context, id int, status models.MotoStatus) error {
	_, err := s.Update(ctx, id, map[string]any{"Activo": int(status)})
	return err
}

func (s *MotoStore) Delete(ctx context.Context, id int) error {
	if err := s.client.DeleteRecord(ctx, s.table, id); err != nil {
		return fmt.Errorf("delete moto %d: %w", id, err)
	}
	return nil
}

// BaseURL exposes the NocoDB origin for building attachment URLs.
func (s *MotoStore) BaseURL() string {
	return s.client.baseURL
}
