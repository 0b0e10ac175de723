// internal/nocodb/client_test.go
package nocodb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorunai/moto-backend/internal/config"
	"github.com/autorunai/moto-backend/internal/models"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.NocoDBConfig{
		BaseURL: server.URL,
		Token:   "test-token",
		Timeout: 5,
	})
}

func TestListSendsTokenAndQuery(t *testing.T) {
	var gotToken, gotWhere, gotLimit string

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("xc-token")
		gotWhere = r.URL.Query().Get("where")
		gotLimit = r.URL.Query().Get("limit")

		assert.Equal(t, "/api/v2/tables/tbl123/records", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"list": []map[string]any{
				{"Id": 1, "Asesor": "Alejandra González", "Activo": 1},
			},
			"pageInfo": map[string]any{"totalRows": 1},
		})
	})

	var resp models.ListResponse[models.Advisor]
	err := client.List(context.Background(), "tbl123",
		Query{Where: "(Activo,eq,1)", Limit: 25}, &resp)
	require.NoError(t, err)

	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "(Activo,eq,1)", gotWhere)
	assert.Equal(t, "25", gotLimit)
	require.Len(t, resp.List, 1)
	assert.Equal(t, "Alejandra González", resp.List[0].Name)
	assert.Equal(t, int64(1), resp.PageInfo.TotalRows)
}

func TestGetRecordNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	var out models.Advisor
	err := client.GetRecord(context.Background(), "tbl123", 999, &out)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestServerErrorIsAPIError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})

	var out models.Advisor
	err := client.GetRecord(context.Background(), "tbl123", 1, &out)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "upstream exploded")
	assert.NotErrorIs(t, err, ErrRecordNotFound)
}

func TestUpdateRecordPutsIDInBody(t *testing.T) {
	var gotBody map[string]any

	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(map[string]any{"Id": 5})
	})

	var out map[string]any
	err := client.UpdateRecord(context.Background(), "tbl123", 5,
		map[string]any{"Activo": 0}, &out)
	require.NoError(t, err)

	assert.Equal(t, float64(5), gotBody["Id"])
	assert.Equal(t, float64(0), gotBody["Activo"])
}
