// internal/utils/pricing_test.go
package utils

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autorunai/moto-backend/internal/models"
)

func motoFromJSON(t *testing.T, raw string) *models.Moto {
	t.Helper()
	var m models.Moto
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return &m
}

func TestCleanNumber(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  float64
	}{
		{"nil", nil, 0},
		{"plain number", 5900000.0, 5900000},
		{"int", 5900000, 5900000},
		{"currency string", "$ 5.900.000", 5900000},
		{"thousands dots", "15.990.000", 15990000},
		{"decimal comma", "1.234,56", 1234.56},
		{"whitespace", "  5900000  ", 5900000},
		{"empty string", "", 0},
		{"garbage", "consultar", 0},
		{"NaN", math.NaN(), 0},
		{"infinity", math.Inf(1), 0},
		{"bool", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanNumber(tt.input))
		})
	}
}

func TestCleanNumberIdempotent(t *testing.T) {
	// Sanitizing an already-clean value must not change it.
	once := CleanNumber("$ 5.900.000")
	assert.Equal(t, once, CleanNumber(once))
}

func TestComputePricesDefaultRate(t *testing.T) {
	m := motoFromJSON(t, `{
		"Id": 1,
		"Productos_motos": "SPORT 100",
		"Precio_comercial": 5900000,
		"vueltas_transito_de_contado": 290000,
		"vueltas_transito_con_prenda": 390000
	}`)

	prices := ComputePrices(m, Year2026)
	require.True(t, prices.Available)
	assert.Equal(t, 0.10, prices.Percentage)
	assert.Equal(t, 5900000.0, *prices.Commercial)
	assert.Equal(t, 5900000.0+290000, *prices.Cash)
	assert.Equal(t, math.Round(5900000*0.10)+390000, *prices.DownPayment)
}

func TestComputePricesSpecialMarkup(t *testing.T) {
	// Every TRICARGO 200 trim carries the 15% down payment.
	m := motoFromJSON(t, `{
		"Id": 2,
		"Productos_motos": "TRICARGO 200 REFRIGERADO",
		"Precio_comercial": 15990000
	}`)

	prices := ComputePrices(m, Year2026)
	require.True(t, prices.Available)
	assert.Equal(t, 0.15, prices.Percentage)
	assert.Equal(t, 2398500.0, *prices.DownPayment)
}

func TestComputePricesStringPrice(t *testing.T) {
	m := motoFromJSON(t, `{
		"Id": 3,
		"Productos_motos": "NEO NX",
		"Precio_comercial": "$ 6.500.000"
	}`)

	prices := ComputePrices(m, Year2026)
	require.True(t, prices.Available)
	assert.Equal(t, 6500000.0, *prices.Commercial)
}

func TestComputePricesNextYearOptIn(t *testing.T) {
	// A 2026 price alone never produces a 2027 price.
	withoutNext := motoFromJSON(t, `{
		"Id": 4,
		"Productos_motos": "SPORT 100",
		"Precio_comercial": 5900000
	}`)

	prices := ComputePrices(withoutNext, Year2027)
	assert.False(t, prices.Available)
	assert.Nil(t, prices.Commercial)
	assert.Nil(t, prices.Cash)
	assert.Nil(t, prices.DownPayment)
	assert.Equal(t, 0.10, prices.Percentage)

	withNext := motoFromJSON(t, `{
		"Id": 5,
		"Productos_motos": "SPORT 100",
		"Precio_comercial": 5900000,
		"Precio comercial 2027": 6200000
	}`)

	prices = ComputePrices(withNext, Year2027)
	require.True(t, prices.Available)
	assert.Equal(t, 6200000.0, *prices.Commercial)
}

func TestNextYearPriceColumnVariants(t *testing.T) {
	// The sheet is inconsistent about the 2027 column name; both spellings
	// must be honored.
	spaced := motoFromJSON(t, `{"Id": 1, "Precio comercial 2027": 6200000}`)
	underscored := motoFromJSON(t, `{"Id": 2, "Precio_comercial_2027": 6300000}`)
	neither := motoFromJSON(t, `{"Id": 3, "Precio_comercial": 5900000}`)

	assert.Equal(t, 6200000.0, CleanNumber(NextYearPrice(spaced)))
	assert.Equal(t, 6300000.0, CleanNumber(NextYearPrice(underscored)))
	assert.Nil(t, NextYearPrice(neither))

	assert.True(t, HasNextYearPrice(spaced))
	assert.False(t, HasNextYearPrice(neither))
}

func TestDefaultYear(t *testing.T) {
	withNext := motoFromJSON(t, `{"Id": 1, "Precio_comercial_2027": 6300000}`)
	withoutNext := motoFromJSON(t, `{"Id": 2, "Precio_comercial": 5900000}`)

	assert.Equal(t, Year2027, DefaultYear(withNext))
	assert.Equal(t, Year2026, DefaultYear(withoutNext))
}

func TestParseYear(t *testing.T) {
	assert.Equal(t, Year2027, ParseYear("2027"))
	assert.Equal(t, Year2027, ParseYear("next"))
	assert.Equal(t, Year2026, ParseYear("2026"))
	assert.Equal(t, Year2026, ParseYear(""))
	assert.Equal(t, Year2026, ParseYear("banana"))
}

func TestIsSpecialMarkupModel(t *testing.T) {
	assert.True(t, IsSpecialMarkupModel("TRICARGO 200"))
	assert.True(t, IsSpecialMarkupModel("TRICARGO 200 REFRIGERADO"))
	assert.True(t, IsSpecialMarkupModel("tricargo 200 carpado"))
	assert.False(t, IsSpecialMarkupModel("TRICARGO 150"))
	assert.False(t, IsSpecialMarkupModel("SPORT 100"))
}

func TestFormatPrice(t *testing.T) {
	price := 5900000.0
	zero := 0.0

	assert.Equal(t, "$ 5.900.000", FormatPrice(&price))
	assert.Equal(t, "-", FormatPrice(nil))
	assert.Equal(t, "-", FormatPrice(&zero))
}
