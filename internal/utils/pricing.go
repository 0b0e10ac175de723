// internal/utils/pricing.go
//
// Dynamic price computation for the catalog. Everything here is a pure
// function of the record it receives; the heterogeneous raw price formats
// ("$ 5.900.000", 5900000, null) are sanitized at this boundary so the rest
// of the service only sees float64.
package utils

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/autorunai/moto-backend/internal/models"
)

// YearOption selects which model year's price list applies.
type YearOption string

const (
	Year2026 YearOption = "2026"
	Year2027 YearOption = "2027"

	// YearCurrent and YearNext document which literal year is which.
	YearCurrent = Year2026
	YearNext    = Year2027
)

// DefaultDownPaymentRate applies to every model without a special markup.
const DefaultDownPaymentRate = 0.10

// SpecialDownPaymentRate applies to TRICARGO 200 variants.
const SpecialDownPaymentRate = 0.15

// Columns the next-year price may live under; the upstream sheet is not
// consistent about which one it uses.
var nextYearPriceColumns = []string{"Precio comercial 2027", "Precio_comercial_2027"}

// PriceSet is the display price triplet for one moto and one year. When
// Available is false all prices are nil and Percentage still carries the
// default rate so the UI can render it.
type PriceSet struct {
	Commercial  *float64 `json:"comercial"`
	Cash        *float64 `json:"contado"`
	DownPayment *float64 `json:"inicial"`
	Percentage  float64  `json:"porcentaje"`
	Available   bool     `json:"disponible"`
}

// CleanNumber coerces whatever the sheet holds into a float64. Numbers pass
// through; strings lose currency symbols, thousands dots and whitespace, and
// a decimal comma becomes a decimal point. Anything unparseable is 0.
// It never panics and never returns an error.
func CleanNumber(val any) float64 {
	switch v := val.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0
		}
		return v
	case float32:
		return CleanNumber(float64(v))
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		return cleanNumberString(v)
	default:
		return 0
	}
}

func cleanNumberString(s string) float64 {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', '.', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	if cleaned == "" {
		return 0
	}
	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// IsSpecialMarkupModel reports whether the 15% down-payment exception
// applies. The rule fires on a substring match, so every TRICARGO 200 trim
// ("TRICARGO 200 REFRIGERADO", ...) is covered.
func IsSpecialMarkupModel(name string) bool {
	return strings.Contains(strings.ToUpper(name), "TRICARGO 200")
}

// ComputePrices derives the display prices for one moto and one year.
//
// Cash price is base plus the cash transit fee; the down payment is the
// markup percentage of base, rounded to the nearest peso, plus the financed
// transit fee. Next-year pricing is opt-in per record: without a populated
// 2027 column the 2027 result is unavailable even when a 2026 price exists.
func ComputePrices(m *models.Moto, year YearOption) PriceSet {
	unavailable := PriceSet{Percentage: DefaultDownPaymentRate}

	var base float64
	if year == Year2027 {
		base = CleanNumber(NextYearPrice(m))
	} else {
		base = CleanNumber(m.CommercialPrice)
	}
	if base == 0 {
		return unavailable
	}

	feeCash := CleanNumber(m.TransitFeeCash)
	feeFinanced := CleanNumber(m.TransitFeeFinanced)

	name := m.Model
	if name == "" {
		name, _ = m.Field("Modelo").(string)
	}
	pct := DefaultDownPaymentRate
	if IsSpecialMarkupModel(name) {
		pct = SpecialDownPaymentRate
	}

	cash := base + feeCash
	down := math.Round(base*pct) + feeFinanced
	return PriceSet{
		Commercial:  &base,
		Cash:        &cash,
		DownPayment: &down,
		Percentage:  pct,
		Available:   true,
	}
}

// NextYearPrice returns the raw 2027 price cell under whichever column name
// the record uses, or nil.
func NextYearPrice(m *models.Moto) any {
	for _, col := range nextYearPriceColumns {
		if v := m.Field(col); v != nil {
			return v
		}
	}
	return nil
}

// HasNextYearPrice reports whether the record opted into 2027 pricing.
func HasNextYearPrice(m *models.Moto) bool {
	return CleanNumber(NextYearPrice(m)) > 0
}

// DefaultYear picks the year a detail page should open on: 2027 when the
// record prices it, 2026 otherwise.
func DefaultYear(m *models.Moto) YearOption {
	if HasNextYearPrice(m) {
		return Year2027
	}
	return Year2026
}

// ParseYear maps a query value to a YearOption, defaulting to 2026.
func ParseYear(s string) YearOption {
	switch s {
	case string(Year2027), "next":
		return Year2027
	default:
		return Year2026
	}
}

var copPrinter = message.NewPrinter(language.MustParse("es-CO"))

// FormatPrice renders a price as Colombian pesos with no decimals
// ("$ 5.900.000"). Nil and zero render as a dash, never "$ 0".
func FormatPrice(value *float64) string {
	if value == nil || *value == 0 {
		return "-"
	}
	return copPrinter.Sprintf("$ %.0f", *value)
}
