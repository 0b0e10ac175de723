// internal/models/moto.go
package models

import "encoding/json"

// Moto is a row of the NocoDB "lista_de_precios" table. Price columns arrive
// as numbers, locale-formatted strings ("$ 5.900.000") or null depending on
// who last edited the sheet, so the money fields stay untyped and are
// sanitized by the pricing code. The full decoded row is retained in raw so
// inconsistently named columns (e.g. "Precio comercial 2027" vs
// "Precio_comercial_2027") can be probed without schema churn here.
type Moto struct {
	ID                 int          `json:"Id"`
	Model              string       `json:"Productos_motos"`
	Brand              string       `json:"Marca"`
	Category           string       `json:"Categoria"`
	Displacement       string       `json:"Categoria_Cilindraje,omitempty"`
	CommercialPrice    any          `json:"Precio_comercial,omitempty"`
	TransitFeeCash     any          `json:"vueltas_transito_de_contado,omitempty"`
	TransitFeeFinanced any          `json:"vueltas_transito_con_prenda,omitempty"`
	CashPrice          any          `json:"precio_de_contado,omitempty"`
	DownPayment        any          `json:"cuota_inicial,omitempty"`
	ModelYear          string       `json:"Modelo,omitempty"`
	Photos             []Attachment `json:"Fotos_imagenes_motos,omitempty"`
	Description        string       `json:"descripcion_rapida,omitempty"`
	Features           string       `json:"caracteristicas y beneficios,omitempty"`
	Warranty           string       `json:"garantia,omitempty"`
	SpecSheet          string       `json:"ficha_tecnica,omitempty"`
	OwnerManual        []Attachment `json:"manual_de_propietario,omitempty"`
	BrandPage          string       `json:"pagina_principal_auteco,omitempty"`
	DiscountPrice      any          `json:"precio_con_descuento,omitempty"`
	DiscountBonus      any          `json:"Bono_de_descuento,omitempty"`
	Availability       string       `json:"motos_disponibles,omitempty"`
	Status             MotoStatus   `json:"Activo,omitempty"`
	CreatedAt          string       `json:"CreatedAt,omitempty"`
	UpdatedAt          string       `json:"UpdatedAt,omitempty"`

	raw map[string]any
}

func (m *Moto) UnmarshalJSON(data []byte) error {
	type plain Moto
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = Moto(p)
	return json.Unmarshal(data, &m.raw)
}

// Field returns the raw value of an arbitrary column, or nil if the column
// was absent from the record.
func (m *Moto) Field(name string) any {
	if m.raw == nil {
		return nil
	}
	return m.raw[name]
}

// SetField overrides a raw column value. Used by tests and by the admin
// update path to keep the raw view consistent with patched records.
func (m *Moto) SetField(name string, value any) {
	if m.raw == nil {
		m.raw = make(map[string]any)
	}
	m.raw[name] = value
}

// MotoExtended is a Moto plus everything the detail page needs precomputed:
// resolved image URLs, parsed markdown and plain-text fallbacks.
type MotoExtended struct {
	Moto
	GalleryImages []string                     `json:"imagenesGaleria,omitempty"`
	MainImage     string                       `json:"imagenPrincipal,omitempty"`
	FeatureMap    map[string]string            `json:"caracteristicasObj,omitempty"`
	SpecSheetMap  map[string]map[string]string `json:"fichaTecnicaObj,omitempty"`
	PlainText     string                       `json:"descripcionTexto,omitempty"`
	WarrantyText  string                       `json:"garantiaTexto,omitempty"`
}

// MotoLegacy is the flat card shape the first front end consumed. Still
// served because live components read it.
type MotoLegacy struct {
	ID           string  `json:"id"`
	Model        string  `json:"modelo"`
	Brand        string  `json:"marca"`
	Category     string  `json:"categoria"`
	Price2026    float64 `json:"precio2026"`
	DownPayment  float64 `json:"cuotaInicial"`
	CashPrice    float64 `json:"precioContado"`
	Image        string  `json:"imagen"`
	Displacement string  `json:"cilindrada,omitempty"`
}

// ListMotosOptions mirrors the catalog's filter bar.
type ListMotosOptions struct {
	ActiveOnly    bool
	Brand         string
	Category      string
	Displacement  string
	AvailableOnly bool
	Limit         int
	Offset        int
	OrderBy       string
	OrderDesc     bool
}

// CreateMotoRequest is the admin payload for a new catalog row.
type CreateMotoRequest struct {
	Model              string `json:"Productos_motos" validate:"required,min=2,max=200"`
	Brand              string `json:"Marca" validate:"required"`
	Category           string `json:"Categoria" validate:"required"`
	Displacement       string `json:"Categoria_Cilindraje,omitempty"`
	CommercialPrice    any    `json:"Precio_comercial,omitempty"`
	TransitFeeCash     any    `json:"vueltas_transito_de_contado,omitempty"`
	TransitFeeFinanced any    `json:"vueltas_transito_con_prenda,omitempty"`
	ModelYear          string `json:"Modelo,omitempty"`
	Description        string `json:"descripcion_rapida,omitempty"`
	Features           string `json:"caracteristicas y beneficios,omitempty"`
	Warranty           string `json:"garantia,omitempty"`
	SpecSheet          string `json:"ficha_tecnica,omitempty"`
	Availability       string `json:"motos_disponibles,omitempty"`
}

// CatalogStats summarizes the catalog for the admin dashboard.
type CatalogStats struct {
	Total      int            `json:"total"`
	ByBrand    map[string]int `json:"por_marca"`
	ByCategory map[string]int `json:"por_categoria"`
	With2027   int            `json:"con_precio_2027"`
}

// BrandMap and CategoryMap normalize free-typed NocoDB cells to the legacy
// enums the old cards expect.
var BrandMap = map[string]string{
	"Tvs": "TVS", "TVS": "TVS", "tvs": "TVS",
	"Victory": "Victory", "victory": "Victory",
	"Kymco": "Kymco", "kymco": "Kymco",
	"Benelli": "Benelli", "benelli": "Benelli",
	"Ceronte": "Ceronte", "ceronte": "Ceronte",
	"Zontes": "Zontes", "zontes": "Zontes",
}

var CategoryMap = map[string]string{
	"Trabajo": "trabajo", "trabajo": "trabajo",
	"Sport": "sport", "sport": "sport",
	"Automatica": "automatica", "automatica": "automatica",
	"Semi Automatica": "semi-automatica", "Semi-Automatica": "semi-automatica", "semi-automatica": "semi-automatica",
	"Deportiva": "deportiva", "deportiva": "deportiva",
	"Todo Terreno": "todo-terreno", "Todo-Terreno": "todo-terreno", "todo-terreno": "todo-terreno",
	"Tricargo": "tricargo", "tricargo": "tricargo",
	"Alta Gama": "alta-gama", "Alta-Gama": "alta-gama", "alta-gama": "alta-gama",
}
