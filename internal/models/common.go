// internal/models/common.go
package models

// AdvisorStatus mirrors the numeric "Activo" column in the Asesores table.
type AdvisorStatus int

const (
	AdvisorStatusInactive AdvisorStatus = 0
	AdvisorStatusActive   AdvisorStatus = 1
	AdvisorStatusRetired  AdvisorStatus = 2
)

func (s AdvisorStatus) String() string {
	switch s {
	case AdvisorStatusInactive:
		return "inactivo"
	case AdvisorStatusActive:
		return "activo"
	case AdvisorStatusRetired:
		return "retirado"
	default:
		return "desconocido"
	}
}

// MotoStatus mirrors the numeric "Activo" column in lista_de_precios.
type MotoStatus int

const (
	MotoStatusInactive MotoStatus = 0
	MotoStatusActive   MotoStatus = 1
)

// ListResponse is the envelope NocoDB wraps every list query in.
type ListResponse[T any] struct {
	List     []T      `json:"list"`
	PageInfo PageInfo `json:"pageInfo"`
}

type PageInfo struct {
	TotalRows   int64 `json:"totalRows,omitempty"`
	Page        int   `json:"page,omitempty"`
	PageSize    int   `json:"pageSize,omitempty"`
	IsFirstPage bool  `json:"isFirstPage,omitempty"`
	IsLastPage  bool  `json:"isLastPage,omitempty"`
}

// Attachment is NocoDB's shape for file/image columns.
type Attachment struct {
	ID         string `json:"id"`
	Path       string `json:"path"`
	Title      string `json:"title"`
	MimeType   string `json:"mimetype"`
	Size       int64  `json:"size"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	SignedPath string `json:"signedPath"`
}
