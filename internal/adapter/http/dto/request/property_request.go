package request

import (
	"strings"

	"seguro_imovel/internal/domain/entities"
)

// PropertyRequest is the public payload for property creation and update.
// risk category is intentionally absent: it is always derived server-side.
type PropertyRequest struct {
	OwnerName     string `json:"ownerName" binding:"required"`
	OwnerDocument string `json:"ownerDocument" binding:"required"`

	Type             string `json:"type" binding:"required"`
	ConstructionType string `json:"constructionType"`

	Address  string `json:"address" binding:"required"`
	Number   string `json:"number"`
	District string `json:"district"`
	City     string `json:"city" binding:"required"`
	State    string `json:"state" binding:"required"`
	ZipCode  string `json:"zipCode" binding:"required"`

	ConstructionYear *int     `json:"constructionYear"`
	Area             *float64 `json:"area"`
	EstimatedValue   *float64 `json:"estimatedValue"`
}

func (r PropertyRequest) ToProperty() entities.Property {
	return entities.Property{
		OwnerName:        strings.TrimSpace(r.OwnerName),
		OwnerDocument:    strings.TrimSpace(r.OwnerDocument),
		Type:             strings.TrimSpace(r.Type),
		ConstructionType: strings.TrimSpace(r.ConstructionType),
		Address:          strings.TrimSpace(r.Address),
		Number:           strings.TrimSpace(r.Number),
		District:         strings.TrimSpace(r.District),
		City:             strings.TrimSpace(r.City),
		State:            strings.TrimSpace(r.State),
		ZipCode:          strings.TrimSpace(r.ZipCode),
		ConstructionYear: r.ConstructionYear,
		Area:             r.Area,
		EstimatedValue:   r.EstimatedValue,
	}
}
