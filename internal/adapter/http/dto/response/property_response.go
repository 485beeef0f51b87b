package response

import (
	"time"

	"seguro_imovel/internal/domain/entities"
)

type PropertyResponse struct {
	ID string `json:"id"`

	OwnerName     string `json:"owner_name"`
	OwnerDocument string `json:"owner_document"`

	Type             string `json:"type"`
	ConstructionType string `json:"construction_type,omitempty"`

	Address  string `json:"address"`
	Number   string `json:"number,omitempty"`
	District string `json:"district,omitempty"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zip_code"`

	ConstructionYear *int     `json:"construction_year,omitempty"`
	Area             *float64 `json:"area,omitempty"`
	EstimatedValue   *float64 `json:"estimated_value,omitempty"`

	RiskCategory string `json:"risk_category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromProperty(p entities.Property) PropertyResponse {
	return PropertyResponse{
		ID:               p.ID,
		OwnerName:        p.OwnerName,
		OwnerDocument:    p.OwnerDocument,
		Type:             p.Type,
		ConstructionType: p.ConstructionType,
		Address:          p.Address,
		Number:           p.Number,
		District:         p.District,
		City:             p.City,
		State:            p.State,
		ZipCode:          p.ZipCode,
		ConstructionYear: p.ConstructionYear,
		Area:             p.Area,
		EstimatedValue:   p.EstimatedValue,
		RiskCategory:     string(p.RiskCategory),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func FromProperties(properties []entities.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, FromProperty(p))
	}
	return out
}
