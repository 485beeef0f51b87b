package entities

import "time"

// RiskCategory is the derived risk tier of a property.
type RiskCategory string

const (
	RiskAlto  RiskCategory = "alto"
	RiskMedio RiskCategory = "medio"
	RiskBaixo RiskCategory = "baixo"
)

// Property is an insurable property owned by an associate.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (user_id-index): user_id
//
// RiskCategory is recomputed whenever area, construction year or estimated
// value change; it is never accepted from the caller.

type Property struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`

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

	RiskCategory RiskCategory `json:"risk_category,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
