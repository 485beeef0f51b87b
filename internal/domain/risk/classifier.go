// Package risk derives the risk tier of a property from its construction
// attributes. The rules mirror the underwriting table agreed with the
// insurer for the residential product.
package risk

import "seguro_imovel/internal/domain/entities"

const (
	highRiskArea      = 200.0
	highRiskYearLimit = 1990
	highRiskValue     = 800_000.0

	mediumRiskAreaMin  = 101.0
	mediumRiskYearFrom = 1990
	mediumRiskYearTo   = 2004

	lowRiskAreaMax   = 100.0
	lowRiskYearStart = 2005
)

// Classify computes the risk tier for the given attributes. Nil means the
// attribute is unknown. The function is total: when the data is insufficient
// to decide, it falls back to medio.
//
// Precedence (first match wins):
//  1. area > 200, or year < 1990, or value > 800000  -> alto
//  2. area >= 101, or year in [1990, 2004]           -> medio
//  3. area <= 100 and year >= 2005                   -> baixo
//  4. otherwise                                      -> medio
func Classify(area *float64, constructionYear *int, estimatedValue *float64) entities.RiskCategory {
	if (area != nil && *area > highRiskArea) ||
		(constructionYear != nil && *constructionYear < highRiskYearLimit) ||
		(estimatedValue != nil && *estimatedValue > highRiskValue) {
		return entities.RiskAlto
	}

	if (area != nil && *area >= mediumRiskAreaMin) ||
		(constructionYear != nil && *constructionYear >= mediumRiskYearFrom && *constructionYear <= mediumRiskYearTo) {
		return entities.RiskMedio
	}

	if area != nil && *area <= lowRiskAreaMax &&
		constructionYear != nil && *constructionYear >= lowRiskYearStart {
		return entities.RiskBaixo
	}

	return entities.RiskMedio
}
