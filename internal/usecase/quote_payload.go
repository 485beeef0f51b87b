package usecase

import (
	"strings"
	"unicode"

	"seguro_imovel/internal/domain/entities"
	"seguro_imovel/internal/domain/insurer"
)

// Insurer contract defaults. The quotation endpoint requires every key to be
// present, so absent values are filled with these instead of being omitted.
const (
	propertyUseResidential = 1
	propertyUseMixed       = 3
	defaultBuyerType       = 1
	defaultActivityType    = 1

	housingTypeHouse     = 1
	housingTypeApartment = 2

	constructionMasonry = 1
	constructionWood    = 2

	zipCodeLength      = 8
	coverageCodeLength = 4
)

// buildQuotationPayload maps the normalized internal request plus the
// referenced property into the insurer's wire shape. Ownership and document
// checks happen before this point; the builder is pure mapping.
func buildQuotationPayload(req entities.QuoteRequest, prop entities.Property) insurer.QuotationRequest {
	propertyUse := req.PropertyUse
	if propertyUse == 0 {
		propertyUse = propertyUseResidential
	}

	// activityType only exists for mixed-use locations; the contract rejects
	// a non-zero value for any other property use.
	activityType := 0
	if propertyUse == propertyUseMixed {
		activityType = req.ActivityType
		if activityType == 0 {
			activityType = defaultActivityType
		}
	}

	buyerType := req.BuyerType
	if buyerType == 0 {
		buyerType = defaultBuyerType
	}

	payerDocument := req.PaymentData.PayerDocument
	if payerDocument == "" {
		payerDocument = prop.OwnerDocument
	}

	coverages := make([]insurer.Coverage, 0, len(req.ListCoverage))
	for _, c := range req.ListCoverage {
		coverages = append(coverages, insurer.Coverage{
			CoverageCode: padCoverageCode(c.Code),
			SumInsured:   c.SumInsured,
		})
	}

	return insurer.QuotationRequest{
		InitialDateInsurance: req.InitialDateInsurance,
		PropertyUse:          propertyUse,
		ActivityType:         activityType,
		BuyerType:            buyerType,
		InsuredData: insurer.InsuredData{
			Name:     req.ClientName,
			Document: req.CpfCnpj,
			Email:    "",
			Phone:    "",
		},
		RiskLocation: insurer.RiskLocation{
			HousingType:      housingType(prop.Type),
			ConstructionType: constructionType(prop.ConstructionType),
			Address: insurer.WireAddress{
				Street:   prop.Address,
				Number:   normalizeStreetNumber(prop.Number),
				District: prop.District,
				City:     prop.City,
				State:    prop.State,
				ZipCode:  normalizeZipCode(prop.ZipCode),
			},
		},
		ListCoverage: coverages,
		PaymentData: insurer.PaymentData{
			PaymentMode:   req.PaymentData.PaymentMode,
			PaymentOption: req.PaymentData.PaymentOption,
			Payer: insurer.PayerData{
				Name:     req.ClientName,
				Document: payerDocument,
				Email:    "",
				Phone:    "",
			},
		},
	}
}

// buildAuditBlocks produces the riskDataAddress/riskCategoryData snapshots
// stored with the quote.
func buildAuditBlocks(prop entities.Property) (entities.RiskDataAddress, entities.RiskCategoryData) {
	return entities.RiskDataAddress{
			Address:  prop.Address,
			Number:   prop.Number,
			District: prop.District,
			City:     prop.City,
			State:    prop.State,
			ZipCode:  prop.ZipCode,
		}, entities.RiskCategoryData{
			RiskCategory:     prop.RiskCategory,
			Area:             prop.Area,
			ConstructionYear: prop.ConstructionYear,
			EstimatedValue:   prop.EstimatedValue,
		}
}

// normalizeStreetNumber maps the "no number" sentinels to "0" and strips
// everything that is not a digit otherwise (e.g. "123-A" -> "123").
func normalizeStreetNumber(number string) string {
	n := strings.ToUpper(strings.TrimSpace(number))
	if n == "S/N" || n == "SN" {
		return "0"
	}
	digits := keepDigits(n)
	if digits == "" {
		return "0"
	}
	return digits
}

// normalizeZipCode yields a fixed-width, digits-only, 8-character zip code
// regardless of partial input: strip non-digits, right-pad with "0",
// truncate to 8.
func normalizeZipCode(zip string) string {
	digits := keepDigits(zip)
	for len(digits) < zipCodeLength {
		digits += "0"
	}
	return digits[:zipCodeLength]
}

// padCoverageCode yields the fixed 4-character, left-zero-padded coverage
// code the insurer expects ("1" -> "0001").
func padCoverageCode(code string) string {
	c := strings.TrimSpace(code)
	for len(c) < coverageCodeLength {
		c = "0" + c
	}
	if len(c) > coverageCodeLength {
		c = c[len(c)-coverageCodeLength:]
	}
	return c
}

func housingType(propertyType string) int {
	if strings.EqualFold(strings.TrimSpace(propertyType), "Casa") {
		return housingTypeHouse
	}
	return housingTypeApartment
}

func constructionType(construction string) int {
	switch strings.ToUpper(strings.TrimSpace(construction)) {
	case "ALVENARIA":
		return constructionMasonry
	case "MADEIRA":
		return constructionWood
	default:
		return constructionMasonry
	}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
