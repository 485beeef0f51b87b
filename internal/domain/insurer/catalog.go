package insurer

// DomainItem is one entry of an insurer domain table (code + description).
type DomainItem struct {
	Code        int    `json:"code"`
	Description string `json:"description"`
}

// Insurer domain table codes exposed through GET /domains/:code.
const (
	DomainPaymentMethods = 81
	DomainCoverages      = 9999
)

// The insurer publishes these tables through a catalog endpoint that is not
// yet enabled for our partner code, so they are shipped statically with the
// contract version this service targets.
var domainTables = map[int][]DomainItem{
	DomainPaymentMethods: {
		{Code: 1, Description: "Débito em conta bancária"},
		{Code: 2, Description: "Boleto Bancário"},
		{Code: 4, Description: "Cartão de Crédito"},
	},
	DomainCoverages: {
		{Code: 1, Description: "Incêndio / Raio / Explosão"},
		{Code: 2, Description: "Danos Elétricos"},
		{Code: 3, Description: "Responsabilidade Civil Familiar"},
	},
}

// DomainTable returns the entries of a domain table, or an empty list for an
// unknown code.
func DomainTable(code int) []DomainItem {
	items, ok := domainTables[code]
	if !ok {
		return []DomainItem{}
	}
	out := make([]DomainItem, len(items))
	copy(out, items)
	return out
}
