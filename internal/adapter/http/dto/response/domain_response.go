package response

import "seguro_imovel/internal/domain/insurer"

type DomainResponse struct {
	Domain int                 `json:"domain"`
	Items  []insurer.DomainItem `json:"items"`
}

func FromDomainTable(code int, items []insurer.DomainItem) DomainResponse {
	return DomainResponse{Domain: code, Items: items}
}
