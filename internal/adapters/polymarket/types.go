package polymarket

import (
	"encoding/json"
	"strconv"
	"strings"
)

// DTOs raw de la API Gamma. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.

// rawMarket es un mercado tal como lo devuelve GET /markets.
// Gamma devuelve bools como strings, números como strings y listas como
// strings JSON-encoded según el endpoint y la edad del mercado; cada campo
// usa un tipo tolerante con default definido en vez de romper el record.
type rawMarket struct {
	ID              string    `json:"id"`
	Question        string    `json:"question"`
	EndDate         string    `json:"endDate"`
	StartDate       string    `json:"startDate"`
	CreatedAt       string    `json:"createdAt"`
	OutcomePrices   priceList `json:"outcomePrices"`
	ClobTokenIDs    idList    `json:"clobTokenIds"`
	Volume          flexFloat `json:"volume"`
	Liquidity       flexFloat `json:"liquidity"`
	Fee             flexFloat `json:"fee"`
	Closed          flexBool  `json:"closed"`
	AcceptingOrders *flexBool `json:"acceptingOrders"` // nil → true (ausente en mercados antiguos)
	Resolution      string    `json:"resolution"`      // null decodifica a ""
}

// flexBool acepta bools nativos y strings "true"/"false" (case-insensitive).
// Cualquier otro valor decodifica a false, nunca a error.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	*b = false
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		*b = flexBool(t)
	case string:
		*b = flexBool(strings.EqualFold(t, "true"))
	}
	return nil
}

// flexFloat acepta números nativos y strings numéricos.
// Valores ausentes o no numéricos decodifican a 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	*f = 0
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch t := v.(type) {
	case float64:
		*f = flexFloat(t)
	case string:
		if parsed, err := strconv.ParseFloat(t, 64); err == nil {
			*f = flexFloat(parsed)
		}
	}
	return nil
}

// priceList decodifica outcomePrices: un string que contiene una lista JSON
// cuyos elementos pueden ser strings o números ("[\"0.97\", \"0.03\"]").
// Cualquier fallo, incluido un array sin codificar, decodifica a lista vacía.
type priceList []float64

func (p *priceList) UnmarshalJSON(data []byte) error {
	*p = nil
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	var items []any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	out := make(priceList, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case float64:
			out = append(out, v)
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil // un elemento corrupto invalida la lista entera
			}
			out = append(out, f)
		default:
			return nil
		}
	}
	*p = out
	return nil
}

// idList decodifica clobTokenIds: un string que contiene una lista JSON de IDs.
// Mismo contrato que priceList: cualquier fallo → lista vacía.
type idList []string

func (l *idList) UnmarshalJSON(data []byte) error {
	*l = nil
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return nil
	}
	*l = items
	return nil
}
