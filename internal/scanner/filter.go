package scanner

import (
	"sort"
	"strings"

	"github.com/alejandrodnm/polypaper/internal/domain"
)

// FilterConfig contiene los parámetros configurables de filtrado.
type FilterConfig struct {
	// MinProbability descarta mercados cuyo outcome dominante cotiza por debajo.
	MinProbability float64
	// MaxProbability descarta mercados cuyo outcome dominante cotiza por encima.
	MaxProbability float64
	// MaxHoursUntilEnd descarta mercados que resuelven después de este horizonte.
	MaxHoursUntilEnd float64
	// MinVolume descarta mercados con volumen acumulado menor a esto.
	MinVolume float64
	// MaxFee descarta mercados cuya fee supera este valor. El valor 0 exige
	// mercados sin fee; no es un filtro desactivable.
	MaxFee float64
	// MaxTradesPerRun limita cuántos mercados sobreviven por ciclo.
	MaxTradesPerRun int
}

// DefaultFilterConfig devuelve la configuración de filtrado conservadora:
// casi-seguros (90-98%) que resuelven en las próximas horas.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		MinProbability:   0.90,
		MaxProbability:   0.98,
		MaxHoursUntilEnd: 4,
		MinVolume:        1000,
		MaxFee:           0,
		MaxTradesPerRun:  5,
	}
}

// Filter aplica los criterios configurados sobre una lista de mercados.
type Filter struct {
	cfg FilterConfig
}

// NewFilter crea un Filter con la configuración dada.
func NewFilter(cfg FilterConfig) *Filter {
	return &Filter{cfg: cfg}
}

// Apply devuelve los mercados que pasan todos los criterios, ordenados por
// precio dominante ascendente (mayor upside primero) y truncados a
// MaxTradesPerRun. El orden es estable: a igual precio gana el que la API
// devolvió antes.
func (f *Filter) Apply(markets []domain.Market) []domain.Market {
	result := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if f.passes(m) {
			result = append(result, m)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DominantPrice() < result[j].DominantPrice()
	})

	if f.cfg.MaxTradesPerRun > 0 && len(result) > f.cfg.MaxTradesPerRun {
		result = result[:f.cfg.MaxTradesPerRun]
	}
	return result
}

// passes devuelve true si el mercado supera todos los criterios, evaluados
// siempre en el mismo orden.
func (f *Filter) passes(m domain.Market) bool {
	if m.Closed || !m.AcceptingOrders {
		return false
	}
	hours := m.HoursUntilEnd()
	if hours <= 0 {
		return false
	}
	if f.cfg.MaxHoursUntilEnd > 0 && hours > f.cfg.MaxHoursUntilEnd {
		return false
	}
	p := m.MaxProbability()
	if p < f.cfg.MinProbability {
		return false
	}
	if f.cfg.MaxProbability > 0 && p > f.cfg.MaxProbability {
		return false
	}
	if m.Fee > f.cfg.MaxFee {
		return false
	}
	if m.Volume < f.cfg.MinVolume {
		return false
	}
	return true
}

// ExcludeByKeyword devuelve los mercados cuya pregunta no contiene ninguna de
// las palabras clave. La comparación es case-insensitive y por substring.
func ExcludeByKeyword(markets []domain.Market, keywords []string) []domain.Market {
	if len(keywords) == 0 {
		return markets
	}
	result := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if containsKeyword(m.Question, keywords) {
			continue
		}
		result = append(result, m)
	}
	return result
}

// containsKeyword busca cada keyword como substring de la pregunta.
func containsKeyword(question string, keywords []string) bool {
	q := strings.ToLower(question)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(q, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
