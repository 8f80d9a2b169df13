package domain

import (
	"math"
	"time"
)

// Market representa un snapshot normalizado de un mercado binario de Gamma.
type Market struct {
	ID              string
	Question        string
	EndDate         time.Time // zero si la API no devuelve fecha parseable
	StartDate       time.Time
	CreatedAt       time.Time
	OutcomePrices   []float64 // [YES, NO], cada uno en [0,1]
	ClobTokenIDs    []string
	Volume          float64
	Liquidity       float64
	Fee             float64 // 0 si la API no devuelve fee parseable
	Closed          bool
	AcceptingOrders bool
	Resolution      string // "" mientras el mercado no esté resuelto
}

// YesPrice devuelve el precio del lado YES, 0 si no hay precios.
func (m Market) YesPrice() float64 {
	if len(m.OutcomePrices) < 1 {
		return 0
	}
	return m.OutcomePrices[0]
}

// NoPrice devuelve el precio del lado NO, 0 si no hay precios.
func (m Market) NoPrice() float64 {
	if len(m.OutcomePrices) < 2 {
		return 0
	}
	return m.OutcomePrices[1]
}

// HoursUntilEnd devuelve las horas hasta el cierre del mercado.
// Devuelve +Inf si EndDate no está definido: un mercado sin fecha nunca
// pasa el filtro de horizonte, pero tampoco rompe el pipeline.
// Puede ser negativo si la fecha ya pasó.
func (m Market) HoursUntilEnd() float64 {
	if m.EndDate.IsZero() {
		return math.Inf(1)
	}
	return time.Until(m.EndDate).Hours()
}

// MaxProbability devuelve la probabilidad del lado dominante.
func (m Market) MaxProbability() float64 {
	return math.Max(m.YesPrice(), m.NoPrice())
}

// DominantOutcome devuelve el lado con mayor probabilidad.
// En empate gana YES.
func (m Market) DominantOutcome() string {
	if m.YesPrice() >= m.NoPrice() {
		return OutcomeYes
	}
	return OutcomeNo
}

// DominantPrice devuelve el precio del lado dominante.
func (m Market) DominantPrice() float64 {
	if m.DominantOutcome() == OutcomeYes {
		return m.YesPrice()
	}
	return m.NoPrice()
}

// IsResolved devuelve true si el mercado tiene resolución publicada.
func (m Market) IsResolved() bool {
	return m.Resolution != ""
}

// TruncateQuestion devuelve la pregunta del mercado truncada a maxLen caracteres.
// Si la pregunta está vacía usa los primeros caracteres del ID como fallback.
func TruncateQuestion(question, id string, maxLen int) string {
	q := question
	if q == "" {
		if len(id) > 20 {
			q = id[:20] + "..."
		} else {
			q = id
		}
	}
	if len(q) > maxLen {
		q = q[:maxLen-3] + "..."
	}
	return q
}
