package polymarket_test

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alejandrodnm/polypaper/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fetchOne sirve el fixture como batch de un solo mercado y lo devuelve mapeado.
func fetchOne(t *testing.T, marketJSON string) domain.Market {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, "[%s]", marketJSON)
	}))
	defer srv.Close()

	client := newTestClient(srv)
	markets, _, err := client.FetchOpenMarkets(context.Background(), time.Hour)
	require.NoError(t, err)
	require.Len(t, markets, 1)
	return markets[0]
}

func TestMapping_StringBooleans(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "closed": "true", "acceptingOrders": "false"}`)
	assert.True(t, m.Closed)
	assert.False(t, m.AcceptingOrders)

	m = fetchOne(t, `{"id": "m1", "closed": "FALSE", "acceptingOrders": "True"}`)
	assert.False(t, m.Closed, "los strings bool son case-insensitive")
	assert.True(t, m.AcceptingOrders)
}

func TestMapping_BoolGarbageDefaultsFalse(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "closed": 7}`)
	assert.False(t, m.Closed)
}

func TestMapping_AcceptingOrdersAbsentDefaultsTrue(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "closed": false}`)
	assert.True(t, m.AcceptingOrders, "campo ausente debe asumir que el mercado acepta órdenes")
}

func TestMapping_NumericCoercion(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "volume": "2500.75", "liquidity": 990, "fee": "abc"}`)
	assert.InDelta(t, 2500.75, m.Volume, 0.001)
	assert.InDelta(t, 990.0, m.Liquidity, 0.001)
	assert.Equal(t, 0.0, m.Fee, "fee no numérico cae a 0")
}

func TestMapping_OutcomePricesNumericElements(t *testing.T) {
	// Gamma a veces codifica los elementos como números dentro del string
	m := fetchOne(t, `{"id": "m1", "outcomePrices": "[0.97, 0.03]"}`)
	assert.InDelta(t, 0.97, m.YesPrice(), 0.0001)
	assert.InDelta(t, 0.03, m.NoPrice(), 0.0001)
}

func TestMapping_OutcomePricesRawArray(t *testing.T) {
	// Un array sin codificar como string no es el formato esperado → sin precios
	m := fetchOne(t, `{"id": "m1", "outcomePrices": [0.97, 0.03]}`)
	assert.Empty(t, m.OutcomePrices)
	assert.Equal(t, 0.0, m.YesPrice())
}

func TestMapping_OutcomePricesGarbage(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "outcomePrices": "not json"}`)
	assert.Empty(t, m.OutcomePrices)

	m = fetchOne(t, `{"id": "m1", "outcomePrices": "[\"0.9\", \"oops\"]"}`)
	assert.Empty(t, m.OutcomePrices, "un elemento corrupto invalida la lista entera")
}

func TestMapping_DateLayouts(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "endDate": "2026-08-25T23:00:00.000Z"}`)
	assert.Equal(t, 25, m.EndDate.Day())

	m = fetchOne(t, `{"id": "m1", "endDate": "2026-08-25"}`)
	assert.Equal(t, 25, m.EndDate.Day())
}

func TestMapping_UnparsableDate(t *testing.T) {
	m := fetchOne(t, `{"id": "m1", "endDate": "soon"}`)
	assert.True(t, m.EndDate.IsZero())
	assert.True(t, math.IsInf(m.HoursUntilEnd(), 1), "sin fecha el horizonte es infinito")
}
