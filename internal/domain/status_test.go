package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ecomlabs/readiness-api/internal/domain"
)

// TestCombine verifica la precedencia fija del combinador: gana el estado más
// severo, y los bloqueos exclusivos de fulfillment pasan sin cambio.
func TestCombine(t *testing.T) {
	cases := []struct {
		name        string
		fulfillment domain.FulfillmentStatus
		supply      domain.SupplyStatus
		want        domain.CombinedStatus
	}{
		{"sku no registrado gana sobre insumos listos", domain.FulfillmentSkuNotRegistered, domain.SupplyReady, domain.CombinedSkuNotRegistered},
		{"insumo no registrado gana sobre fulfillment listo", domain.FulfillmentReady, domain.SupplyInsumoNotRegistered, domain.CombinedSkuNotRegistered},
		{"insumo pendiente degrada a sin stock", domain.FulfillmentReady, domain.SupplyInsumoPending, domain.CombinedOutOfStock},
		{"sin stock gana sobre insumos listos", domain.FulfillmentOutOfStock, domain.SupplyReady, domain.CombinedOutOfStock},
		{"sin mapping pasa sin cambio", domain.FulfillmentUnmapped, domain.SupplyReady, domain.CombinedUnmapped},
		{"sin composición pasa sin cambio", domain.FulfillmentNoComposition, domain.SupplyNoInsumoMapping, domain.CombinedNoComposition},
		{"listo con insumos listos", domain.FulfillmentReady, domain.SupplyReady, domain.CombinedReady},
		{"listo sin insumos asociados", domain.FulfillmentReady, domain.SupplyNoInsumoMapping, domain.CombinedReady},
		{"no registrado gana sobre insumo pendiente", domain.FulfillmentSkuNotRegistered, domain.SupplyInsumoPending, domain.CombinedSkuNotRegistered},
		{"sin mapping con insumo pendiente degrada a sin stock", domain.FulfillmentUnmapped, domain.SupplyInsumoPending, domain.CombinedOutOfStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.Combine(tc.fulfillment, tc.supply))
		})
	}
}
