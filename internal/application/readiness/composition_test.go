package readiness_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomlabs/readiness-api/internal/application/readiness"
)

func newCompositionResolver(s *memStore) *readiness.CompositionResolver {
	return readiness.NewCompositionResolver(s, s, newLedger(s))
}

// Un SKU puede ser kit en una ubicación y simple en otra: solo cuenta la
// receta registrada para la ubicación consultada.
func TestHasComposition_PorUbicacion(t *testing.T) {
	s := newMemStore()
	s.addComponent("KIT-1", "PART-A", strPtr("L1"), 1)
	resolver := newCompositionResolver(s)

	has, err := resolver.HasComposition(context.Background(), testOrg, "KIT-1", strPtr("L1"))
	require.NoError(t, err)
	assert.True(t, has)

	has, err = resolver.HasComposition(context.Background(), testOrg, "KIT-1", strPtr("L2"))
	require.NoError(t, err)
	assert.False(t, has, "sin filas para L2 no hay composición ahí, no es un kit de costo cero")

	has, err = resolver.HasComposition(context.Background(), testOrg, "KIT-1", nil)
	require.NoError(t, err)
	assert.False(t, has, "la receta de L1 no aplica a la consulta global")

	has, err = resolver.HasComposition(context.Background(), testOrg, "OTRO", strPtr("L1"))
	require.NoError(t, err)
	assert.False(t, has, "un padre ausente del catálogo de composiciones reporta false")
}

func TestGetComponents(t *testing.T) {
	s := newMemStore()
	s.addComponent("KIT-1", "PART-A", strPtr("L1"), 2)
	s.addComponent("KIT-1", "PART-B", strPtr("L1"), 1)
	resolver := newCompositionResolver(s)

	rows, err := resolver.GetComponents(context.Background(), testOrg, "KIT-1", strPtr("L1"))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PART-A", rows[0].ComponentSKU)
	assert.True(t, rows[0].QuantityPerUnit.Equal(decimal.NewFromInt(2)))
}

// Kit {A:2, B:1} pedido 3 veces: listo solo si onHand(A) >= 6 y onHand(B) >= 3.
func TestComponentStockSufficient_Kit(t *testing.T) {
	s := newMemStore()
	s.addComponent("KIT-1", "PART-A", strPtr("L1"), 2)
	s.addComponent("KIT-1", "PART-B", strPtr("L1"), 1)
	s.setLocationStock("PART-A", "L1", 6)
	s.setLocationStock("PART-B", "L1", 3)
	resolver := newCompositionResolver(s)

	ok, shortages, err := resolver.ComponentStockSufficient(context.Background(), testOrg, "KIT-1", strPtr("L1"), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, shortages)

	// Bajar PART-A a 5 voltea el resultado y nombra al componente corto.
	s.setLocationStock("PART-A", "L1", 5)
	ok, shortages, err = resolver.ComponentStockSufficient(context.Background(), testOrg, "KIT-1", strPtr("L1"), decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, shortages, 1)
	assert.Equal(t, "PART-A", shortages[0].ComponentSKU)
	assert.True(t, shortages[0].Required.Equal(decimal.NewFromInt(6)))
	assert.True(t, shortages[0].Available.Equal(decimal.NewFromInt(5)))
}

// Sin ubicación la verificación corre contra el agregado del catálogo.
func TestComponentStockSufficient_Agregado(t *testing.T) {
	s := newMemStore()
	s.addComponent("KIT-1", "PART-A", nil, 2)
	s.addSKU("PART-A", 4, true)
	resolver := newCompositionResolver(s)

	ok, _, err := resolver.ComponentStockSufficient(context.Background(), testOrg, "KIT-1", nil, decimal.NewFromInt(2))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, shortages, err := resolver.ComponentStockSufficient(context.Background(), testOrg, "KIT-1", nil, decimal.NewFromInt(3))
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, shortages, 1)
	assert.Equal(t, "PART-A", shortages[0].ComponentSKU)
}
