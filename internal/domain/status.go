package domain

// FulfillmentStatus resultado de la resolución de una línea de pedido contra
// el stock de una ubicación. Ordenado por severidad (más bloqueante primero):
// SKU_NOT_REGISTERED > OUT_OF_STOCK > UNMAPPED > NO_COMPOSITION > READY_TO_FULFILL.
type FulfillmentStatus string

const (
	FulfillmentSkuNotRegistered FulfillmentStatus = "SKU_NOT_REGISTERED"
	FulfillmentOutOfStock       FulfillmentStatus = "OUT_OF_STOCK"
	FulfillmentUnmapped         FulfillmentStatus = "UNMAPPED"
	FulfillmentNoComposition    FulfillmentStatus = "NO_COMPOSITION"
	FulfillmentReady            FulfillmentStatus = "READY_TO_FULFILL"
)

// SupplyStatus resultado de la validación de insumos de un SKU de stock.
// Severidad: INSUMO_NOT_REGISTERED > INSUMO_PENDING > NO_INSUMO_MAPPING > READY.
type SupplyStatus string

const (
	SupplyInsumoNotRegistered SupplyStatus = "INSUMO_NOT_REGISTERED"
	SupplyInsumoPending       SupplyStatus = "INSUMO_PENDING"
	SupplyNoInsumoMapping     SupplyStatus = "NO_INSUMO_MAPPING"
	SupplyReady               SupplyStatus = "READY"
)

// CombinedStatus estado final visible al usuario, reducción de los dos anteriores.
type CombinedStatus string

const (
	CombinedSkuNotRegistered CombinedStatus = "SKU_NOT_REGISTERED"
	CombinedOutOfStock       CombinedStatus = "OUT_OF_STOCK"
	CombinedUnmapped         CombinedStatus = "UNMAPPED"
	CombinedNoComposition    CombinedStatus = "NO_COMPOSITION"
	CombinedReady            CombinedStatus = "READY_TO_FULFILL"
)

// Combine reduce un estado de fulfillment y uno de insumos a un único estado,
// con precedencia fija (gana el más severo). Función pura: se recalcula en
// cada resolución, ningún estado es terminal.
func Combine(f FulfillmentStatus, s SupplyStatus) CombinedStatus {
	if f == FulfillmentSkuNotRegistered || s == SupplyInsumoNotRegistered {
		return CombinedSkuNotRegistered
	}
	if f == FulfillmentOutOfStock || s == SupplyInsumoPending {
		return CombinedOutOfStock
	}
	// Bloqueos exclusivos de fulfillment: pasan sin cambio.
	if f == FulfillmentUnmapped {
		return CombinedUnmapped
	}
	if f == FulfillmentNoComposition {
		return CombinedNoComposition
	}
	return CombinedReady
}
