package readiness_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ecomlabs/readiness-api/internal/application/readiness"
	"github.com/ecomlabs/readiness-api/internal/domain"
	"github.com/ecomlabs/readiness-api/internal/domain/entity"
	"github.com/ecomlabs/readiness-api/internal/domain/repository"
	"github.com/ecomlabs/readiness-api/pkg/logger"
)

const testOrg = "org-1"

// ──────────────────────────────────────────────────────────────────────────────
// memStore: implementación en memoria de todos los puertos del motor, usada
// por los tests de aplicación. Un solo mutex protege todo el estado; el
// decremento condicional se evalúa bajo el lock, igual que el UPDATE ... WHERE
// quantity >= qty lo hace a nivel de fila en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	mu           sync.Mutex
	skus         map[string]*entity.StockSKU
	locations    map[string]*entity.StockLocation
	locStock     map[string]decimal.Decimal // clave "sku|locationID"
	mappings     map[string]*entity.SkuMapping
	compositions []*entity.ComponentRow
	insumos      []*entity.InsumoComposition
	movements    []*entity.StockMovement
	upserts      map[string]int
	// failGet fuerza un error de almacenamiento al leer ese SKU del catálogo;
	// failList hace lo propio cuando el SKU aparece en un lookup en lote.
	failGet  map[string]error
	failList map[string]error
}

var (
	_ repository.MappingRepository           = (*memStore)(nil)
	_ repository.StockSkuRepository          = (*memStore)(nil)
	_ repository.LocationStockRepository     = (*memStore)(nil)
	_ repository.StockLocationRepository     = (*memStore)(nil)
	_ repository.CompositionRepository       = (*memStore)(nil)
	_ repository.InsumoCompositionRepository = (*memStore)(nil)
	_ repository.StockMovementRepository     = (*memStore)(nil)
	_ readiness.TxRunner                     = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		skus:      make(map[string]*entity.StockSKU),
		locations: make(map[string]*entity.StockLocation),
		locStock:  make(map[string]decimal.Decimal),
		mappings:  make(map[string]*entity.SkuMapping),
		upserts:   make(map[string]int),
		failGet:   make(map[string]error),
		failList:  make(map[string]error),
	}
}

func stockKey(sku, locationID string) string { return sku + "|" + locationID }

// Constructores de fixtures.

func (s *memStore) addSKU(sku string, onHand int64, active bool) {
	s.skus[sku] = &entity.StockSKU{
		ID:             "id-" + sku,
		OrgID:          testOrg,
		SKU:            sku,
		Name:           sku,
		Active:         active,
		QuantityOnHand: decimal.NewFromInt(onHand),
	}
}

func (s *memStore) addLocation(id, name string) {
	s.locations[id] = &entity.StockLocation{ID: id, OrgID: testOrg, Name: name}
}

func (s *memStore) setLocationStock(sku, locationID string, qty int64) {
	s.locStock[stockKey(sku, locationID)] = decimal.NewFromInt(qty)
}

func (s *memStore) addMapping(orderSKU, stockSKU string, multiplier int64) {
	target := stockSKU
	s.mappings[orderSKU] = &entity.SkuMapping{
		ID:             "map-" + orderSKU,
		OrgID:          testOrg,
		OrderSKU:       orderSKU,
		StockSKU:       &target,
		UnitMultiplier: decimal.NewFromInt(multiplier),
		Active:         true,
	}
}

func (s *memStore) addComponent(parent, component string, locationID *string, qtyPerUnit int64) {
	s.compositions = append(s.compositions, &entity.ComponentRow{
		ID:              "comp-" + parent + "-" + component,
		OrgID:           testOrg,
		ParentSKU:       parent,
		ComponentSKU:    component,
		LocationID:      locationID,
		QuantityPerUnit: decimal.NewFromInt(qtyPerUnit),
	})
}

func (s *memStore) addInsumo(stockSKU, insumoSKU string) {
	s.insumos = append(s.insumos, &entity.InsumoComposition{
		ID:        "ins-" + stockSKU + "-" + insumoSKU,
		OrgID:     testOrg,
		StockSKU:  stockSKU,
		InsumoSKU: insumoSKU,
		Quantity:  decimal.NewFromInt(1),
		Active:    true,
	})
}

// MappingRepository

func (s *memStore) FindActiveByOrderSKUs(_ context.Context, orgID string, orderSKUs []string) ([]*entity.SkuMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.SkuMapping
	for _, orderSKU := range orderSKUs {
		if m, ok := s.mappings[orderSKU]; ok && m.OrgID == orgID && m.Active {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memStore) UpsertPlaceholder(_ context.Context, m *entity.SkuMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mappings[m.OrderSKU]; ok {
		return nil
	}
	clone := *m
	s.mappings[m.OrderSKU] = &clone
	s.upserts[m.OrderSKU]++
	return nil
}

// StockSkuRepository

func (s *memStore) GetBySKU(_ context.Context, orgID, sku string) (*entity.StockSKU, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failGet[sku]; err != nil {
		return nil, err
	}
	row, ok := s.skus[sku]
	if !ok || row.OrgID != orgID {
		return nil, nil
	}
	clone := *row
	return &clone, nil
}

func (s *memStore) ListBySKUs(_ context.Context, orgID string, skus []string) ([]*entity.StockSKU, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.StockSKU
	for _, sku := range skus {
		if err := s.failList[sku]; err != nil {
			return nil, err
		}
		if row, ok := s.skus[sku]; ok && row.OrgID == orgID {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memStore) UpdateQuantityOnHand(_ context.Context, _, sku string, qty decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.skus[sku]; ok {
		row.QuantityOnHand = qty
	}
	return nil
}

// LocationStockRepository

func (s *memStore) Get(_ context.Context, orgID, sku, locationID string) (*entity.LocationStock, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	qty, ok := s.locStock[stockKey(sku, locationID)]
	if !ok {
		return nil, nil
	}
	return &entity.LocationStock{OrgID: orgID, SKU: sku, LocationID: locationID, Quantity: qty}, nil
}

func (s *memStore) GetManyAtLocation(_ context.Context, _ string, skus []string, locationID string) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]decimal.Decimal)
	for _, sku := range skus {
		if qty, ok := s.locStock[stockKey(sku, locationID)]; ok {
			out[sku] = qty
		}
	}
	return out, nil
}

func (s *memStore) DecrementGuarded(_ context.Context, _, sku, locationID string, qty decimal.Decimal) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := stockKey(sku, locationID)
	current, ok := s.locStock[key]
	if !ok || current.LessThan(qty) {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	current = current.Sub(qty)
	s.locStock[key] = current
	return current, nil
}

func (s *memStore) SumBySKU(_ context.Context, _, sku string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := decimal.Zero
	for key, qty := range s.locStock {
		if strings.HasPrefix(key, sku+"|") {
			sum = sum.Add(qty)
		}
	}
	return sum, nil
}

// StockLocationRepository

func (s *memStore) GetByID(_ context.Context, orgID, id string) (*entity.StockLocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loc, ok := s.locations[id]
	if !ok || loc.OrgID != orgID {
		return nil, nil
	}
	clone := *loc
	return &clone, nil
}

// CompositionRepository

func (s *memStore) ListByParent(_ context.Context, orgID, parentSKU string, locationID *string) ([]*entity.ComponentRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.ComponentRow
	for _, row := range s.compositions {
		if row.OrgID != orgID || row.ParentSKU != parentSKU {
			continue
		}
		if !sameLocation(row.LocationID, locationID) {
			continue
		}
		clone := *row
		out = append(out, &clone)
	}
	return out, nil
}

func sameLocation(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// InsumoCompositionRepository

func (s *memStore) ListByStockSKU(_ context.Context, orgID, stockSKU string) ([]*entity.InsumoComposition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.InsumoComposition
	for _, row := range s.insumos {
		if row.OrgID == orgID && row.StockSKU == stockSKU && row.Active {
			clone := *row
			out = append(out, &clone)
		}
	}
	return out, nil
}

// StockMovementRepository

func (s *memStore) Create(_ context.Context, mov *entity.StockMovement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *mov
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	s.movements = append(s.movements, &clone)
	return nil
}

// TxRunner (sin transacciones reales: los repos ya son atómicos por mutex)

func (s *memStore) Run(_ context.Context, fn func(
	stockRepo repository.LocationStockRepository,
	skuRepo repository.StockSkuRepository,
	movRepo repository.StockMovementRepository,
) error) error {
	return fn(s, s, s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructores del motor sobre el memStore
// ──────────────────────────────────────────────────────────────────────────────

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func newLedger(s *memStore) *readiness.StockLedger {
	return readiness.NewStockLedger(s, s, s, quietLogger())
}

func newEngine(s *memStore) (*readiness.Resolver, *readiness.SupplyValidator, *readiness.StockLedger) {
	ledger := newLedger(s)
	compositions := readiness.NewCompositionResolver(s, s, ledger)
	supply := readiness.NewSupplyValidator(s, s, s, s, 4)
	resolver := readiness.NewResolver(s, s, s, compositions, supply, quietLogger(), 4)
	return resolver, supply, ledger
}

func strPtr(v string) *string { return &v }
