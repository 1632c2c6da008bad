// internal/store/store.go
package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/engine"
)

// Store owns the authoritative in-memory inventory state: the product
// collection, alert-suppression state, audit log, business configuration
// and current owner identity. Every mutation runs under one lock, so a
// mutation is a single serialized step; persistence is the caller's
// concern (see service.Inventory). Severity is never stored, always
// recomputed.
type Store struct {
	mu sync.Mutex

	products     []domain.Product
	ignoredUntil map[string]int64
	readAlerts   map[string]struct{}
	log          EventLog
	config       domain.BusinessConfig
	ownerID      string

	now   func() time.Time
	newID func() string
}

// Option tweaks store construction, used by tests to pin clocks and ids.
type Option func(*Store)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id source.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New builds a store pre-seeded with the demo catalog, anonymous owner
// and default business configuration.
func New(opts ...Option) *Store {
	s := &Store{
		products:     domain.DemoInventory(),
		ignoredUntil: make(map[string]int64),
		readAlerts:   make(map[string]struct{}),
		config:       domain.DefaultBusinessConfig(""),
		now:          time.Now,
		newID:        uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OwnerID returns the current owner identity, empty in anonymous mode.
func (s *Store) OwnerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ownerID
}

// SetOwner records the owner identity provided by the auth collaborator.
func (s *Store) SetOwner(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ownerID = ownerID
}

// Config returns the active business configuration.
func (s *Store) Config() domain.BusinessConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// SetConfig replaces the business configuration wholesale.
func (s *Store) SetConfig(cfg domain.BusinessConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
}

// ApplyConfig merges a partial settings update and returns the previous
// and resulting configurations; the caller uses the previous value to
// roll back if remote persistence fails.
func (s *Store) ApplyConfig(u domain.BusinessConfigUpdate) (prev, next domain.BusinessConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.config
	next = prev
	if u.BusinessName != nil {
		next.BusinessName = *u.BusinessName
	}
	if u.CurrencySymbol != nil {
		next.CurrencySymbol = *u.CurrencySymbol
	}
	if u.CriticalThreshold != nil {
		next.CriticalThreshold = *u.CriticalThreshold
	}
	if u.LowThreshold != nil {
		next.LowThreshold = *u.LowThreshold
	}
	if u.LogoInitials != nil {
		next.LogoInitials = *u.LogoInitials
	}
	s.config = next
	return prev, next
}

// Products returns a copy of the product collection.
func (s *Store) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// Product looks up a single product by id.
func (s *Store) Product(id string) (domain.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(id)
}

func (s *Store) findLocked(id string) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// AddProduct assigns an id, resolves the unit default and appends the
// product to the collection.
func (s *Store) AddProduct(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.newID()
	if p.Unit == "" {
		p.Unit = domain.DefaultUnit
	}
	s.products = append(s.products, p)
	return p
}

// UpdateProduct merges a partial edit into a product. When the edit
// changes the stock level, the boundary-crossing rule derives an audit
// event, which is appended to the log and returned for persistence. A
// stale id makes the whole operation a no-op.
func (s *Store) UpdateProduct(id string, u domain.ProductUpdate) (domain.Product, *domain.StockEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.findLocked(id)
	if !ok {
		return domain.Product{}, nil, false
	}

	next := prev
	if u.Name != nil {
		next.Name = *u.Name
	}
	if u.Category != nil {
		next.Category = *u.Category
	}
	if u.Stock != nil {
		next.Stock = *u.Stock
	}
	if u.Price != nil {
		next.Price = *u.Price
	}
	if u.MinStock != nil {
		next.MinStock = *u.MinStock
	}
	if u.TargetStock != nil {
		next.TargetStock = *u.TargetStock
	}
	if u.Unit != nil {
		next.Unit = *u.Unit
	}
	s.replaceLocked(next)

	var logged *domain.StockEvent
	if u.Stock != nil && next.Stock != prev.Stock {
		th := engine.ThresholdsFrom(&s.config)
		action, message := classifyTransition(prev.Stock, next.Stock, prev.MinStock, th)
		ev := s.logLocked(next, action, message, next.Stock)
		logged = &ev
	}

	return next, logged, true
}

func (s *Store) replaceLocked(p domain.Product) {
	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return
		}
	}
}

// AddStock increments stock and always logs an event: order_generated
// when the caller flags the mutation as an order, a plain info ingress
// otherwise. Restocking is assumed to resolve whatever alert drew
// attention, so any suppression entry for the product is zeroed.
func (s *Store) AddStock(id string, amount int, isOrder bool) (domain.Product, *domain.StockEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findLocked(id)
	if !ok {
		return domain.Product{}, nil, false
	}

	p.Stock += amount
	s.replaceLocked(p)
	s.ignoredUntil[id] = 0

	var ev domain.StockEvent
	if isOrder {
		ev = s.logLocked(p, domain.ActionOrderGenerated,
			fmt.Sprintf("Order completed: +%d units. Total stock: %d", amount, p.Stock), p.Stock)
	} else {
		ev = s.logLocked(p, domain.ActionInfo,
			fmt.Sprintf("Stock received: +%d. Total: %d", amount, p.Stock), p.Stock)
	}
	return p, &ev, true
}

// DeleteProduct removes the product and cascades: its suppression entry,
// read flag and audit events go with it.
func (s *Store) DeleteProduct(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.findLocked(id); !ok {
		return false
	}

	filtered := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			filtered = append(filtered, p)
		}
	}
	s.products = filtered

	delete(s.ignoredUntil, id)
	delete(s.readAlerts, id)

	kept := s.log.events[:0]
	for _, ev := range s.log.events {
		if ev.ProductID != id {
			kept = append(kept, ev)
		}
	}
	s.log.events = kept
	return true
}

// IgnoreAlert suppresses the product's alerts for the ignore window and
// records an audit event. Unknown products are a no-op.
func (s *Store) IgnoreAlert(id string) (*domain.StockEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findLocked(id)
	if !ok {
		return nil, false
	}

	s.ignoredUntil[id] = s.now().Add(engine.IgnoreWindow).UnixMilli()
	ev := s.logLocked(p, domain.ActionIgnored, "Alert temporarily ignored", p.Stock)
	return &ev, true
}

// MarkAlertRead dismisses the product's alert for the session.
func (s *Store) MarkAlertRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readAlerts[id] = struct{}{}
}

// MarkAllRead dismisses every product's current alert.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		s.readAlerts[p.ID] = struct{}{}
	}
}

// ClearRead resets the session read-set so alerts surface again.
func (s *Store) ClearRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readAlerts = make(map[string]struct{})
}

// ActiveAlerts derives the current alert list from live state.
func (s *Store) ActiveAlerts() []domain.ManagementAlert {
	s.mu.Lock()
	defer s.mu.Unlock()

	sup := engine.Suppression{IgnoredUntil: s.ignoredUntil, Read: s.readAlerts}
	return engine.DeriveAlerts(s.products, engine.ThresholdsFrom(&s.config), sup, s.now())
}

// Events lists the audit log, newest first.
func (s *Store) Events(includeArchived bool) []domain.StockEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.log.List(includeArchived)
}

// LogEvent appends a caller-classified audit event for a product and
// returns it for persistence. Unknown products are a no-op.
func (s *Store) LogEvent(productID string, action domain.StockEventAction, message string) (*domain.StockEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.findLocked(productID)
	if !ok {
		return nil, false
	}
	ev := s.logLocked(p, action, message, p.Stock)
	return &ev, true
}

// ArchiveHistory soft-archives every current event.
func (s *Store) ArchiveHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.ArchiveAll()
}

// ClearHistory empties the audit log.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Clear()
}

// Forecasts runs the velocity estimator over every product against the
// retained audit events.
func (s *Store) Forecasts() []domain.ProductForecast {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	events := s.log.List(true)

	out := make([]domain.ProductForecast, 0, len(s.products))
	for _, p := range s.products {
		v := engine.EstimateVelocity(p, events, now)
		out = append(out, domain.ProductForecast{
			Product:          p,
			DailyVelocity:    v.DailyRate,
			RotationCount:    v.RotationCount,
			DaysToEmpty:      v.DaysToEmpty,
			IsStagnant:       v.IsStagnant,
			RecommendedOrder: engine.RestockSuggestion(p),
			EstimatedInvest:  engine.EstimatedInvestment(p),
		})
	}
	return out
}

// Summary computes the dashboard KPI figures.
func (s *Store) Summary() domain.DashboardSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	th := engine.ThresholdsFrom(&s.config)
	sum := domain.DashboardSummary{
		TotalStock:   engine.TotalStock(s.products),
		TotalValue:   engine.TotalValue(s.products),
		ProductCount: len(s.products),
	}
	for _, p := range s.products {
		switch {
		case engine.IsCritical(p, th):
			sum.CriticalCount++
		case engine.IsLowStock(p, th):
			sum.LowCount++
		case engine.IsExcess(p):
			sum.ExcessCount++
		}
	}

	sup := engine.Suppression{IgnoredUntil: s.ignoredUntil, Read: s.readAlerts}
	sum.ActiveAlerts = len(engine.DeriveAlerts(s.products, th, sup, s.now()))
	return sum
}

// ReplaceProducts swaps in a remote snapshot.
func (s *Store) ReplaceProducts(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append([]domain.Product(nil), products...)
}

// ReplaceEvents swaps in a remote audit-log snapshot, newest first.
func (s *Store) ReplaceEvents(events []domain.StockEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.Replace(events)
}

// Reset restores the demo catalog and wipes suppression state, audit log
// and owner identity.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = domain.DemoInventory()
	s.ignoredUntil = make(map[string]int64)
	s.readAlerts = make(map[string]struct{})
	s.log.Clear()
	s.config = domain.DefaultBusinessConfig("")
	s.ownerID = ""
}

func (s *Store) logLocked(p domain.Product, action domain.StockEventAction, message string, stockLevel int) domain.StockEvent {
	ev := domain.StockEvent{
		ID:          s.newID(),
		Timestamp:   s.now().UnixMilli(),
		ProductID:   p.ID,
		ProductName: p.Name,
		StockLevel:  stockLevel,
		Action:      action,
		Severity:    action.Severity(),
		Message:     message,
	}
	s.log.Append(ev)
	return ev
}
