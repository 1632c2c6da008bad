// internal/service/inventory_service.go
package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/smartstock/backend-go/internal/cache"
	"github.com/smartstock/backend-go/internal/domain"
	"github.com/smartstock/backend-go/internal/repository"
	"github.com/smartstock/backend-go/internal/store"
)

const remoteWriteTimeout = 5 * time.Second

// LocalStore is the file-backed fallback mirror consumed by the service.
type LocalStore interface {
	GetProducts() ([]domain.Product, error)
	SetProducts(products []domain.Product) error
	GetEvents() ([]domain.StockEvent, error)
	SetEvents(events []domain.StockEvent) error
	Clear() error
}

// Inventory orchestrates the state store against the persistence
// collaborators. Every mutation applies locally first and always
// succeeds; remote persistence is a best-effort background write whose
// failure is logged and otherwise ignored. UpdateBusinessConfig is the
// one exception: it persists synchronously and rolls back on failure.
type Inventory struct {
	store    *store.Store
	products repository.ProductRepository
	events   repository.EventLogRepository
	configs  repository.BusinessConfigRepository
	local    LocalStore
	cache    cache.SummaryCache

	wg sync.WaitGroup
}

// NewInventory builds the service. Repositories may be nil for
// local-only deployments; local and cacheImpl fall back to no-ops.
func NewInventory(
	st *store.Store,
	products repository.ProductRepository,
	events repository.EventLogRepository,
	configs repository.BusinessConfigRepository,
	local LocalStore,
	cacheImpl cache.SummaryCache,
) *Inventory {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopSummaryCache()
	}
	return &Inventory{
		store:    st,
		products: products,
		events:   events,
		configs:  configs,
		local:    local,
		cache:    cacheImpl,
	}
}

// Wait blocks until all scheduled background writes finish. Used by
// tests and graceful shutdown.
func (s *Inventory) Wait() {
	s.wg.Wait()
}

// OwnerID returns the identity of the current session, empty in
// anonymous mode.
func (s *Inventory) OwnerID() string {
	return s.store.OwnerID()
}

// SetSession records the owner identity observed from the auth
// collaborator. A non-nil identity triggers a cloud sync; clearing the
// identity just drops into anonymous local-only mode.
func (s *Inventory) SetSession(ctx context.Context, ownerID string) error {
	s.store.SetOwner(ownerID)
	if ownerID == "" {
		return nil
	}
	return s.SyncFromCloud(ctx)
}

// SyncFromCloud fetches the remote product list, audit log and business
// profile in parallel and replaces local state wholesale where the
// remote result is non-empty. Fetch errors degrade silently to whatever
// local state already exists.
func (s *Inventory) SyncFromCloud(ctx context.Context) error {
	ownerID := s.store.OwnerID()
	if ownerID == "" {
		return nil
	}

	var (
		cloudProducts []domain.Product
		cloudEvents   []domain.StockEvent
		cloudConfig   *domain.BusinessConfig
	)

	g, gctx := errgroup.WithContext(ctx)
	if s.products != nil {
		g.Go(func() error {
			var err error
			cloudProducts, err = s.products.List(gctx, ownerID)
			return err
		})
	}
	if s.events != nil {
		g.Go(func() error {
			var err error
			cloudEvents, err = s.events.List(gctx, ownerID, store.RetentionCap)
			return err
		})
	}
	if s.configs != nil {
		g.Go(func() error {
			var err error
			cloudConfig, err = s.configs.Get(gctx, ownerID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Str("owner", ownerID).Msg("cloud sync degraded to local state")
		return nil
	}

	if len(cloudProducts) > 0 {
		s.store.ReplaceProducts(cloudProducts)
	}
	if len(cloudEvents) > 0 {
		s.store.ReplaceEvents(cloudEvents)
	}
	if cloudConfig != nil {
		s.store.SetConfig(*cloudConfig)
	}

	s.mirrorLocal()
	s.invalidateSummary(ctx)
	return nil
}

// Products lists the current catalog.
func (s *Inventory) Products() []domain.Product {
	return s.store.Products()
}

// Product looks up one product.
func (s *Inventory) Product(id string) (domain.Product, bool) {
	return s.store.Product(id)
}

// AddProduct creates a product and schedules its remote write.
func (s *Inventory) AddProduct(ctx context.Context, p domain.Product) domain.Product {
	created := s.store.AddProduct(p)
	s.persistProduct(created)
	s.mirrorLocal()
	s.invalidateSummary(ctx)
	return created
}

// UpdateProduct merges a partial edit. A stock change runs the
// boundary-crossing audit rule; the derived event is persisted alongside
// the product. Stale ids are a no-op.
func (s *Inventory) UpdateProduct(ctx context.Context, id string, u domain.ProductUpdate) (domain.Product, bool) {
	updated, ev, ok := s.store.UpdateProduct(id, u)
	if !ok {
		return domain.Product{}, false
	}

	if ev != nil {
		s.persistEvent(*ev)
	}
	s.persistProduct(updated)
	s.mirrorLocal()
	s.invalidateSummary(ctx)
	return updated, true
}

// AddStock increments stock, always logging an audit event and lifting
// any suppression on the product.
func (s *Inventory) AddStock(ctx context.Context, id string, amount int, isOrder bool) (domain.Product, bool) {
	updated, ev, ok := s.store.AddStock(id, amount, isOrder)
	if !ok {
		return domain.Product{}, false
	}

	if ev != nil {
		s.persistEvent(*ev)
	}
	s.persistProduct(updated)
	s.mirrorLocal()
	s.invalidateSummary(ctx)
	return updated, true
}

// DeleteProduct removes a product with its suppression entry and audit
// events, then schedules the remote delete.
func (s *Inventory) DeleteProduct(ctx context.Context, id string) bool {
	if !s.store.DeleteProduct(id) {
		return false
	}

	ownerID := s.store.OwnerID()
	if ownerID != "" && s.products != nil {
		s.background(func(bctx context.Context) {
			if err := s.products.Delete(bctx, ownerID, id); err != nil {
				log.Error().Err(err).Str("product", id).Msg("cloud delete failed")
			}
		})
	}
	s.mirrorLocal()
	s.invalidateSummary(ctx)
	return true
}

// ActiveAlerts derives the ranked alert list.
func (s *Inventory) ActiveAlerts() []domain.ManagementAlert {
	return s.store.ActiveAlerts()
}

// IgnoreAlert suppresses a product's alerts for the ignore window.
func (s *Inventory) IgnoreAlert(ctx context.Context, id string) bool {
	ev, ok := s.store.IgnoreAlert(id)
	if !ok {
		return false
	}
	if ev != nil {
		s.persistEvent(*ev)
	}
	s.mirrorLocal()
	s.invalidateSummary(ctx)
	return true
}

// MarkAlertRead dismisses one product's alert for the session.
func (s *Inventory) MarkAlertRead(ctx context.Context, id string) {
	s.store.MarkAlertRead(id)
	s.invalidateSummary(ctx)
}

// MarkAllRead dismisses every current alert.
func (s *Inventory) MarkAllRead(ctx context.Context) {
	s.store.MarkAllRead()
	s.invalidateSummary(ctx)
}

// Events lists the audit trail, newest first.
func (s *Inventory) Events(includeArchived bool) []domain.StockEvent {
	return s.store.Events(includeArchived)
}

// ArchiveHistory soft-archives the current audit trail.
func (s *Inventory) ArchiveHistory() {
	s.store.ArchiveHistory()
	s.mirrorLocal()
}

// ClearHistory wipes the audit trail, including the local mirror.
func (s *Inventory) ClearHistory() {
	s.store.ClearHistory()
	if s.local != nil {
		if err := s.local.SetEvents(nil); err != nil {
			log.Error().Err(err).Msg("local event mirror clear failed")
		}
	}
}

// Forecasts runs the velocity estimator over the catalog.
func (s *Inventory) Forecasts() []domain.ProductForecast {
	return s.store.Forecasts()
}

// ReorderReport returns the products that currently need a purchase,
// with the projected total investment.
func (s *Inventory) ReorderReport() domain.ReorderReport {
	report := domain.ReorderReport{GeneratedAt: time.Now().UnixMilli()}
	for _, f := range s.store.Forecasts() {
		if f.RecommendedOrder > 0 {
			report.Items = append(report.Items, f)
			report.TotalInvestment += f.EstimatedInvest
		}
	}
	return report
}

// Summary returns the dashboard KPI payload, memoized per owner.
func (s *Inventory) Summary(ctx context.Context) domain.DashboardSummary {
	ownerID := s.store.OwnerID()
	if cached, ok, err := s.cache.Get(ctx, ownerID); err == nil && ok {
		return *cached
	} else if err != nil {
		log.Warn().Err(err).Msg("summary cache get failed")
	}

	summary := s.store.Summary()
	if err := s.cache.Set(ctx, ownerID, &summary); err != nil {
		log.Warn().Err(err).Msg("summary cache set failed")
	}
	return summary
}

// Config returns the active business configuration.
func (s *Inventory) Config() domain.BusinessConfig {
	return s.store.Config()
}

// UpdateBusinessConfig applies a partial settings update optimistically
// and persists it synchronously. On a remote failure the previous
// configuration is restored and the error surfaces to the caller; every
// other mutation in this service keeps its optimistic result instead.
func (s *Inventory) UpdateBusinessConfig(ctx context.Context, u domain.BusinessConfigUpdate) (domain.BusinessConfig, error) {
	prev, next := s.store.ApplyConfig(u)

	ownerID := s.store.OwnerID()
	if ownerID != "" && s.configs != nil {
		next.OwnerID = ownerID
		if err := s.configs.Upsert(ctx, ownerID, next); err != nil {
			s.store.SetConfig(prev)
			return prev, err
		}
		s.store.SetConfig(next)
	}

	s.invalidateSummary(ctx)
	return next, nil
}

// Reset restores the demo catalog and clears audit, suppression, owner
// identity, the local mirror and the cache.
func (s *Inventory) Reset(ctx context.Context) {
	s.store.Reset()
	if s.local != nil {
		if err := s.local.Clear(); err != nil {
			log.Error().Err(err).Msg("local store clear failed")
		}
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("summary cache reset failed")
	}
}

// LoadLocal seeds the store from the local mirror, used at startup in
// anonymous mode before any owner identity is observed.
func (s *Inventory) LoadLocal() {
	if s.local == nil {
		return
	}
	if products, err := s.local.GetProducts(); err != nil {
		log.Warn().Err(err).Msg("local product mirror read failed")
	} else if len(products) > 0 {
		s.store.ReplaceProducts(products)
	}
	if events, err := s.local.GetEvents(); err != nil {
		log.Warn().Err(err).Msg("local event mirror read failed")
	} else if len(events) > 0 {
		s.store.ReplaceEvents(events)
	}
}

func (s *Inventory) persistProduct(p domain.Product) {
	ownerID := s.store.OwnerID()
	if ownerID == "" || s.products == nil {
		return
	}
	s.background(func(bctx context.Context) {
		if err := s.products.Upsert(bctx, ownerID, p); err != nil {
			log.Error().Err(err).Str("product", p.ID).Msg("cloud product sync failed")
		}
	})
}

func (s *Inventory) persistEvent(ev domain.StockEvent) {
	ownerID := s.store.OwnerID()
	if ownerID == "" || s.events == nil {
		return
	}
	s.background(func(bctx context.Context) {
		if err := s.events.Append(bctx, ownerID, ev); err != nil {
			log.Error().Err(err).Str("event", ev.ID).Msg("cloud audit sync failed")
		}
	})
}

// mirrorLocal rewrites the local fallback snapshots from current state.
func (s *Inventory) mirrorLocal() {
	if s.local == nil {
		return
	}
	if err := s.local.SetProducts(s.store.Products()); err != nil {
		log.Error().Err(err).Msg("local product mirror write failed")
	}
	if err := s.local.SetEvents(s.store.Events(true)); err != nil {
		log.Error().Err(err).Msg("local event mirror write failed")
	}
}

func (s *Inventory) invalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, s.store.OwnerID()); err != nil {
		log.Warn().Err(err).Msg("summary cache invalidate failed")
	}
}

// background schedules a fire-and-forget remote write. The write gets
// its own context so an already-finished request cannot cancel it.
func (s *Inventory) background(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), remoteWriteTimeout)
		defer cancel()
		fn(ctx)
	}()
}
