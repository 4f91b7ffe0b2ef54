package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/storefront-api/pkg/currency"
	"github.com/angelmondragon/storefront-api/pkg/debounce"
	"github.com/angelmondragon/storefront-api/pkg/logger"
)

// Snapshot is the consumer view of the provider: exactly one of a loaded
// catalog or an error once loading settles, loading=true while a fetch is
// in flight.
type Snapshot struct {
	Products []Product
	Loading  bool
	Err      error
}

// Fetcher is the upstream surface the provider depends on.
type Fetcher interface {
	FetchCatalog(ctx context.Context) ([]Product, error)
}

// Provider owns the catalog state. Loads replace the whole catalog or fail
// wholesale; results land last-write-wins, so a stale response from a
// superseded load is still applied. In-flight loads are not cancelled.
type Provider struct {
	fetcher   Fetcher
	converter currency.Converter
	logg      *logger.Logger

	mu       sync.RWMutex
	products []Product
	loading  bool
	err      error

	refresh *debounce.Debouncer
}

func NewProvider(fetcher Fetcher, converter currency.Converter, debounceDelay time.Duration, logg *logger.Logger) *Provider {
	p := &Provider{
		fetcher:   fetcher,
		converter: converter,
		logg:      logg,
	}
	p.refresh = debounce.New(debounceDelay, func() {
		p.Load(context.Background())
	})
	return p
}

// Load fetches the catalog synchronously and publishes the outcome.
func (p *Provider) Load(ctx context.Context) {
	p.mu.Lock()
	p.loading = true
	p.err = nil
	p.mu.Unlock()

	products, err := p.fetcher.FetchCatalog(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		p.err = err
		if p.logg != nil {
			p.logg.Error(ctx, "catalog load failed", err)
		}
		return
	}
	converted := make([]Product, len(products))
	for i, prod := range products {
		converted[i] = p.localize(prod)
	}
	p.products = converted
	if p.logg != nil {
		p.logg.Info(p.logg.WithField(ctx, "products", len(converted)), "catalog loaded")
	}
}

// RequestRefresh schedules a reload, collapsing bursts of requests into a
// single fetch after the debounce delay.
func (p *Provider) RequestRefresh() {
	p.refresh.Trigger()
}

// Close stops the pending refresh timer, if any.
func (p *Provider) Close() {
	p.refresh.Stop()
}

// Snapshot returns a copy of the current state. The product slice is shared
// read-only data; callers must not mutate it.
func (p *Provider) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return Snapshot{
		Products: p.products,
		Loading:  p.loading,
		Err:      p.err,
	}
}

// Localize rewrites a freshly fetched product into display currency. Used
// by the provider for the catalog and by the service for detail fetches.
func (p *Provider) Localize(prod Product) Product {
	return p.localize(prod)
}

func (p *Provider) localize(prod Product) Product {
	prod.PriceUSD = prod.Price
	prod.Price = p.converter.ConvertUSDToINR(prod.Price)
	return prod
}
