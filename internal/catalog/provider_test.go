package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/storefront-api/pkg/currency"
	"github.com/shopspring/decimal"
)

type stubFetcher struct {
	mu       sync.Mutex
	products []Product
	err      error
	calls    int
	block    chan struct{}
}

func (s *stubFetcher) FetchCatalog(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	s.calls++
	block := s.block
	s.mu.Unlock()
	if block != nil {
		<-block
	}
	return s.products, s.err
}

func (s *stubFetcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestProviderLoadPublishesLocalizedCatalog(t *testing.T) {
	fetcher := &stubFetcher{products: []Product{{ID: 1, Title: "Apple", Price: decimal.NewFromInt(100)}}}
	provider := NewProvider(fetcher, currency.NewConverter(83), time.Millisecond, nil)
	defer provider.Close()

	provider.Load(context.Background())

	snap := provider.Snapshot()
	if snap.Loading || snap.Err != nil {
		t.Fatalf("expected settled snapshot, got %+v", snap)
	}
	if len(snap.Products) != 1 {
		t.Fatalf("expected one product, got %d", len(snap.Products))
	}
	got := snap.Products[0]
	if !got.Price.Equal(decimal.NewFromInt(8300)) {
		t.Fatalf("expected converted price 8300, got %s", got.Price)
	}
	if !got.PriceUSD.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected original price preserved, got %s", got.PriceUSD)
	}
}

func TestProviderLoadSurfacesError(t *testing.T) {
	fetcher := &stubFetcher{err: errors.New("boom")}
	provider := NewProvider(fetcher, currency.NewConverter(83), time.Millisecond, nil)
	defer provider.Close()

	provider.Load(context.Background())

	snap := provider.Snapshot()
	if snap.Err == nil {
		t.Fatal("expected error in snapshot")
	}
	if snap.Loading {
		t.Fatal("loading should settle after failure")
	}
}

func TestProviderReportsLoadingWhileFetchInFlight(t *testing.T) {
	block := make(chan struct{})
	fetcher := &stubFetcher{block: block}
	provider := NewProvider(fetcher, currency.NewConverter(83), time.Millisecond, nil)
	defer provider.Close()

	done := make(chan struct{})
	go func() {
		provider.Load(context.Background())
		close(done)
	}()

	deadline := time.After(time.Second)
	for !provider.Snapshot().Loading {
		select {
		case <-deadline:
			t.Fatal("never observed loading state")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(block)
	<-done
	if provider.Snapshot().Loading {
		t.Fatal("loading should settle once the fetch returns")
	}
}

func TestRequestRefreshCollapsesBursts(t *testing.T) {
	fetcher := &stubFetcher{products: []Product{{ID: 1, Title: "Apple", Price: decimal.NewFromInt(1)}}}
	provider := NewProvider(fetcher, currency.NewConverter(83), 20*time.Millisecond, nil)
	defer provider.Close()

	for i := 0; i < 5; i++ {
		provider.RequestRefresh()
		time.Sleep(2 * time.Millisecond)
	}

	deadline := time.After(time.Second)
	for fetcher.callCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("refresh never fired")
		default:
			time.Sleep(5 * time.Millisecond)
		}
	}

	time.Sleep(60 * time.Millisecond)
	if got := fetcher.callCount(); got != 1 {
		t.Fatalf("expected one collapsed fetch, got %d", got)
	}
}
