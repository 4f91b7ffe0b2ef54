package catalog

import (
	"context"

	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
)

// DetailFetcher is the upstream surface for single-product lookups.
type DetailFetcher interface {
	FetchProduct(ctx context.Context, id int64) (*Product, error)
}

// Service exposes catalog reads to the HTTP layer.
type Service interface {
	// List runs the filter pipeline over the current catalog snapshot.
	// The returned snapshot carries loading/error state for the caller to
	// surface; the listing is only meaningful when Err is nil.
	List(searchTerm string, criteria Criteria) (ProductListDTO, Snapshot)
	// Categories returns the distinct categories of the loaded catalog.
	Categories() []string
	// Get fetches one product by id from the source.
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	// Product returns the localized product record for cart use.
	Product(ctx context.Context, id int64) (*Product, error)
	// RequestRefresh schedules a debounced catalog reload.
	RequestRefresh()
}

type service struct {
	provider *Provider
	detail   DetailFetcher
}

// NewService builds the catalog service over a provider and detail fetcher.
func NewService(provider *Provider, detail DetailFetcher) (Service, error) {
	if provider == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog provider is required")
	}
	if detail == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "detail fetcher is required")
	}
	return &service{provider: provider, detail: detail}, nil
}

func (s *service) List(searchTerm string, criteria Criteria) (ProductListDTO, Snapshot) {
	snap := s.provider.Snapshot()
	if snap.Err != nil {
		return ProductListDTO{}, snap
	}
	matched := Apply(snap.Products, searchTerm, criteria)
	return ProductListDTO{
		Products: newProductDTOs(matched),
		Total:    len(snap.Products),
		Matched:  len(matched),
	}, snap
}

func (s *service) Categories() []string {
	snap := s.provider.Snapshot()
	return Categories(snap.Products)
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewProductDTO(*product)
	return &dto, nil
}

func (s *service) Product(ctx context.Context, id int64) (*Product, error) {
	if id <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id must be positive")
	}
	product, err := s.detail.FetchProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	localized := s.provider.Localize(*product)
	return &localized, nil
}

func (s *service) RequestRefresh() {
	s.provider.RequestRefresh()
}
