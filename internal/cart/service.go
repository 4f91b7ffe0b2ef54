package cart

import (
	"context"
	"sync"

	"github.com/angelmondragon/storefront-api/internal/catalog"
	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
	"github.com/angelmondragon/storefront-api/pkg/metrics"
	"github.com/google/uuid"
)

// productLoader fetches the product being added to a cart.
type productLoader interface {
	Product(ctx context.Context, id int64) (*catalog.Product, error)
}

// Service exposes the cart operations, keyed by session id.
type Service interface {
	Get(ctx context.Context, sessionID string) (CartDTO, error)
	AddItem(ctx context.Context, sessionID string, productID int64) (CartDTO, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (CartDTO, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (CartDTO, error)
	Clear(ctx context.Context, sessionID string) error
	Checkout(ctx context.Context, sessionID string) (CheckoutDTO, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo           Repository
	Products       productLoader
	Metrics        *metrics.StorefrontMetrics
	TaxRatePercent float64
}

type service struct {
	repo     Repository
	products productLoader
	metrics  *metrics.StorefrontMetrics
	taxRate  float64

	// Mutations run one at a time: load, mutate, save is a single critical
	// section, standing in for the single-threaded event loop the cart
	// model assumes.
	mu sync.Mutex
}

func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repository is required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product loader is required")
	}
	return &service{
		repo:     params.Repo,
		products: params.Products,
		metrics:  params.Metrics,
		taxRate:  params.TaxRatePercent,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return CartDTO{}, err
	}
	state, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return CartDTO{}, err
	}
	return newCartDTO(state, s.taxRate), nil
}

// AddItem fetches the product from the catalog source and adds it to the
// session cart, incrementing the quantity when the product is already
// present.
func (s *service) AddItem(ctx context.Context, sessionID string, productID int64) (CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return CartDTO{}, err
	}
	product, err := s.products.Product(ctx, productID)
	if err != nil {
		return CartDTO{}, err
	}

	dto, err := s.mutate(ctx, sessionID, func(state *State) {
		state.Add(*product)
	})
	if err != nil {
		return CartDTO{}, err
	}
	s.metrics.IncCartOp("add")
	return dto, nil
}

func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return CartDTO{}, err
	}
	dto, err := s.mutate(ctx, sessionID, func(state *State) {
		state.SetQuantity(productID, quantity)
	})
	if err != nil {
		return CartDTO{}, err
	}
	s.metrics.IncCartOp("update_quantity")
	return dto, nil
}

func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int64) (CartDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return CartDTO{}, err
	}
	dto, err := s.mutate(ctx, sessionID, func(state *State) {
		state.Remove(productID)
	})
	if err != nil {
		return CartDTO{}, err
	}
	s.metrics.IncCartOp("remove")
	return dto, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := validateSession(sessionID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.metrics.IncCartOp("clear")
	return nil
}

// Checkout is a stub: it validates the cart is non-empty and returns a
// placeholder confirmation. No payment, inventory, or order record is
// involved, and the cart is left untouched.
func (s *service) Checkout(ctx context.Context, sessionID string) (CheckoutDTO, error) {
	if err := validateSession(sessionID); err != nil {
		return CheckoutDTO{}, err
	}
	state, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return CheckoutDTO{}, err
	}
	if state.IsEmpty() {
		return CheckoutDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	return CheckoutDTO{
		Reference: uuid.NewString(),
		Status:    "not_implemented",
		Message:   "checkout is not available in this storefront",
		Summary:   newSummaryDTO(state, s.taxRate),
	}, nil
}

func (s *service) mutate(ctx context.Context, sessionID string, fn func(*State)) (CartDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return CartDTO{}, err
	}
	fn(&state)
	if err := s.repo.Save(ctx, sessionID, state); err != nil {
		return CartDTO{}, err
	}
	return newCartDTO(state, s.taxRate), nil
}

func validateSession(sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart session is required")
	}
	return nil
}
