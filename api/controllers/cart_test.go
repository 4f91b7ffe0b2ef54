package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/storefront-api/api/middleware"
	cartsvc "github.com/angelmondragon/storefront-api/internal/cart"
	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
)

type stubCartService struct {
	dto          cartsvc.CartDTO
	confirmation cartsvc.CheckoutDTO
	err          error

	lastSession   string
	lastProductID int64
	lastQuantity  int
	cleared       int
}

func (s *stubCartService) Get(ctx context.Context, sessionID string) (cartsvc.CartDTO, error) {
	s.lastSession = sessionID
	return s.dto, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID string, productID int64) (cartsvc.CartDTO, error) {
	s.lastSession = sessionID
	s.lastProductID = productID
	return s.dto, s.err
}

func (s *stubCartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (cartsvc.CartDTO, error) {
	s.lastSession = sessionID
	s.lastProductID = productID
	s.lastQuantity = quantity
	return s.dto, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (cartsvc.CartDTO, error) {
	s.lastSession = sessionID
	s.lastProductID = productID
	return s.dto, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID string) error {
	s.lastSession = sessionID
	s.cleared++
	return s.err
}

func (s *stubCartService) Checkout(ctx context.Context, sessionID string) (cartsvc.CheckoutDTO, error) {
	s.lastSession = sessionID
	return s.confirmation, s.err
}

func withSession(r *http.Request, sessionID string) *http.Request {
	return r.WithContext(middleware.WithCartSession(r.Context(), sessionID))
}

func TestGetCartSuccess(t *testing.T) {
	svc := &stubCartService{dto: cartsvc.CartDTO{ItemCount: 2}}
	handler := GetCart(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastSession != "sess-1" {
		t.Fatalf("unexpected session %q", svc.lastSession)
	}

	var envelope struct {
		Data cartsvc.CartDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ItemCount != 2 {
		t.Fatalf("unexpected item count %d", envelope.Data.ItemCount)
	}
}

func TestGetCartMissingSession(t *testing.T) {
	handler := GetCart(&stubCartService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAddCartItem(t *testing.T) {
	svc := &stubCartService{}
	handler := AddCartItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":7}`)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastProductID != 7 {
		t.Fatalf("unexpected product id %d", svc.lastProductID)
	}
}

func TestAddCartItemRejectsBadBody(t *testing.T) {
	handler := AddCartItem(&stubCartService{}, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":0}`)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	handler := AddCartItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"product_id":99}`)), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestUpdateCartItemPassesQuantity(t *testing.T) {
	svc := &stubCartService{}
	handler := UpdateCartItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/7",
		strings.NewReader(`{"quantity":3}`)), "sess-1")
	req = withURLParam(req, "productId", "7")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastProductID != 7 || svc.lastQuantity != 3 {
		t.Fatalf("unexpected call: product %d quantity %d", svc.lastProductID, svc.lastQuantity)
	}
}

func TestUpdateCartItemAcceptsZeroQuantity(t *testing.T) {
	svc := &stubCartService{}
	handler := UpdateCartItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPatch, "/api/v1/cart/items/7",
		strings.NewReader(`{"quantity":0}`)), "sess-1")
	req = withURLParam(req, "productId", "7")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	// Zero reaches the service, which treats it as a no-op.
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastQuantity != 0 {
		t.Fatalf("expected quantity 0 to pass through, got %d", svc.lastQuantity)
	}
}

func TestRemoveCartItem(t *testing.T) {
	svc := &stubCartService{}
	handler := RemoveCartItem(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/7", nil), "sess-1")
	req = withURLParam(req, "productId", "7")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastProductID != 7 {
		t.Fatalf("unexpected product id %d", svc.lastProductID)
	}
}

func TestClearCart(t *testing.T) {
	svc := &stubCartService{}
	handler := ClearCart(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.cleared != 1 {
		t.Fatalf("expected one clear call, got %d", svc.cleared)
	}
}

func TestCheckoutReturnsConfirmation(t *testing.T) {
	svc := &stubCartService{confirmation: cartsvc.CheckoutDTO{Reference: "ref-1", Status: "not_implemented"}}
	handler := Checkout(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/checkout", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.CheckoutDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Reference != "ref-1" || envelope.Data.Status != "not_implemented" {
		t.Fatalf("unexpected confirmation: %+v", envelope.Data)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := &stubCartService{err: pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")}
	handler := Checkout(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/checkout", nil), "sess-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
