package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-api/api/responses"
	"github.com/angelmondragon/storefront-api/api/validators"
	"github.com/angelmondragon/storefront-api/internal/catalog"
	"github.com/angelmondragon/storefront-api/pkg/config"
	pkgerrors "github.com/angelmondragon/storefront-api/pkg/errors"
	"github.com/angelmondragon/storefront-api/pkg/logger"
)

const (
	maxSearchTermLength  = 200
	catalogLoadingHeader = "X-Catalog-Loading"
)

// ListProducts serves the catalog listing with search, filter, and sort
// applied server-side.
func ListProducts(svc catalog.Service, search config.SearchConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		criteria, err := parseListCriteria(r, search)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		term := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchTermLength)

		listing, snapshot := svc.List(term, criteria)
		w.Header().Set(catalogLoadingHeader, strconv.FormatBool(snapshot.Loading))

		if snapshot.Err != nil {
			responses.WriteError(r.Context(), logg, w, snapshot.Err)
			return
		}

		responses.WriteSuccess(w, listing)
	}
}

func parseListCriteria(r *http.Request, search config.SearchConfig) (catalog.Criteria, error) {
	criteria := catalog.DefaultCriteria(search.DefaultPriceCap)

	for _, raw := range r.URL.Query()["category"] {
		for _, category := range strings.Split(raw, ",") {
			if category = strings.TrimSpace(category); category != "" {
				criteria.Categories = append(criteria.Categories, category)
			}
		}
	}

	priceMin, err := validators.ParseQueryDecimal(r, "price_min", criteria.PriceMin)
	if err != nil {
		return catalog.Criteria{}, err
	}
	priceMax, err := validators.ParseQueryDecimal(r, "price_max", criteria.PriceMax)
	if err != nil {
		return catalog.Criteria{}, err
	}
	if priceMax.LessThan(priceMin) {
		return catalog.Criteria{}, pkgerrors.New(pkgerrors.CodeValidation, "price_max must not be below price_min")
	}
	criteria.PriceMin = priceMin
	criteria.PriceMax = priceMax

	minRating, err := validators.ParseQueryFloat(r, "min_rating", 0, 0, 5)
	if err != nil {
		return catalog.Criteria{}, err
	}
	criteria.MinRating = minRating

	if raw := r.URL.Query().Get("sort"); raw != "" {
		sortBy, err := catalog.ParseSort(raw)
		if err != nil {
			return catalog.Criteria{}, err
		}
		criteria.SortBy = sortBy
	}

	return criteria, nil
}

// ProductCategories lists the distinct categories of the loaded catalog.
func ProductCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": svc.Categories()})
	}
}

// GetProduct serves the product detail view, fetched fresh from the source.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := parseProductID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// RefreshCatalog schedules a debounced catalog reload and returns
// immediately.
func RefreshCatalog(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}
		svc.RequestRefresh()
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "refresh_scheduled"})
	}
}

func parseProductID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "productId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product id must be a positive integer").WithDetails(map[string]any{"productId": raw})
	}
	return id, nil
}
