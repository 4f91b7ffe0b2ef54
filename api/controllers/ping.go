package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-api/api/middleware"
	"github.com/angelmondragon/storefront-api/api/responses"
)

func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"status": "ok"}
		if session := middleware.CartSessionFromContext(r.Context()); session != "" {
			payload["cart_session"] = session
		}
		responses.WriteSuccess(w, payload)
	}
}
