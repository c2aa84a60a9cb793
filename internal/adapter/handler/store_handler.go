package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rl1809/grocery-backend/internal/chat"
	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/core/service"
	"github.com/rl1809/grocery-backend/internal/vision"
)

const maxImageBytes = 10 << 20

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *HTTPHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.catalog.ListBanners(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if banners == nil {
		banners = []domain.Banner{}
	}
	writeJSON(w, http.StatusOK, banners)
}

type WishlistItemRequest struct {
	Name string `json:"name"`
}

func (h *HTTPHandler) AddWishlistItem(w http.ResponseWriter, r *http.Request) {
	h.mutateWishlist(w, r, h.wishlist.Add)
}

func (h *HTTPHandler) RemoveWishlistItem(w http.ResponseWriter, r *http.Request) {
	h.mutateWishlist(w, r, h.wishlist.Remove)
}

func (h *HTTPHandler) mutateWishlist(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, email, name string) error) {
	email := chi.URLParam(r, "email")

	var req WishlistItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := op(r.Context(), email, req.Name); err != nil {
		switch {
		case errors.Is(err, service.ErrMissingEmail), errors.Is(err, service.ErrMissingProduct):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Wishlist updated"})
}

func (h *HTTPHandler) ListWishlist(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	items, err := h.wishlist.List(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrMissingEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"items": items})
}

func (h *HTTPHandler) ClassifyImage(w http.ResponseWriter, r *http.Request) {
	body := io.LimitReader(r.Body, maxImageBytes)
	label, err := vision.Classify(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not decode image")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"label": string(label)})
}

type ChatRequest struct {
	Message string `json:"message"`
}

func (h *HTTPHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": chat.Reply(req.Message)})
}
