package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/rl1809/grocery-backend/internal/core/domain"
	"github.com/rl1809/grocery-backend/internal/core/service"
)

type HTTPHandler struct {
	orders      *service.OrderService
	catalog     *service.CatalogService
	accounts    *service.AccountService
	wishlist    *service.WishlistService
	tokenSecret string
}

func NewHTTPHandler(
	orders *service.OrderService,
	catalog *service.CatalogService,
	accounts *service.AccountService,
	wishlist *service.WishlistService,
	tokenSecret string,
) *HTTPHandler {
	return &HTTPHandler{
		orders:      orders,
		catalog:     catalog,
		accounts:    accounts,
		wishlist:    wishlist,
		tokenSecret: tokenSecret,
	}
}

// Routes wires the full HTTP surface.
func (h *HTTPHandler) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", h.HealthCheck)

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)

	r.Get("/products", h.ListProducts)
	r.Get("/banners", h.ListBanners)

	r.Post("/place_order", h.PlaceOrder)
	r.Get("/my_orders/{email}", h.UserOrders)
	r.Get("/user_orders/{email}", h.UserOrders)

	r.Get("/profile/coins/{email}", h.Coins)
	r.Post("/profile/contact", h.UpdateContact)
	r.Get("/profile/contact/{email}", h.GetContact)

	r.Post("/wishlist/{email}", h.AddWishlistItem)
	r.Post("/wishlist/{email}/remove", h.RemoveWishlistItem)
	r.Get("/wishlist/{email}", h.ListWishlist)

	r.Post("/classify_image", h.ClassifyImage)
	r.Post("/chat", h.Chat)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/admin/all_orders", h.AllOrders)
	})

	return r
}

type PlaceOrderRequest struct {
	UserEmail   string             `json:"user_email"`
	TotalPrice  decimal.Decimal    `json:"total_price"`
	Items       []domain.OrderLine `json:"items"`
	PaymentID   string             `json:"payment_id"`
	PaymentMode string             `json:"payment_mode"`
}

type PlaceOrderResponse struct {
	Message     string `json:"message"`
	OrderID     string `json:"order_id"`
	CoinsEarned int64  `json:"coins_earned"`
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.orders.PlaceOrder(r.Context(), service.PlaceOrderInput{
		UserEmail:   req.UserEmail,
		Items:       req.Items,
		TotalPrice:  req.TotalPrice,
		PaymentRef:  req.PaymentID,
		PaymentMode: parsePaymentMode(req.PaymentMode),
	})
	if err != nil {
		var oos *domain.OutOfStockError
		switch {
		case errors.As(err, &oos):
			writeError(w, http.StatusConflict, oos.Error())
		case errors.Is(err, service.ErrDuplicateRequest):
			writeError(w, http.StatusConflict, "duplicate order request")
		case errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrMissingEmail),
			errors.Is(err, service.ErrNegativeTotal):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, PlaceOrderResponse{
		Message:     fmt.Sprintf("Order placed successfully! You earned %d coins.", result.CoinsEarned),
		OrderID:     result.OrderID,
		CoinsEarned: result.CoinsEarned,
	})
}

func (h *HTTPHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	orders, err := h.orders.OrdersForUser(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrMissingEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) AllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.AllOrdersWithContacts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if orders == nil {
		orders = []domain.OrderWithContact{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *HTTPHandler) Coins(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")

	balance, err := h.orders.Coins(r.Context(), email)
	if err != nil {
		if errors.Is(err, service.ErrMissingEmail) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, domain.LoyaltyProfile{UserEmail: email, CoinBalance: balance})
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func parsePaymentMode(mode string) domain.PaymentMode {
	if mode == string(domain.PaymentModeOnline) {
		return domain.PaymentModeOnline
	}
	return domain.PaymentModeCashOnDelivery
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
