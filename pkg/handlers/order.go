package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"motoshop/pkg/claims"
	"motoshop/pkg/order"
	"motoshop/pkg/product"
	"motoshop/pkg/user"
)

type OrderHandler struct {
	Service order.ServiceInterface
	Logger  *slog.Logger
}

func NewOrderHandler(service order.ServiceInterface, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	orderID, err := h.Service.Checkout(claims.User.ID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, typeMessage, "cart is empty")
		case errors.Is(err, product.ErrUnavailable):
			writeError(w, http.StatusBadRequest, typeMessage, "product unavailable")
		default:
			h.Logger.Error("checkout", "error", err)
			writeError(w, http.StatusInternalServerError, typeError, "server error")
		}
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{"id": orderID}); ok {
		h.Logger.Info("checkout", "user", claims.User.ID, "order", orderID)
	}
}

func (h *OrderHandler) GetMyOrders(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	views, err := h.Service.ListForUser(claims.User.ID)
	if err != nil {
		h.Logger.Error("list orders", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	writeJSON(w, h.Logger, views)
}

func (h *OrderHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	if claims.User.Role != user.RoleAdmin {
		writeError(w, http.StatusForbidden, typeMessage, "admin only")
		return
	}

	views, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("list all orders", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	writeJSON(w, h.Logger, views)
}
