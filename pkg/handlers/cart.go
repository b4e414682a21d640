package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"motoshop/pkg/cart"
	"motoshop/pkg/claims"
	"motoshop/pkg/product"
)

const (
	typeError       string = "error"
	typeMessage     string = "message"
	muxVarProductID string = "product_id"
)

type CartForm struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type CartHandler struct {
	Service cart.ServiceInterface
	Logger  *slog.Logger
}

func NewCartHandler(service cart.ServiceInterface, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	lines, err := h.Service.List(claims.User.ID)
	if err != nil {
		h.Logger.Error("get cart", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	writeJSON(w, h.Logger, lines)
}

// EditCart merges a quantity delta into the cart and answers with the
// aggregate item count used as the badge.
func (h *CartHandler) EditCart(w http.ResponseWriter, r *http.Request) {
	var req CartForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.Product == "" {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid product id")
		return
	}

	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	total, err := h.Service.AddOrAdjust(claims.User.ID, req.Product, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrUnavailable), errors.Is(err, cart.ErrLineNotFound):
			writeError(w, http.StatusNotFound, typeMessage, err.Error())
		default:
			h.Logger.Error("edit cart", "error", err)
			writeError(w, http.StatusInternalServerError, typeError, "server error")
		}
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]int{"total": total}); ok {
		h.Logger.Info("cart edited", "user", claims.User.ID, "product", req.Product)
	}
}

func (h *CartHandler) RemoveLine(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	productID, ok := vars[muxVarProductID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid product id")
		return
	}

	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	if err := h.Service.Remove(claims.User.ID, productID); err != nil {
		if errors.Is(err, cart.ErrLineNotFound) {
			writeError(w, http.StatusNotFound, typeMessage, err.Error())
			return
		}
		h.Logger.Error("remove cart line", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{"message": "success"}); ok {
		h.Logger.Info("cart line removed", "user", claims.User.ID, "product", productID)
	}
}
