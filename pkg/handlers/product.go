package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"motoshop/pkg/claims"
	"motoshop/pkg/product"
	"motoshop/pkg/user"
)

type ProductForm struct {
	Name        string `json:"name" validate:"required"`
	Model       string `json:"model" validate:"required"`
	Image       string `json:"image" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=HONDA YAMAHA KAWASAKI"`
	Sell        *bool  `json:"sell" validate:"required"`

	EngineForm       string `json:"engineform" validate:"required"`
	Dimensions       string `json:"dimensions" validate:"required"`
	SeatHeight       string `json:"seatHeight" validate:"required"`
	Weight           string `json:"weight" validate:"required"`
	Displacement     string `json:"displacement" validate:"required"`
	MaxHorsepower    string `json:"maxHorsepower" validate:"required"`
	MaxTorque        string `json:"maxTorque" validate:"required"`
	FrontSuspension  string `json:"frontSuspension" validate:"required"`
	RearSuspension   string `json:"rearSuspension" validate:"required"`
	FrontTire        string `json:"frontTire" validate:"required"`
	RearTire         string `json:"rearTire" validate:"required"`
	FrontBrakeSystem string `json:"frontBrakeSystem" validate:"required"`
	RearBrakeSystem  string `json:"rearBrakeSystem" validate:"required"`
}

type ProductHandler struct {
	Service product.ServiceInterface
	Logger  *slog.Logger
}

func NewProductHandler(service product.ServiceInterface, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *ProductHandler) GetOnSale(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Logger, h.Service.GetOnSale())
}

func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if ok := requireAdmin(w, r); !ok {
		return
	}

	writeJSON(w, h.Logger, h.Service.GetAll())
}

func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	productID, ok := vars[muxVarProductID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid product id")
		return
	}

	p, err := h.Service.GetByID(productID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, typeMessage, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, typeMessage, err.Error())
		return
	}

	writeJSON(w, h.Logger, p)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	if ok := requireAdmin(w, r); !ok {
		return
	}

	var req ProductForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}
	if ok := ValidateForm(w, h.Logger, &req); !ok {
		return
	}

	p := req.toProduct()
	if err := h.Service.Create(p); err != nil {
		h.Logger.Error("create product", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	if ok := writeJSON(w, h.Logger, p); ok {
		h.Logger.Info("product created", "product", p.ID)
	}
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	if ok := requireAdmin(w, r); !ok {
		return
	}

	vars := mux.Vars(r)
	productID, ok := vars[muxVarProductID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid product id")
		return
	}

	var req ProductForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}
	if ok := ValidateForm(w, h.Logger, &req); !ok {
		return
	}

	p, err := h.Service.Update(productID, req.toProduct())
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, typeMessage, err.Error())
			return
		}
		h.Logger.Error("update product", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	if ok := writeJSON(w, h.Logger, p); ok {
		h.Logger.Info("product updated", "product", p.ID)
	}
}

func (f *ProductForm) toProduct() *product.Product {
	return &product.Product{
		Name:             f.Name,
		Model:            f.Model,
		Image:            f.Image,
		Description:      f.Description,
		Category:         f.Category,
		Sell:             f.Sell != nil && *f.Sell,
		EngineForm:       f.EngineForm,
		Dimensions:       f.Dimensions,
		SeatHeight:       f.SeatHeight,
		Weight:           f.Weight,
		Displacement:     f.Displacement,
		MaxHorsepower:    f.MaxHorsepower,
		MaxTorque:        f.MaxTorque,
		FrontSuspension:  f.FrontSuspension,
		RearSuspension:   f.RearSuspension,
		FrontTire:        f.FrontTire,
		RearTire:         f.RearTire,
		FrontBrakeSystem: f.FrontBrakeSystem,
		RearBrakeSystem:  f.RearBrakeSystem,
	}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return false
	}
	if c.User.Role != user.RoleAdmin {
		writeError(w, http.StatusForbidden, typeMessage, "admin only")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request, c *claims.Claims) bool {
	val, ok := r.Context().Value(claims.TokenContextKey).(*claims.Claims)
	if !ok || val == nil || val.User.ID == "" {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return false
	}
	*c = *val
	return true
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}
