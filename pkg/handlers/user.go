package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"motoshop/pkg/cart"
	"motoshop/pkg/claims"
	"motoshop/pkg/session"
	"motoshop/pkg/user"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type RegisterForm struct {
	Account  string `json:"account" validate:"required,min=4,max=20,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4,max=20"`
}

type LoginForm struct {
	Account  string `json:"account"`
	Password string `json:"password"`
}

type PasswordForm struct {
	Password string `json:"password" validate:"required,min=4,max=20"`
}

type Handler struct {
	Service user.ServiceInterface
	Cart    cart.ServiceInterface
	Logger  *slog.Logger
}

type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Value    string `json:"value"`
	Msg      string `json:"msg"`
}

func NewUserHandler(service user.ServiceInterface, cartService cart.ServiceInterface, logger *slog.Logger) *Handler {
	return &Handler{
		Service: service,
		Cart:    cartService,
		Logger:  logger,
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}
	if ok := ValidateForm(w, h.Logger, &req); !ok {
		return
	}

	u, err := h.Service.Register(req.Account, req.Email, req.Password)
	if err != nil {
		if !errors.Is(err, user.ErrUserExists) {
			h.Logger.Error("register", "error", err.Error())
			writeError(w, http.StatusInternalServerError, typeError, "server error")
			return
		}
		if ok := WriteResp(w, h.Logger, map[string]any{
			"errors": []FieldError{
				{
					Location: "body",
					Param:    "account",
					Value:    req.Account,
					Msg:      "already exists",
				},
			},
		}, http.StatusUnprocessableEntity); ok {
			h.Logger.Error("register", "error", err.Error())
		}
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"message": "success"}, http.StatusOK); ok {
		h.Logger.Info("register", "user", u.ID)
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	u, token, err := h.Service.Login(req.Account, req.Password)
	if err != nil {
		var msg string
		if errors.Is(err, user.ErrUserNotFound) {
			msg = "user not found"
		} else {
			msg = "invalid password"
		}
		if ok := WriteResp(w, h.Logger, map[string]any{"message": msg}, http.StatusUnauthorized); ok {
			h.Logger.Error("login", "error", "unauthorized", "account", req.Account)
		}
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{
		"token":   token,
		"account": u.Account,
		"email":   u.Email,
		"role":    u.Role,
		"avatar":  u.Avatar,
	}, http.StatusOK); ok {
		h.Logger.Info("login", "user", u.ID)
	}
}

/* logout идемпотентен: повторный вызов с тем же токеном — no-op */
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	if err := h.Service.Logout(claims.User.ID, claims.Raw); err != nil {
		h.Logger.Error("logout", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"message": "success"}, http.StatusOK); ok {
		h.Logger.Info("logout", "user", claims.User.ID)
	}
}

func (h *Handler) Extend(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	token, err := h.Service.Extend(claims.User.ID, claims.User.Account, claims.User.Role, claims.SessionID, claims.Raw)
	if err != nil {
		if errors.Is(err, session.ErrTokenNotFound) {
			writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
			return
		}
		h.Logger.Error("extend", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"token": token}, http.StatusOK); ok {
		h.Logger.Info("extend", "user", claims.User.ID)
	}
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	u, err := h.Service.Profile(claims.User.ID)
	if err != nil {
		h.Logger.Error("profile", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	total, err := h.Cart.Total(claims.User.ID)
	if err != nil {
		h.Logger.Error("profile cart total", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	WriteResp(w, h.Logger, map[string]any{
		"account": u.Account,
		"email":   u.Email,
		"role":    u.Role,
		"avatar":  u.Avatar,
		"cart":    total,
	}, http.StatusOK)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req PasswordForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}
	if ok := ValidateForm(w, h.Logger, &req); !ok {
		return
	}

	var claims claims.Claims
	if ok := getClaimsFromContext(w, r, &claims); !ok {
		return
	}

	if err := h.Service.ChangePassword(claims.User.ID, req.Password); err != nil {
		h.Logger.Error("change password", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "server error")
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"message": "success"}, http.StatusOK); ok {
		h.Logger.Info("password changed", "user", claims.User.ID)
	}
}

func DecodeJSONBody(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		writeError(w, http.StatusBadRequest, typeError, "invalid Content-Type")
		return false
	}

	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, typeError, "bad json")
		return false
	}

	return true
}

// ValidateForm aggregates all failed fields into one 422 payload.
func ValidateForm(w http.ResponseWriter, logger *slog.Logger, form any) bool {
	err := validate.Struct(form)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		writeError(w, http.StatusBadRequest, typeError, "invalid payload")
		return false
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Location: "body",
			Param:    strings.ToLower(fe.Field()),
			Msg:      "failed on " + fe.Tag(),
		})
	}
	WriteResp(w, logger, map[string]any{"errors": fields}, http.StatusUnprocessableEntity)
	return false
}

func WriteResp(w http.ResponseWriter, logger *slog.Logger, body map[string]any, status int) bool {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write JSON response", slog.Any("err", err))
		return false
	}
	return true
}
