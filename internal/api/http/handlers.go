package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"joshemfoods/internal/domain"
	"joshemfoods/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Site service.SiteServiceInterface
}

func NewHandler(site service.SiteServiceInterface) *Handler {
	return &Handler{Site: site}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/data", h.getData).Methods("GET")
	r.HandleFunc("/api/menu", h.replaceMenu).Methods("POST")
	r.HandleFunc("/api/content", h.replaceContent).Methods("POST")
	r.HandleFunc("/api/testimonials", h.replaceTestimonials).Methods("POST")
	r.HandleFunc("/api/orders", h.replaceOrders).Methods("POST")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/auth/verify", h.verifyPassword).Methods("POST")
	r.HandleFunc("/api/auth/update", h.updatePassword).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "joshem-store",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) getData(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Site.Data()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

func (h *Handler) replaceMenu(w http.ResponseWriter, r *http.Request) {
	var items []domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Site.ReplaceMenu(r.Context(), items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w)
}

func (h *Handler) replaceContent(w http.ResponseWriter, r *http.Request) {
	var content domain.SiteContent
	if err := json.NewDecoder(r.Body).Decode(&content); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Site.ReplaceContent(r.Context(), content); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w)
}

func (h *Handler) replaceTestimonials(w http.ResponseWriter, r *http.Request) {
	var items []domain.Testimonial
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Site.ReplaceTestimonials(r.Context(), items); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w)
}

func (h *Handler) replaceOrders(w http.ResponseWriter, r *http.Request) {
	var orders []domain.Order
	if err := json.NewDecoder(r.Body).Decode(&orders); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Site.ReplaceOrders(r.Context(), orders); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	qrCode, err := h.Site.PickupQRCode(id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

type authRequest struct {
	Password string `json:"password"`
}

func (h *Handler) verifyPassword(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.Site.VerifyPassword(req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "Invalid credentials"})
		return
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Password == "" {
		http.Error(w, "Password must not be empty", http.StatusBadRequest)
		return
	}
	if err := h.Site.UpdatePassword(req.Password); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeSuccess(w)
}

func writeSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"success": true})
}
