package cart

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const sessionCookie = "naturevita_session"

var validate = validator.New()

// SessionID returns the caller's session id, minting a new one (and
// setting the cookie) on first contact. Only well-formed UUIDs are
// accepted: the id is used as a storage key suffix, so a tampered
// cookie must never reach the backends.
func SessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// Handler exposes the storefront cart and favorites endpoints. Every
// response embeds the derived aggregates so consumers (header badge,
// product grid, modals) never recompute them client-side.
type Handler struct {
	sessions *Sessions
}

func NewHandler(sessions *Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/cart", h.getCart)
		r.Delete("/cart", h.clearCart)
		r.Post("/cart/items", h.addItem)
		r.Patch("/cart/items/{productID}", h.updateQuantity)
		r.Delete("/cart/items/{productID}", h.removeItem)
		r.Get("/favorites", h.listFavorites)
		r.Put("/favorites/{productID}", h.addFavorite)
		r.Delete("/favorites/{productID}", h.removeFavorite)
	})
}

type cartResponse struct {
	Items          []CartLine `json:"items"`
	CartTotal      int64      `json:"cart_total"`
	CartCount      int        `json:"cart_count"`
	FavoritesCount int        `json:"favorites_count"`
}

type favoritesResponse struct {
	IDs            []int64 `json:"ids"`
	FavoritesCount int     `json:"favorites_count"`
}

func (h *Handler) store(w http.ResponseWriter, r *http.Request) *Store {
	return h.sessions.Get(SessionID(w, r))
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	respondCart(w, h.store(w, r))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	store := h.store(w, r)
	store.ClearCart()
	respondCart(w, store)
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validate.Struct(item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store := h.store(w, r)
	store.AddToCart(item)
	respondCart(w, store)
}

func (h *Handler) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store := h.store(w, r)
	store.UpdateQuantity(id, req.Quantity)
	respondCart(w, store)
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store := h.store(w, r)
	store.RemoveFromCart(id)
	respondCart(w, store)
}

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	respondFavorites(w, h.store(w, r))
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store := h.store(w, r)
	store.AddToFavorites(id)
	respondFavorites(w, store)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	store := h.store(w, r)
	store.RemoveFromFavorites(id)
	respondFavorites(w, store)
}

func productID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
}

func respondCart(w http.ResponseWriter, store *Store) {
	respond(w, http.StatusOK, cartResponse{
		Items:          store.CartItems(),
		CartTotal:      store.CartTotal(),
		CartCount:      store.CartCount(),
		FavoritesCount: store.FavoritesCount(),
	})
}

func respondFavorites(w http.ResponseWriter, store *Store) {
	respond(w, http.StatusOK, favoritesResponse{
		IDs:            store.Favorites(),
		FavoritesCount: store.FavoritesCount(),
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
