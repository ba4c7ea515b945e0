package mockapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// API serves the clients/orders endpoints from memory. The zero value is not usable; call New.
type API struct {
	store  *store
	router chi.Router
}

func New() *API {
	a := &API{store: newStore()}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Post("/", a.createClient)
			r.Get("/", a.listClients)
			r.Get("/{id}", a.getClient)
			r.Get("/{id}/profit", a.getProfit)
			r.Patch("/{id}/status", a.updateStatus)
			r.Get("/{id}/orders", a.listClientOrders)
		})
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", a.createOrder)
			r.Get("/", a.listOrders)
			r.Get("/{id}", a.getOrder)
		})
	})
	a.router = r
	return a
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func (a *API) createClient(w http.ResponseWriter, r *http.Request) {
	var req createClientRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, err := a.store.createClient(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (a *API) listClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.store.listClients())
}

func (a *API) getClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	c, err := a.store.getClient(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) getProfit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	p, err := a.store.profit(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req clientStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Active == nil {
		writeError(w, r, badRequest("active must not be null"))
		return
	}
	c, err := a.store.setActive(id, *req.Active)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (a *API) listClientOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := a.store.getClient(id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a.store.listOrders(id))
}

func (a *API) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}
	o, err := a.store.createOrder(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

func (a *API) listOrders(w http.ResponseWriter, r *http.Request) {
	clientID := 0
	if s := r.URL.Query().Get("clientId"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeError(w, r, badRequest("Parameter 'clientId' should be of type Long"))
			return
		}
		clientID = n
	}
	writeJSON(w, http.StatusOK, a.store.listOrders(clientID))
}

func (a *API) getOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := a.store.getOrder(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, badRequest("Parameter 'id' should be of type Long"))
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeError(w, r, badRequest("Malformed JSON request: %s", err))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, value interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(value)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Unexpected error: " + err.Error()
	var ae *apiError
	if errors.As(err, &ae) {
		status, message = ae.status, ae.message
	}
	writeJSON(w, status, errorResponse{
		Timestamp: time.Now().Format(time.RFC3339Nano),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      r.URL.Path,
	})
}
