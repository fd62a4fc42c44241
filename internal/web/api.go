package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Items(r.Context())
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, items)
}

func (h *Handler) listStates(w http.ResponseWriter, r *http.Request) {
	states, err := h.svc.States(r.Context())
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, states)
}

func (h *Handler) listCities(w http.ResponseWriter, r *http.Request) {
	stateID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid state id")
		return
	}

	cities, err := h.svc.Cities(r.Context(), stateID)
	if err != nil {
		h.writeUpstreamError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, cities)
}

func (h *Handler) locate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	hint := positionHint(query.Get("lat"), query.Get("lng"))
	hint.City = query.Get("city")
	hint.UF = query.Get("uf")

	writeData(w, http.StatusOK, h.svc.Locate(r.Context(), hint))
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorContext(r.Context(), "Upstream request failed", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadGateway, "upstream unavailable")
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
