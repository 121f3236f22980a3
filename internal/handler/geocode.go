package handler

import "net/http"

// reverseGeocode handles GET /api/reverse-geocode: proxies a lat/lng pair to
// the upstream geocoder and returns the resolved address.
func (h *Handler) reverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat := r.URL.Query().Get("lat")
	lng := r.URL.Query().Get("lng")
	if lat == "" || lng == "" {
		writeError(w, http.StatusBadRequest, "lat and lng required")
		return
	}

	address, err := h.geo.Reverse(r.Context(), lat, lng)
	if err != nil {
		logError(r, "Reverse geocode failed", err)
		writeError(w, http.StatusBadGateway, "reverse geocode failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"address": address})
}
