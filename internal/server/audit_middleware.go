package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
)

// Routes whose bodies carry identity proof or tokens are audited without bodies.
var redactedRoutes = map[string]bool{
	"createReservation": true,
	"checkOut":          true,
	"syncCustomer":      true,
}

var routeEntities = map[string]string{
	"createReservation":  "reservation",
	"getReservation":     "reservation",
	"cancelReservation":  "reservation",
	"reservationHistory": "reservation",
	"attachPayment":      "reservation",
	"checkIn":            "reservation",
	"checkOut":           "storage_item",
	"lookupStorageItem":  "storage_item",
	"storeOccupancy":     "store",
	"syncCustomer":       "customer",
	"sweep":              "sweep",
}

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler := "unknown"
		if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
			handler = route.GetName()
		}
		vars := mux.Vars(r)

		entry := AuditLogEntry{
			Timestamp:  time.Now().UTC(),
			Method:     r.Method,
			Path:       r.URL.Path,
			Handler:    handler,
			Action:     handler,
			UserID:     userID(r),
			EntityType: routeEntities[handler],
		}
		if username, _, ok := r.BasicAuth(); ok {
			entry.StaffUser = username
		}

		switch {
		case vars["number"] != "":
			entry.ReservationNumber = vars["number"]
			entry.EntityID = vars["number"]
		case vars["key"] != "":
			entry.ReservationNumber = vars["key"]
			entry.EntityID = vars["key"]
		case vars["code"] != "":
			entry.StorageCode = vars["code"]
			entry.EntityID = vars["code"]
		case vars["id"] != "":
			entry.EntityID = vars["id"]
		}

		redacted := redactedRoutes[handler]
		multipart := strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data")
		if !redacted && !multipart && r.Body != nil {
			requestBody, _ := io.ReadAll(io.LimitReader(r.Body, maxRecordedBody))
			rest, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(requestBody), bytes.NewReader(rest)))
			entry.Request = string(requestBody)
		}

		cw := newCapturingWriter(w)
		next.ServeHTTP(cw, r)

		entry.StatusCode = cw.Status()
		if !redacted {
			entry.Response = cw.Body()
		}

		s.audit.LogEntry(r.Context(), entry)
	})
}
