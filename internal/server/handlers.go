package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/custody"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/sweeper"
)

const (
	maxPhotoUpload = 32 << 20
	maxPhotos      = 10
)

func userID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(userIDHeader))
}

func (s *Server) handleCreateReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StoreID        int64                `json:"store_id"`
		StorageDate    string               `json:"storage_date"`
		StorageEndDate string               `json:"storage_end_date"`
		StartTime      repository.TimeOfDay `json:"start_time"`
		EndTime        repository.TimeOfDay `json:"end_time"`
		SmallBags      int                  `json:"small_bags"`
		MediumBags     int                  `json:"medium_bags"`
		LargeBags      int                  `json:"large_bags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rng, err := repository.ParseDateRange(req.StorageDate, req.StorageEndDate)
	if err != nil {
		s.respondAppError(w, r, apperrors.NewInvalidRequest(err.Error()))
		return
	}

	result, err := s.reservations.Create(r.Context(), reservation.CreateRequest{
		UserID:  userID(r),
		StoreID: req.StoreID,
		Range:   rng,
		Window:  repository.TimeWindow{Start: req.StartTime, End: req.EndTime},
		Bags:    repository.BagCounts{Small: req.SmallBags, Medium: req.MediumBags, Large: req.LargeBags},
	})
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}

	res := result.Reservation
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"id":                 res.ID,
		"reservation_number": res.ReservationNumber,
		"status":             res.Status,
		"total_price":        res.TotalPrice,
		"pickup_token":       result.PickupToken,
	})
}

// ownedReservation loads the reservation and hides it from anyone but its owner.
func (s *Server) ownedReservation(w http.ResponseWriter, r *http.Request) (*repository.Reservation, bool) {
	key := mux.Vars(r)["key"]
	res, err := s.reservations.Get(r.Context(), key)
	if err != nil {
		s.respondAppError(w, r, err)
		return nil, false
	}
	if res.UserID != userID(r) {
		s.respondAppError(w, r, apperrors.NewNotFound("reservation", key))
		return nil, false
	}
	return res, true
}

func (s *Server) handleGetReservation(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ownedReservation(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, newReservationView(res))
}

func (s *Server) handleCancelReservation(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ownedReservation(w, r)
	if !ok {
		return
	}
	cancelled, err := s.reservations.Cancel(r.Context(), res.ReservationNumber)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newReservationView(cancelled))
}

func (s *Server) handleReservationHistory(w http.ResponseWriter, r *http.Request) {
	res, ok := s.ownedReservation(w, r)
	if !ok {
		return
	}
	entries, err := s.reservations.History(r.Context(), res.ReservationNumber)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}

	out := make([]historyView, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyView{OldStatus: e.OldStatus, NewStatus: e.NewStatus, Reason: e.Reason, ChangedAt: e.ChangedAt})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleAttachPayment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PaymentID string `json:"payment_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, ok := s.ownedReservation(w, r)
	if !ok {
		return
	}
	updated, err := s.reservations.AttachPayment(r.Context(), res.ReservationNumber, req.PaymentID)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newReservationView(updated))
}

func formInt(r *http.Request, name string) (int, error) {
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, apperrors.NewInvalidRequest("invalid value for '" + name + "'")
	}
	return n, nil
}

func (s *Server) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxPhotoUpload); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	var counts repository.BagCounts
	for _, f := range []struct {
		name string
		dst  *int
	}{{"small", &counts.Small}, {"medium", &counts.Medium}, {"large", &counts.Large}} {
		n, err := formInt(r, f.name)
		if err != nil {
			s.respondAppError(w, r, err)
			return
		}
		*f.dst = n
	}

	var photos []custody.Photo
	if r.MultipartForm != nil {
		files := r.MultipartForm.File["photos"]
		if len(files) > maxPhotos {
			s.respondAppError(w, r, apperrors.NewInvalidRequest("too many photos"))
			return
		}
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid photo "+fh.Filename)
				return
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				respondError(w, http.StatusBadRequest, "Invalid photo "+fh.Filename)
				return
			}
			photos = append(photos, custody.Photo{Name: fh.Filename, Data: data})
		}
	}

	result, err := s.custody.CheckIn(r.Context(), custody.CheckInRequest{
		ReservationNumber: mux.Vars(r)["number"],
		Actual:            counts,
		Notes:             r.FormValue("notes"),
		Photos:            photos,
	})
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"storage_code":       result.Item.StorageCode,
		"qr_payload":         result.QRPayload,
		"reservation_number": result.ReservationNumber,
		"photos":             len(result.Item.Photos),
		"failed_photos":      result.FailedPhotos,
	})
}

func (s *Server) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CustomerName    string `json:"customer_name"`
		CustomerContact string `json:"customer_contact"`
		PickupToken     string `json:"pickup_token"`
		Notes           string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := s.custody.CheckOut(r.Context(), custody.CheckOutRequest{
		StorageCode:     mux.Vars(r)["code"],
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		PickupToken:     req.PickupToken,
		Notes:           req.Notes,
	})
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newStorageItemView(item))
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	item, err := s.custody.Lookup(r.Context(), mux.Vars(r)["code"])
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newStorageItemView(item))
}

func (s *Server) handleOccupancy(w http.ResponseWriter, r *http.Request) {
	storeID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || storeID <= 0 {
		respondError(w, http.StatusBadRequest, "Invalid store ID")
		return
	}

	occ, err := s.custody.Occupancy(r.Context(), storeID)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, occ)
}

func (s *Server) handleSyncCustomer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := s.customers.Sync(r.Context(), repository.Customer{
		ID:       mux.Vars(r)["id"],
		FullName: req.FullName,
		Phone:    req.Phone,
		Email:    req.Email,
	})
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"id": c.ID})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	mode, err := sweeper.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid value for 'mode' parameter")
		return
	}

	report, err := s.sweeper.Sweep(r.Context(), mode)
	if err != nil {
		s.respondAppError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
