package server

import (
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type reservationView struct {
	ID                int64                        `json:"id"`
	ReservationNumber string                       `json:"reservation_number"`
	StoreID           int64                        `json:"store_id"`
	UserID            string                       `json:"user_id"`
	StorageDate       string                       `json:"storage_date"`
	StorageEndDate    string                       `json:"storage_end_date"`
	StartTime         repository.TimeOfDay         `json:"start_time"`
	EndTime           repository.TimeOfDay         `json:"end_time"`
	Bags              repository.BagCounts         `json:"bags"`
	Status            repository.ReservationStatus `json:"status"`
	TotalPrice        int64                        `json:"total_price"`
	PaymentID         *string                      `json:"payment_id,omitempty"`
	CreatedAt         time.Time                    `json:"created_at"`
	UpdatedAt         time.Time                    `json:"updated_at"`
}

func newReservationView(r *repository.Reservation) reservationView {
	return reservationView{
		ID:                r.ID,
		ReservationNumber: r.ReservationNumber,
		StoreID:           r.StoreID,
		UserID:            r.UserID,
		StorageDate:       repository.FormatDate(r.StorageDate),
		StorageEndDate:    repository.FormatDate(r.StorageEndDate),
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		Bags:              r.Bags(),
		Status:            r.Status,
		TotalPrice:        r.TotalPrice,
		PaymentID:         r.PaymentID,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type storageItemView struct {
	ID            int64                    `json:"id"`
	ReservationID int64                    `json:"reservation_id"`
	StorageCode   string                   `json:"storage_code"`
	Bags          repository.BagCounts     `json:"bags"`
	Photos        []string                 `json:"photos"`
	Status        repository.StorageStatus `json:"status"`
	CheckInTime   time.Time                `json:"check_in_time"`
	CheckOutTime  *time.Time               `json:"check_out_time,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
}

func newStorageItemView(i *repository.StorageItem) storageItemView {
	photos := i.Photos
	if photos == nil {
		photos = []string{}
	}
	return storageItemView{
		ID:            i.ID,
		ReservationID: i.ReservationID,
		StorageCode:   i.StorageCode,
		Bags:          i.ActualBags(),
		Photos:        photos,
		Status:        i.Status,
		CheckInTime:   i.CheckInTime,
		CheckOutTime:  i.CheckOutTime,
		Notes:         i.Notes,
	}
}

type historyView struct {
	OldStatus repository.ReservationStatus `json:"old_status,omitempty"`
	NewStatus repository.ReservationStatus `json:"new_status"`
	Reason    string                       `json:"reason,omitempty"`
	ChangedAt time.Time                    `json:"changed_at"`
}
