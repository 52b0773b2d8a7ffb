package grpcserver

import (
	"time"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

type CreateReservationRequest struct {
	StoreID        int64                `json:"store_id"`
	StorageDate    string               `json:"storage_date"`
	StorageEndDate string               `json:"storage_end_date"`
	StartTime      repository.TimeOfDay `json:"start_time"`
	EndTime        repository.TimeOfDay `json:"end_time"`
	SmallBags      int                  `json:"small_bags"`
	MediumBags     int                  `json:"medium_bags"`
	LargeBags      int                  `json:"large_bags"`
}

type CreateReservationResponse struct {
	ID                int64                        `json:"id"`
	ReservationNumber string                       `json:"reservation_number"`
	Status            repository.ReservationStatus `json:"status"`
	TotalPrice        int64                        `json:"total_price"`
	PickupToken       string                       `json:"pickup_token,omitempty"`
}

type CancelReservationRequest struct {
	Key string `json:"key"`
}

type CancelReservationResponse struct {
	ReservationNumber string                       `json:"reservation_number"`
	Status            repository.ReservationStatus `json:"status"`
}

type Photo struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type CheckInRequest struct {
	ReservationNumber string  `json:"reservation_number"`
	SmallBags         int     `json:"small_bags"`
	MediumBags        int     `json:"medium_bags"`
	LargeBags         int     `json:"large_bags"`
	Notes             string  `json:"notes,omitempty"`
	Photos            []Photo `json:"photos,omitempty"`
}

type CheckInResponse struct {
	StorageCode  string `json:"storage_code"`
	QRPayload    string `json:"qr_payload"`
	FailedPhotos int    `json:"failed_photos"`
}

type CheckOutRequest struct {
	StorageCode     string `json:"storage_code"`
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerContact string `json:"customer_contact,omitempty"`
	PickupToken     string `json:"pickup_token,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type CheckOutResponse struct {
	StorageCode  string                   `json:"storage_code"`
	Status       repository.StorageStatus `json:"status"`
	CheckOutTime *time.Time               `json:"check_out_time,omitempty"`
}

type GetStoreOccupancyRequest struct {
	StoreID int64 `json:"store_id"`
}

type GetStoreOccupancyResponse struct {
	StoreID   int64                       `json:"store_id"`
	StoreName string                      `json:"store_name"`
	ItemCount int                         `json:"item_count"`
	Bags      repository.BagCounts        `json:"bags"`
	Items     []*repository.OccupancyItem `json:"items"`
}
