package custody

import (
	"context"
	"crypto/subtle"
	"encoding/base32"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
)

const qrScheme = "luggage://storage/"

var codeEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

type Photo struct {
	Name string
	Data []byte
}

type CheckInRequest struct {
	ReservationNumber string
	Actual            repository.BagCounts
	Notes             string
	Photos            []Photo
}

type CheckInResult struct {
	Item              *repository.StorageItem
	ReservationNumber string
	QRPayload         string
	// FailedPhotos counts photos that could not be uploaded.
	FailedPhotos int
}

// CheckOutRequest carries the identity proof: either a pickup token or the
// owner's name together with a phone number or email.
type CheckOutRequest struct {
	StorageCode     string
	CustomerName    string
	CustomerContact string
	PickupToken     string
	Notes           string
}

type Occupancy struct {
	StoreID   int64                       `json:"store_id"`
	StoreName string                      `json:"store_name"`
	ItemCount int                         `json:"item_count"`
	Bags      repository.BagCounts        `json:"bags"`
	Items     []*repository.OccupancyItem `json:"items"`
}

type Deps struct {
	DB           db.DB
	Reservations Lifecycle
	Items        StorageItemRepository
	Files        FileStore
	Users        UserDirectory
	Tokens       TokenVerifier
	Catalog      StoreCatalog
	Clock        clock.Clock
	Logger       *zap.Logger
}

// Service tracks physical custody of luggage. Each check-in and check-out
// changes the storage item and the reservation in one transaction. Rows are
// always locked reservation first, then item.
type Service struct {
	db           db.DB
	reservations Lifecycle
	items        StorageItemRepository
	files        FileStore
	users        UserDirectory
	tokens       TokenVerifier
	catalog      StoreCatalog
	clock        clock.Clock
	logger       *zap.Logger
}

func New(d Deps) *Service {
	clk := d.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:           d.DB,
		reservations: d.Reservations,
		items:        d.Items,
		files:        d.Files,
		users:        d.Users,
		tokens:       d.Tokens,
		catalog:      d.Catalog,
		clock:        clk,
		logger:       logger,
	}
}

func QRPayload(storageCode string) string {
	return qrScheme + storageCode
}

func NewStorageCode() string {
	id := uuid.New()
	return codeEncoding.EncodeToString(id[:10])
}

func normalizeCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimPrefix(code, qrScheme)
	return strings.ToUpper(code)
}

// now is truncated to the database timestamp precision.
func (s *Service) now() time.Time {
	return s.clock.Now().Truncate(time.Microsecond)
}

func (s *Service) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	number := strings.TrimSpace(req.ReservationNumber)
	l := s.logger.With(zap.String("op", "CheckIn"), zap.String("reservation_number", number))

	if number == "" {
		return nil, apperrors.NewInvalidRequest("reservation number is required")
	}
	if err := req.Actual.Validate(); err != nil {
		return nil, apperrors.NewInvalidRequest(err.Error())
	}

	// Fail fast before uploading photos that would end up orphaned.
	current, err := s.reservations.Get(ctx, number)
	if err != nil {
		return nil, err
	}
	if current.Status != repository.StatusReserved {
		if err := s.rejectCheckIn(ctx, current); err != nil {
			return nil, err
		}
	}

	refs, failed := s.uploadPhotos(ctx, l, number, req.Photos)

	item := &repository.StorageItem{
		StorageCode:      NewStorageCode(),
		ActualSmallBags:  req.Actual.Small,
		ActualMediumBags: req.Actual.Medium,
		ActualLargeBags:  req.Actual.Large,
		Photos:           refs,
		Status:           repository.StorageStored,
		CheckInTime:      s.now(),
		Notes:            strings.TrimSpace(req.Notes),
	}

	err = db.RunInTx(ctx, s.db, func(tx db.Tx) error {
		res, err := s.reservations.LockTx(ctx, tx, number)
		if err != nil {
			return err
		}

		_, err = s.items.GetByReservationIDTx(ctx, tx, res.ID)
		switch {
		case err == nil:
			return apperrors.NewAlreadyCheckedIn(number)
		case !errors.Is(err, repository.ErrObjectNotFound):
			return fmt.Errorf("failed to look up storage item: %w", err)
		}

		if res.Status != repository.StatusReserved {
			return apperrors.NewInvalidStateTransition(res.Status.String(), repository.StatusStored.String())
		}

		item.ReservationID = res.ID
		if err := s.items.CreateTx(ctx, tx, item); err != nil {
			if errors.Is(err, repository.ErrItemExists) {
				return apperrors.NewAlreadyCheckedIn(number)
			}
			return fmt.Errorf("failed to create storage item: %w", err)
		}
		return s.reservations.TransitionWithCodeTx(ctx, tx, res, repository.StatusStored, reservation.ReasonCheckedIn, item.StorageCode)
	})
	if err != nil {
		s.countInternal("check_in", err, l)
		return nil, err
	}

	metrics.CheckInsTotal.Inc()
	l.Info("luggage checked in", zap.String("storage_code", item.StorageCode), zap.Int("photos", len(refs)))

	return &CheckInResult{
		Item:              item,
		ReservationNumber: number,
		QRPayload:         QRPayload(item.StorageCode),
		FailedPhotos:      failed,
	}, nil
}

// rejectCheckIn explains why a reservation that is no longer RESERVED cannot
// be checked in. A reservation that already has an item was checked in before,
// whatever its status now. A nil result leaves the decision to the transaction.
func (s *Service) rejectCheckIn(ctx context.Context, res *repository.Reservation) error {
	_, err := s.items.GetByReservationID(ctx, res.ID)
	switch {
	case err == nil:
		return apperrors.NewAlreadyCheckedIn(res.ReservationNumber)
	case errors.Is(err, repository.ErrObjectNotFound):
		if res.Status.IsTerminal() {
			return apperrors.NewInvalidStateTransition(res.Status.String(), repository.StatusStored.String())
		}
		return nil
	default:
		return fmt.Errorf("failed to look up storage item: %w", err)
	}
}

// uploadPhotos never fails: a photo that cannot be stored is logged and dropped.
func (s *Service) uploadPhotos(ctx context.Context, l *zap.Logger, number string, photos []Photo) ([]string, int) {
	refs := make([]string, 0, len(photos))
	if s.files == nil {
		return refs, len(photos)
	}
	failed := 0
	for i, p := range photos {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("%s-%d.jpg", number, i+1)
		}
		ref, err := s.files.Upload(ctx, name, p.Data)
		if err != nil {
			failed++
			metrics.PhotoUploadFailuresTotal.Inc()
			l.Warn("photo upload failed", zap.String("photo", name), zap.Error(err))
			continue
		}
		refs = append(refs, ref)
	}
	return refs, failed
}

func (s *Service) CheckOut(ctx context.Context, req CheckOutRequest) (*repository.StorageItem, error) {
	code := normalizeCode(req.StorageCode)
	l := s.logger.With(zap.String("op", "CheckOut"), zap.String("storage_code", code))

	if code == "" {
		return nil, apperrors.NewInvalidRequest("storage code is required")
	}

	peek, err := s.items.GetByCode(ctx, code)
	if err != nil {
		return nil, itemNotFound(err, code)
	}

	var item *repository.StorageItem
	err = db.RunInTx(ctx, s.db, func(tx db.Tx) error {
		res, err := s.reservations.LockByIDTx(ctx, tx, peek.ReservationID)
		if err != nil {
			return err
		}
		item, err = s.items.GetByCodeTx(ctx, tx, code)
		if err != nil {
			return itemNotFound(err, code)
		}
		if item.Status == repository.StorageRetrieved {
			return apperrors.NewAlreadyCheckedOut(code)
		}

		if err := s.verifyIdentity(ctx, res, req); err != nil {
			return err
		}

		checkOut := s.now()
		if !checkOut.After(item.CheckInTime) {
			checkOut = item.CheckInTime.Add(time.Microsecond)
		}
		notes := appendNotes(item.Notes, req.Notes)

		if err := s.items.CheckOutTx(ctx, tx, item.ID, checkOut, notes); err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return apperrors.NewAlreadyCheckedOut(code)
			}
			return err
		}
		item.Status = repository.StorageRetrieved
		item.CheckOutTime = &checkOut
		item.Notes = notes

		// The sweep may have completed the reservation already.
		_, err = s.reservations.ExpireTx(ctx, tx, res, reservation.ReasonPickedUp)
		return err
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrIdentityMismatch) {
			l.Warn("identity verification failed")
		}
		s.countInternal("check_out", err, l)
		return nil, err
	}

	metrics.CheckOutsTotal.Inc()
	l.Info("luggage checked out")
	return item, nil
}

func (s *Service) verifyIdentity(ctx context.Context, res *repository.Reservation, req CheckOutRequest) error {
	if raw := strings.TrimSpace(req.PickupToken); raw != "" {
		if s.tokens == nil {
			return apperrors.NewIdentityMismatch()
		}
		claims, err := s.tokens.Verify(raw, res.ReservationNumber)
		if err != nil || claims.UserID != res.UserID {
			return apperrors.NewIdentityMismatch()
		}
		return nil
	}

	if s.users == nil {
		return apperrors.NewIdentityMismatch()
	}
	owner, err := s.users.GetByID(ctx, res.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return apperrors.NewIdentityMismatch()
		}
		return fmt.Errorf("failed to load reservation owner: %w", err)
	}

	nameOK := fieldEqual(req.CustomerName, owner.FullName)
	phoneOK := fieldEqual(req.CustomerContact, owner.Phone)
	emailOK := fieldEqual(req.CustomerContact, owner.Email)
	if nameOK&(phoneOK|emailOK) != 1 {
		return apperrors.NewIdentityMismatch()
	}
	return nil
}

// fieldEqual compares trimmed, case-folded values in constant time and
// returns 1 on a match. Empty values never match.
func fieldEqual(given, want string) int {
	g := strings.ToLower(strings.TrimSpace(given))
	w := strings.ToLower(strings.TrimSpace(want))
	if g == "" || w == "" {
		return 0
	}
	return subtle.ConstantTimeCompare([]byte(g), []byte(w))
}

func appendNotes(existing, added string) string {
	added = strings.TrimSpace(added)
	switch {
	case added == "":
		return existing
	case existing == "":
		return added
	}
	return existing + "\n" + added
}

// Occupancy lists what a store physically holds right now.
func (s *Service) Occupancy(ctx context.Context, storeID int64) (*Occupancy, error) {
	store, err := s.catalog.GetStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	items, err := s.items.ListStoredByStore(ctx, storeID)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("occupancy").Inc()
		return nil, fmt.Errorf("failed to load occupancy: %w", err)
	}

	occ := &Occupancy{StoreID: store.ID, StoreName: store.Name, ItemCount: len(items), Items: items}
	for _, it := range items {
		occ.Bags = occ.Bags.Add(repository.BagCounts{
			Small:  it.ActualSmallBags,
			Medium: it.ActualMediumBags,
			Large:  it.ActualLargeBags,
		})
	}
	if occ.Items == nil {
		occ.Items = []*repository.OccupancyItem{}
	}
	return occ, nil
}

// Lookup resolves a storage code or a scanned QR payload.
func (s *Service) Lookup(ctx context.Context, code string) (*repository.StorageItem, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, apperrors.NewInvalidRequest("storage code is required")
	}
	item, err := s.items.GetByCode(ctx, code)
	if err != nil {
		return nil, itemNotFound(err, code)
	}
	return item, nil
}

func (s *Service) countInternal(op string, err error, l *zap.Logger) {
	if apperrors.From(err).Code == apperrors.CodeInternal {
		metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
		l.Error("operation failed", zap.Error(err))
	}
}

func itemNotFound(err error, code string) error {
	if errors.Is(err, repository.ErrObjectNotFound) {
		return apperrors.NewNotFound("storage item", code)
	}
	return err
}
