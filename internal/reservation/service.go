package reservation

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/clock"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/pricing"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
)

const (
	ReasonCreated   = "created"
	ReasonCancelled = "cancelled by customer"
	ReasonExpired   = "end of storage window"
	ReasonCheckedIn = "checked in"
	ReasonPickedUp  = "checked out"
)

type Deps struct {
	DB           db.DB
	Stores       StoreRepository
	Reservations ReservationRepository
	History      HistoryRepository
	Outbox       OutboxRepository
	Ledger       Admission
	Pricer       pricing.Pricer
	Tokens       TokenIssuer
	Sweep        SweepInvalidator
	Clock        clock.Clock
	// Location is the zone reservation dates and window times are expressed in.
	Location *time.Location
	// MaxDays caps the length of a reservation, DefaultMaxDays when zero.
	MaxDays int
	Logger  *zap.Logger
}

// Service owns the reservation lifecycle. Every status change goes through
// TransitionTx, which records history and an outbox event in the caller's
// transaction.
type Service struct {
	db           db.DB
	stores       StoreRepository
	reservations ReservationRepository
	history      HistoryRepository
	outbox       OutboxRepository
	ledger       Admission
	pricer       pricing.Pricer
	tokens       TokenIssuer
	sweep        SweepInvalidator
	clock        clock.Clock
	loc          *time.Location
	maxDays      int
	logger       *zap.Logger
}

func New(d Deps) *Service {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	clk := d.Clock
	if clk == nil {
		clk = clock.Real{}
	}
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxDays := d.MaxDays
	if maxDays <= 0 {
		maxDays = DefaultMaxDays
	}
	return &Service{
		db:           d.DB,
		stores:       d.Stores,
		reservations: d.Reservations,
		history:      d.History,
		outbox:       d.Outbox,
		ledger:       d.Ledger,
		pricer:       d.Pricer,
		tokens:       d.Tokens,
		sweep:        d.Sweep,
		clock:        clk,
		loc:          loc,
		maxDays:      maxDays,
		logger:       logger,
	}
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Create admits and persists a new RESERVED reservation. The store row stays
// locked from the capacity check until the insert commits.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	l := s.logger.With(zap.String("op", "Create"), zap.Int64("store_id", req.StoreID), zap.String("user_id", req.UserID))

	if err := req.Validate(s.maxDays); err != nil {
		return nil, apperrors.NewInvalidRequest(err.Error())
	}

	now := s.clock.Now()
	number, err := NewReservationNumber(now.In(s.loc))
	if err != nil {
		return nil, apperrors.NewInternal("failed to generate reservation number", err)
	}

	res := &repository.Reservation{
		ReservationNumber: number,
		StoreID:           req.StoreID,
		UserID:            req.UserID,
		StorageDate:       req.Range.Start,
		StorageEndDate:    req.Range.End,
		StartTime:         req.Window.Start,
		EndTime:           req.Window.End,
		SmallBags:         req.Bags.Small,
		MediumBags:        req.Bags.Medium,
		LargeBags:         req.Bags.Large,
		Status:            repository.StatusReserved,
		TotalPrice:        s.pricer.Price(req.Bags, req.Range),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	insert := func(tx db.Tx) error {
		store, err := s.stores.GetByIDForUpdateTx(ctx, tx, req.StoreID)
		if err != nil {
			if errors.Is(err, repository.ErrObjectNotFound) {
				return apperrors.NewStoreNotFound(req.StoreID)
			}
			return fmt.Errorf("failed to lock store: %w", err)
		}
		if !store.Approved {
			return apperrors.NewStoreNotApproved(req.StoreID)
		}

		if err := s.ledger.CheckAndReserve(ctx, tx, store, req.Range, req.Bags); err != nil {
			return err
		}

		if err := s.reservations.CreateTx(ctx, tx, res); err != nil {
			return fmt.Errorf("failed to persist reservation: %w", err)
		}
		return s.record(ctx, tx, res, "", ReasonCreated, "", now)
	}

	err = db.RunInTx(ctx, s.db, insert)
	if errors.Is(err, repository.ErrDuplicate) {
		l.Warn("reservation number collision, retrying", zap.String("reservation_number", res.ReservationNumber))
		if res.ReservationNumber, err = NewReservationNumber(now.In(s.loc)); err != nil {
			return nil, apperrors.NewInternal("failed to generate reservation number", err)
		}
		err = db.RunInTx(ctx, s.db, insert)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrCapacityExceeded) {
			metrics.CapacityRejectionsTotal.Inc()
			l.Info("reservation rejected", zap.Error(err))
		} else if apperrors.From(err).Code == apperrors.CodeInternal {
			metrics.OperationErrorsTotal.WithLabelValues("reservation_create").Inc()
			l.Error("failed to create reservation", zap.Error(err))
		}
		return nil, err
	}

	metrics.ReservationsCreatedTotal.Inc()
	if s.sweep != nil {
		s.sweep.Invalidate(res.StoreID)
	}
	l.Info("reservation created", zap.String("reservation_number", res.ReservationNumber))

	result := &CreateResult{Reservation: res}
	if s.tokens != nil {
		tok, err := s.tokens.Issue(res.ReservationNumber, res.UserID, res.EndBoundary(s.loc, 0))
		if err != nil {
			l.Warn("failed to issue pickup token", zap.Error(err))
		} else {
			result.PickupToken = tok
		}
	}
	return result, nil
}

// Cancel is legal only from RESERVED.
func (s *Service) Cancel(ctx context.Context, key string) (*repository.Reservation, error) {
	var res *repository.Reservation
	err := db.RunInTx(ctx, s.db, func(tx db.Tx) error {
		var err error
		res, err = s.LockTx(ctx, tx, key)
		if err != nil {
			return err
		}
		if res.Status != repository.StatusReserved {
			return apperrors.NewInvalidStateTransition(res.Status.String(), repository.StatusCancelled.String())
		}
		return s.TransitionTx(ctx, tx, res, repository.StatusCancelled, ReasonCancelled)
	})
	if err != nil {
		return nil, err
	}
	metrics.ReservationsCancelledTotal.Inc()
	s.logger.Info("reservation cancelled", zap.String("reservation_number", res.ReservationNumber))
	return res, nil
}

// Expire completes the reservation. It reports whether anything changed.
func (s *Service) Expire(ctx context.Context, key string) (bool, error) {
	var changed bool
	err := db.RunInTx(ctx, s.db, func(tx db.Tx) error {
		res, err := s.LockTx(ctx, tx, key)
		if err != nil {
			return err
		}
		changed, err = s.ExpireTx(ctx, tx, res, ReasonExpired)
		return err
	})
	return changed, err
}

// ExpireTx moves RESERVED or STORED to COMPLETED. Terminal reservations are
// left untouched and reported as unchanged.
func (s *Service) ExpireTx(ctx context.Context, tx db.Tx, res *repository.Reservation, reason string) (bool, error) {
	if res.Status.IsTerminal() {
		return false, nil
	}
	if err := s.TransitionTx(ctx, tx, res, repository.StatusCompleted, reason); err != nil {
		return false, err
	}
	return true, nil
}

// TransitionTx applies one guarded status change to a row the caller has
// locked, with its history entry and outbox event.
func (s *Service) TransitionTx(ctx context.Context, tx db.Tx, res *repository.Reservation, to repository.ReservationStatus, reason string) error {
	return s.transitionTx(ctx, tx, res, to, reason, "")
}

// TransitionWithCodeTx is TransitionTx for custody changes; the event carries the storage code.
func (s *Service) TransitionWithCodeTx(ctx context.Context, tx db.Tx, res *repository.Reservation, to repository.ReservationStatus, reason, storageCode string) error {
	return s.transitionTx(ctx, tx, res, to, reason, storageCode)
}

func (s *Service) transitionTx(ctx context.Context, tx db.Tx, res *repository.Reservation, to repository.ReservationStatus, reason, storageCode string) error {
	from := res.Status
	if !repository.CanTransition(from, to) {
		return apperrors.NewInvalidStateTransition(from.String(), to.String())
	}

	now := s.clock.Now()
	if err := s.reservations.UpdateStatusTx(ctx, tx, res.ID, from, to, now); err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return apperrors.NewInvalidStateTransition(from.String(), to.String())
		}
		return err
	}
	res.Status = to
	res.UpdatedAt = now

	return s.record(ctx, tx, res, from, reason, storageCode, now)
}

func (s *Service) record(ctx context.Context, tx db.Tx, res *repository.Reservation, from repository.ReservationStatus, reason, storageCode string, at time.Time) error {
	entry := &repository.HistoryEntry{
		ReservationID: res.ID,
		OldStatus:     from,
		NewStatus:     res.Status,
		Reason:        reason,
		ChangedAt:     at,
	}
	if err := s.history.CreateTx(ctx, tx, entry); err != nil {
		return err
	}

	event := repository.ReservationEvent{
		ReservationNumber: res.ReservationNumber,
		StoreID:           res.StoreID,
		UserID:            res.UserID,
		OldStatus:         from,
		NewStatus:         res.Status,
		Reason:            reason,
		StorageCode:       storageCode,
		OccurredAt:        at,
	}
	return s.outbox.EnqueueTx(ctx, tx, repository.TopicReservationEvents, event, at)
}

// ExpireOverdue completes every active reservation of the store whose end
// boundary is strictly before now, in a single transaction.
func (s *Service) ExpireOverdue(ctx context.Context, store *repository.Store, now time.Time) (SweepOutcome, error) {
	var out SweepOutcome
	grace := store.Grace()
	today := repository.TruncateDay(now.In(s.loc))

	err := db.RunInTx(ctx, s.db, func(tx db.Tx) error {
		out = SweepOutcome{}
		candidates, err := s.reservations.ListExpiryCandidatesTx(ctx, tx, store.ID, today)
		if err != nil {
			return err
		}

		for _, res := range candidates {
			boundary := res.EndBoundary(s.loc, grace)
			if !boundary.Before(now) {
				out.NextBoundary = earliest(out.NextBoundary, boundary)
				continue
			}
			changed, err := s.ExpireTx(ctx, tx, res, ReasonExpired)
			if err != nil {
				return fmt.Errorf("failed to expire %s: %w", res.ReservationNumber, err)
			}
			if changed {
				out.Expired++
			}
		}

		nextDay, err := s.reservations.NextEndDateTx(ctx, tx, store.ID, today)
		if err != nil {
			return err
		}
		if nextDay != nil {
			y, m, d := nextDay.Date()
			out.NextBoundary = earliest(out.NextBoundary, time.Date(y, m, d, 0, 0, 0, 0, s.loc).Add(grace))
		}
		return nil
	})
	if err != nil {
		return SweepOutcome{}, err
	}
	if out.Expired > 0 {
		metrics.ExpirationsTotal.Add(float64(out.Expired))
	}
	return out, nil
}

func earliest(cur *time.Time, t time.Time) *time.Time {
	if cur == nil || t.Before(*cur) {
		return &t
	}
	return cur
}

// Get resolves key as a numeric id or a reservation number.
func (s *Service) Get(ctx context.Context, key string) (*repository.Reservation, error) {
	var (
		res *repository.Reservation
		err error
	)
	if id, ok := parseID(key); ok {
		res, err = s.reservations.GetByID(ctx, id)
	} else {
		res, err = s.reservations.GetByNumber(ctx, strings.TrimSpace(key))
	}
	return res, mapNotFound(err, key)
}

// LockTx loads and locks the reservation identified by key.
func (s *Service) LockTx(ctx context.Context, tx db.Tx, key string) (*repository.Reservation, error) {
	var (
		res *repository.Reservation
		err error
	)
	if id, ok := parseID(key); ok {
		res, err = s.reservations.GetByIDTx(ctx, tx, id)
	} else {
		res, err = s.reservations.GetByNumberTx(ctx, tx, strings.TrimSpace(key))
	}
	return res, mapNotFound(err, key)
}

// LockByIDTx is LockTx for internal callers that hold the numeric id.
func (s *Service) LockByIDTx(ctx context.Context, tx db.Tx, id int64) (*repository.Reservation, error) {
	res, err := s.reservations.GetByIDTx(ctx, tx, id)
	return res, mapNotFound(err, strconv.FormatInt(id, 10))
}

func (s *Service) History(ctx context.Context, key string) ([]*repository.HistoryEntry, error) {
	res, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	entries, err := s.history.GetByReservationID(ctx, res.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

// AttachPayment stores the payment collaborator's id on the reservation.
func (s *Service) AttachPayment(ctx context.Context, key, paymentID string) (*repository.Reservation, error) {
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, apperrors.NewInvalidRequest("payment id is required")
	}
	res, err := s.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if res.Status == repository.StatusCancelled {
		return nil, apperrors.New(apperrors.CodeInvalidStateTransition, "cannot attach payment", "reservation is CANCELLED")
	}
	if err := s.reservations.SetPaymentID(ctx, res.ReservationNumber, paymentID); err != nil {
		return nil, mapNotFound(err, key)
	}
	res.PaymentID = &paymentID
	return res, nil
}

func parseID(key string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
	return id, err == nil && id > 0
}

func mapNotFound(err error, key string) error {
	if errors.Is(err, repository.ErrObjectNotFound) {
		return apperrors.NewNotFound("reservation", key)
	}
	return err
}
