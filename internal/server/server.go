//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/custody"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/sweeper"
)

const userIDHeader = "X-User-ID"

type Reservations interface {
	Create(ctx context.Context, req reservation.CreateRequest) (*reservation.CreateResult, error)
	Get(ctx context.Context, key string) (*repository.Reservation, error)
	Cancel(ctx context.Context, key string) (*repository.Reservation, error)
	History(ctx context.Context, key string) ([]*repository.HistoryEntry, error)
	AttachPayment(ctx context.Context, key, paymentID string) (*repository.Reservation, error)
}

type Custody interface {
	CheckIn(ctx context.Context, req custody.CheckInRequest) (*custody.CheckInResult, error)
	CheckOut(ctx context.Context, req custody.CheckOutRequest) (*repository.StorageItem, error)
	Lookup(ctx context.Context, code string) (*repository.StorageItem, error)
	Occupancy(ctx context.Context, storeID int64) (*custody.Occupancy, error)
}

type Sweeper interface {
	Sweep(ctx context.Context, mode sweeper.Mode) (sweeper.Report, error)
}

type Customers interface {
	Sync(ctx context.Context, c repository.Customer) (*repository.Customer, error)
}

type UserRepo interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

// HealthChecker reports whether the store of record is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Reservations Reservations
	Custody      Custody
	Sweeper      Sweeper
	Customers    Customers
	Users        UserRepo
	Health       HealthChecker
	Audit        *AuditManager
	Logger       *zap.Logger
}

type Server struct {
	reservations Reservations
	custody      Custody
	sweeper      Sweeper
	customers    Customers
	userRepo     UserRepo
	health       HealthChecker
	audit        *AuditManager
	logger       *zap.Logger

	server *http.Server
}

func New(d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		reservations: d.Reservations,
		custody:      d.Custody,
		sweeper:      d.Sweeper,
		customers:    d.Customers,
		userRepo:     d.Users,
		health:       d.Health,
		audit:        d.Audit,
		logger:       logger.With(zap.String("component", "http")),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, port string) error {
	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	if s.audit != nil {
		s.audit.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server starting", zap.String("port", port))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.Shutdown(ctx)
	}
	s.logger.Info("http server stopped")
	return nil
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)

	api := r.PathPrefix("/").Subrouter()
	if s.audit != nil {
		api.Use(s.auditLogMiddleware)
	}

	customer := api.NewRoute().Subrouter()
	customer.Use(s.customerMiddleware)
	customer.HandleFunc("/reservations", s.handleCreateReservation).Methods(http.MethodPost).Name("createReservation")
	customer.HandleFunc("/reservations/{key}", s.handleGetReservation).Methods(http.MethodGet).Name("getReservation")
	customer.HandleFunc("/reservations/{key}/cancel", s.handleCancelReservation).Methods(http.MethodPost).Name("cancelReservation")
	customer.HandleFunc("/reservations/{key}/history", s.handleReservationHistory).Methods(http.MethodGet).Name("reservationHistory")
	customer.HandleFunc("/reservations/{key}/payment", s.handleAttachPayment).Methods(http.MethodPut).Name("attachPayment")

	staff := api.NewRoute().Subrouter()
	staff.Use(s.basicAuthMiddleware)
	staff.HandleFunc("/reservations/{number}/check-in", s.handleCheckIn).Methods(http.MethodPost).Name("checkIn")
	staff.HandleFunc("/storage-items/{code}/check-out", s.handleCheckOut).Methods(http.MethodPost).Name("checkOut")
	staff.HandleFunc("/storage-items/{code}", s.handleLookup).Methods(http.MethodGet).Name("lookupStorageItem")
	staff.HandleFunc("/stores/{id}/occupancy", s.handleOccupancy).Methods(http.MethodGet).Name("storeOccupancy")
	staff.HandleFunc("/customers/{id}", s.handleSyncCustomer).Methods(http.MethodPut).Name("syncCustomer")
	staff.HandleFunc("/admin/sweep", s.handleSweep).Methods(http.MethodPost).Name("sweep")

	return r
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		valid, err := s.userRepo.ValidateUser(r.Context(), username, password)
		if err != nil {
			s.logger.Error("staff validation failed", zap.String("username", username), zap.Error(err))
		}
		if err != nil || !valid {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// customerMiddleware requires the caller identity set by the upstream
// authentication gateway.
func (s *Server) customerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSpace(r.Header.Get(userIDHeader)) == "" {
			respondError(w, http.StatusUnauthorized, "Missing "+userIDHeader+" header")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.Ping(ctx); err != nil {
			s.logger.Warn("health check failed", zap.Error(err))
			respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError renders business errors with their code. Anything else is
// logged and answered with a generic internal error.
func (s *Server) respondAppError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		respondJSON(w, http.StatusInternalServerError, apperrors.New(apperrors.CodeInternal, "internal error", ""))
		return
	}
	respondJSON(w, appErr.HTTPStatus(), appErr)
}
