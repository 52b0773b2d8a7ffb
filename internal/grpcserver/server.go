//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_grpcserver
package grpcserver

import (
	"context"
	"encoding/base64"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/custody"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/metrics"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
)

const (
	userIDKey        = "x-user-id"
	authorizationKey = "authorization"
)

var _ StorageServer = (*Server)(nil)

type Reservations interface {
	Create(ctx context.Context, req reservation.CreateRequest) (*reservation.CreateResult, error)
	Get(ctx context.Context, key string) (*repository.Reservation, error)
	Cancel(ctx context.Context, key string) (*repository.Reservation, error)
}

type Custody interface {
	CheckIn(ctx context.Context, req custody.CheckInRequest) (*custody.CheckInResult, error)
	CheckOut(ctx context.Context, req custody.CheckOutRequest) (*repository.StorageItem, error)
	Occupancy(ctx context.Context, storeID int64) (*custody.Occupancy, error)
}

type StaffAuth interface {
	ValidateUser(ctx context.Context, username, password string) (bool, error)
}

// staffMethods require basic credentials of a staff account.
var staffMethods = map[string]bool{
	"/" + serviceName + "/CheckIn":           true,
	"/" + serviceName + "/CheckOut":          true,
	"/" + serviceName + "/GetStoreOccupancy": true,
}

type Server struct {
	reservations Reservations
	custody      Custody
	auth         StaffAuth
	logger       *zap.Logger
}

func NewServer(reservations Reservations, custody Custody, auth StaffAuth, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		reservations: reservations,
		custody:      custody,
		auth:         auth,
		logger:       logger.With(zap.String("component", "grpc")),
	}
}

// NewGRPCServer builds a grpc.Server with the storage service and staff auth registered.
func (s *Server) NewGRPCServer(opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(s.authInterceptor))
	srv := grpc.NewServer(opts...)
	RegisterStorageServer(srv, s)
	return srv
}

func (s *Server) authInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if !staffMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	username, password, ok := basicCredentials(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing staff credentials")
	}
	valid, err := s.auth.ValidateUser(ctx, username, password)
	if err != nil {
		s.logger.Error("Failed to validate staff credentials", zap.String("method", info.FullMethod), zap.Error(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	if !valid {
		return nil, status.Error(codes.Unauthenticated, "invalid staff credentials")
	}
	return handler(ctx, req)
}

func basicCredentials(ctx context.Context) (string, string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", "", false
	}
	values := md.Get(authorizationKey)
	if len(values) == 0 {
		return "", "", false
	}
	const prefix = "Basic "
	if len(values[0]) < len(prefix) || !strings.EqualFold(values[0][:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(values[0][len(prefix):])
	if err != nil {
		return "", "", false
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	return username, password, ok
}

func userFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(userIDKey)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

// toStatus converts a service error to a gRPC status, hiding internal details.
func toStatus(l *zap.Logger, op string, err error) error {
	appErr := apperrors.From(err)
	if appErr.Code == apperrors.CodeInternal {
		l.Error("Operation failed", zap.String("operation", op), zap.Error(err))
		metrics.OperationErrorsTotal.WithLabelValues(op).Inc()
		return status.Error(codes.Internal, "internal error")
	}
	l.Warn("Operation rejected", zap.String("operation", op), zap.String("code", string(appErr.Code)), zap.String("details", appErr.Details))
	return status.Error(appErr.GRPCCode(), appErr.Error())
}

func (s *Server) CreateReservation(ctx context.Context, req *CreateReservationRequest) (*CreateReservationResponse, error) {
	user := userFromContext(ctx)
	l := s.logger.With(zap.String("rpc_method", "CreateReservation"), zap.String("user_id", user), zap.Int64("store_id", req.StoreID))
	l.Debug("RPC call received")

	if user == "" {
		l.Warn("Validation failed: missing user id")
		metrics.OperationErrorsTotal.WithLabelValues("create_reservation").Inc()
		return nil, status.Error(codes.Unauthenticated, "missing "+userIDKey)
	}

	rng, err := repository.ParseDateRange(req.StorageDate, req.StorageEndDate)
	if err != nil {
		return nil, toStatus(l, "create_reservation", apperrors.NewInvalidRequest(err.Error()))
	}

	result, err := s.reservations.Create(ctx, reservation.CreateRequest{
		UserID:  user,
		StoreID: req.StoreID,
		Range:   rng,
		Window:  repository.TimeWindow{Start: req.StartTime, End: req.EndTime},
		Bags:    repository.BagCounts{Small: req.SmallBags, Medium: req.MediumBags, Large: req.LargeBags},
	})
	if err != nil {
		return nil, toStatus(l, "create_reservation", err)
	}

	res := result.Reservation
	l.Info("Reservation created", zap.String("reservation_number", res.ReservationNumber))
	return &CreateReservationResponse{
		ID:                res.ID,
		ReservationNumber: res.ReservationNumber,
		Status:            res.Status,
		TotalPrice:        res.TotalPrice,
		PickupToken:       result.PickupToken,
	}, nil
}

func (s *Server) CancelReservation(ctx context.Context, req *CancelReservationRequest) (*CancelReservationResponse, error) {
	user := userFromContext(ctx)
	l := s.logger.With(zap.String("rpc_method", "CancelReservation"), zap.String("user_id", user), zap.String("key", req.Key))
	l.Debug("RPC call received")

	if user == "" {
		metrics.OperationErrorsTotal.WithLabelValues("cancel_reservation").Inc()
		return nil, status.Error(codes.Unauthenticated, "missing "+userIDKey)
	}

	res, err := s.reservations.Get(ctx, req.Key)
	if err != nil {
		return nil, toStatus(l, "cancel_reservation", err)
	}
	if res.UserID != user {
		return nil, toStatus(l, "cancel_reservation", apperrors.NewNotFound("reservation", req.Key))
	}

	cancelled, err := s.reservations.Cancel(ctx, res.ReservationNumber)
	if err != nil {
		return nil, toStatus(l, "cancel_reservation", err)
	}

	l.Info("Reservation cancelled", zap.String("reservation_number", cancelled.ReservationNumber))
	return &CancelReservationResponse{ReservationNumber: cancelled.ReservationNumber, Status: cancelled.Status}, nil
}

func (s *Server) CheckIn(ctx context.Context, req *CheckInRequest) (*CheckInResponse, error) {
	l := s.logger.With(zap.String("rpc_method", "CheckIn"), zap.String("reservation_number", req.ReservationNumber))
	l.Debug("RPC call received", zap.Int("photos", len(req.Photos)))

	photos := make([]custody.Photo, 0, len(req.Photos))
	for _, p := range req.Photos {
		photos = append(photos, custody.Photo{Name: p.Name, Data: p.Data})
	}

	result, err := s.custody.CheckIn(ctx, custody.CheckInRequest{
		ReservationNumber: req.ReservationNumber,
		Actual:            repository.BagCounts{Small: req.SmallBags, Medium: req.MediumBags, Large: req.LargeBags},
		Notes:             req.Notes,
		Photos:            photos,
	})
	if err != nil {
		return nil, toStatus(l, "check_in", err)
	}

	l.Info("Luggage checked in", zap.String("storage_code", result.Item.StorageCode))
	return &CheckInResponse{
		StorageCode:  result.Item.StorageCode,
		QRPayload:    result.QRPayload,
		FailedPhotos: result.FailedPhotos,
	}, nil
}

func (s *Server) CheckOut(ctx context.Context, req *CheckOutRequest) (*CheckOutResponse, error) {
	l := s.logger.With(zap.String("rpc_method", "CheckOut"), zap.String("storage_code", req.StorageCode))
	l.Debug("RPC call received")

	item, err := s.custody.CheckOut(ctx, custody.CheckOutRequest{
		StorageCode:     req.StorageCode,
		CustomerName:    req.CustomerName,
		CustomerContact: req.CustomerContact,
		PickupToken:     req.PickupToken,
		Notes:           req.Notes,
	})
	if err != nil {
		return nil, toStatus(l, "check_out", err)
	}

	l.Info("Luggage checked out")
	return &CheckOutResponse{StorageCode: item.StorageCode, Status: item.Status, CheckOutTime: item.CheckOutTime}, nil
}

func (s *Server) GetStoreOccupancy(ctx context.Context, req *GetStoreOccupancyRequest) (*GetStoreOccupancyResponse, error) {
	l := s.logger.With(zap.String("rpc_method", "GetStoreOccupancy"), zap.Int64("store_id", req.StoreID))
	l.Debug("RPC call received")

	if req.StoreID <= 0 {
		metrics.OperationErrorsTotal.WithLabelValues("store_occupancy").Inc()
		return nil, status.Error(codes.InvalidArgument, "store_id is required")
	}

	occ, err := s.custody.Occupancy(ctx, req.StoreID)
	if err != nil {
		return nil, toStatus(l, "store_occupancy", err)
	}
	return &GetStoreOccupancyResponse{
		StoreID:   occ.StoreID,
		StoreName: occ.StoreName,
		ItemCount: occ.ItemCount,
		Bags:      occ.Bags,
		Items:     occ.Items,
	}, nil
}
