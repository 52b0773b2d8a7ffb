package grpcserver_test

import (
	"context"
	"encoding/base64"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/custody"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/grpcserver"
	mock_grpcserver "gitlab.ozon.dev/pupkingeorgij/luggage/internal/grpcserver/mocks"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/luggage/internal/reservation"
)

type fixture struct {
	reservations *mock_grpcserver.MockReservations
	custody      *mock_grpcserver.MockCustody
	auth         *mock_grpcserver.MockStaffAuth
	client       *grpcserver.Client
}

func setup(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		reservations: mock_grpcserver.NewMockReservations(ctrl),
		custody:      mock_grpcserver.NewMockCustody(ctrl),
		auth:         mock_grpcserver.NewMockStaffAuth(ctrl),
	}

	lis := bufconn.Listen(1 << 20)
	srv := grpcserver.NewServer(f.reservations, f.custody, f.auth, zap.NewNop()).NewGRPCServer()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	f.client = grpcserver.NewClient(conn)
	return f
}

func customerCtx(t *testing.T, user string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return metadata.AppendToOutgoingContext(ctx, "x-user-id", user)
}

func staffCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	creds := base64.StdEncoding.EncodeToString([]byte("clerk:secret"))
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Basic "+creds)
}

func TestCreateReservation(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setup(t)
		f.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req reservation.CreateRequest) (*reservation.CreateResult, error) {
				assert.Equal(t, "u-1", req.UserID)
				assert.Equal(t, int64(7), req.StoreID)
				assert.Equal(t, repository.BagCounts{Small: 1, Large: 2}, req.Bags)
				assert.Equal(t, "2024-06-01", repository.FormatDate(req.Range.Start))
				assert.Equal(t, "2024-06-02", repository.FormatDate(req.Range.End))
				return &reservation.CreateResult{
					Reservation: &repository.Reservation{ID: 3, ReservationNumber: "R-20240601-AAAAAAAA", Status: repository.StatusReserved, TotalPrice: 4000},
					PickupToken: "tok",
				}, nil
			})

		resp, err := f.client.CreateReservation(customerCtx(t, "u-1"), &grpcserver.CreateReservationRequest{
			StoreID:        7,
			StorageDate:    "2024-06-01",
			StorageEndDate: "2024-06-02",
			StartTime:      repository.TimeOfDay(9 * 60),
			EndTime:        repository.TimeOfDay(18 * 60),
			SmallBags:      1,
			LargeBags:      2,
		})
		require.NoError(t, err)
		assert.Equal(t, "R-20240601-AAAAAAAA", resp.ReservationNumber)
		assert.Equal(t, repository.StatusReserved, resp.Status)
		assert.Equal(t, int64(4000), resp.TotalPrice)
		assert.Equal(t, "tok", resp.PickupToken)
	})

	t.Run("missing user", func(t *testing.T) {
		f := setup(t)
		_, err := f.client.CreateReservation(context.Background(), &grpcserver.CreateReservationRequest{StoreID: 7})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("bad date", func(t *testing.T) {
		f := setup(t)
		_, err := f.client.CreateReservation(customerCtx(t, "u-1"), &grpcserver.CreateReservationRequest{StoreID: 7, StorageDate: "06/01/2024"})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("capacity exceeded", func(t *testing.T) {
		f := setup(t)
		f.reservations.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewCapacityExceeded("2024-06-01", "large", 9, 2, 10))

		_, err := f.client.CreateReservation(customerCtx(t, "u-1"), &grpcserver.CreateReservationRequest{
			StoreID: 7, StorageDate: "2024-06-01", StorageEndDate: "2024-06-01", LargeBags: 2,
		})
		assert.Equal(t, codes.ResourceExhausted, status.Code(err))
	})
}

func TestCancelReservation(t *testing.T) {
	own := &repository.Reservation{ID: 3, ReservationNumber: "R-20240601-AAAAAAAA", UserID: "u-1", Status: repository.StatusReserved}

	t.Run("owner", func(t *testing.T) {
		f := setup(t)
		f.reservations.EXPECT().Get(gomock.Any(), "3").Return(own, nil)
		f.reservations.EXPECT().Cancel(gomock.Any(), own.ReservationNumber).
			Return(&repository.Reservation{ReservationNumber: own.ReservationNumber, Status: repository.StatusCancelled}, nil)

		resp, err := f.client.CancelReservation(customerCtx(t, "u-1"), &grpcserver.CancelReservationRequest{Key: "3"})
		require.NoError(t, err)
		assert.Equal(t, repository.StatusCancelled, resp.Status)
	})

	t.Run("someone else", func(t *testing.T) {
		f := setup(t)
		f.reservations.EXPECT().Get(gomock.Any(), "3").Return(own, nil)

		_, err := f.client.CancelReservation(customerCtx(t, "u-2"), &grpcserver.CancelReservationRequest{Key: "3"})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("internal error is hidden", func(t *testing.T) {
		f := setup(t)
		f.reservations.EXPECT().Get(gomock.Any(), "3").Return(own, nil)
		f.reservations.EXPECT().Cancel(gomock.Any(), own.ReservationNumber).Return(nil, assert.AnError)

		_, err := f.client.CancelReservation(customerCtx(t, "u-1"), &grpcserver.CancelReservationRequest{Key: "3"})
		st, ok := status.FromError(err)
		require.True(t, ok)
		assert.Equal(t, codes.Internal, st.Code())
		assert.Equal(t, "internal error", st.Message())
	})
}

func TestStaffAuth(t *testing.T) {
	t.Run("no credentials", func(t *testing.T) {
		f := setup(t)
		_, err := f.client.GetStoreOccupancy(context.Background(), &grpcserver.GetStoreOccupancyRequest{StoreID: 7})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("wrong password", func(t *testing.T) {
		f := setup(t)
		f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(false, nil)
		_, err := f.client.CheckOut(staffCtx(t), &grpcserver.CheckOutRequest{StorageCode: "ABC"})
		assert.Equal(t, codes.Unauthenticated, status.Code(err))
	})

	t.Run("validation failure", func(t *testing.T) {
		f := setup(t)
		f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(false, assert.AnError)
		_, err := f.client.CheckIn(staffCtx(t), &grpcserver.CheckInRequest{ReservationNumber: "R-1"})
		assert.Equal(t, codes.Internal, status.Code(err))
	})
}

func TestCheckIn(t *testing.T) {
	f := setup(t)
	f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(true, nil)
	f.custody.EXPECT().CheckIn(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req custody.CheckInRequest) (*custody.CheckInResult, error) {
			assert.Equal(t, "R-20240601-AAAAAAAA", req.ReservationNumber)
			assert.Equal(t, repository.BagCounts{Medium: 1}, req.Actual)
			require.Len(t, req.Photos, 1)
			assert.Equal(t, []byte{0xff, 0xd8}, req.Photos[0].Data)
			return &custody.CheckInResult{
				Item:              &repository.StorageItem{StorageCode: "ABCDEFGHJK123456"},
				ReservationNumber: req.ReservationNumber,
				QRPayload:         custody.QRPayload("ABCDEFGHJK123456"),
				FailedPhotos:      1,
			}, nil
		})

	resp, err := f.client.CheckIn(staffCtx(t), &grpcserver.CheckInRequest{
		ReservationNumber: "R-20240601-AAAAAAAA",
		MediumBags:        1,
		Photos:            []grpcserver.Photo{{Name: "a.jpg", Data: []byte{0xff, 0xd8}}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHJK123456", resp.StorageCode)
	assert.Equal(t, "luggage://storage/ABCDEFGHJK123456", resp.QRPayload)
	assert.Equal(t, 1, resp.FailedPhotos)
}

func TestCheckOut(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "identity mismatch", err: apperrors.NewIdentityMismatch(), code: codes.PermissionDenied},
		{name: "already checked out", err: apperrors.NewAlreadyCheckedOut("ABC"), code: codes.AlreadyExists},
		{name: "unknown code", err: apperrors.NewNotFound("storage item", "ABC"), code: codes.NotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(true, nil)
			f.custody.EXPECT().CheckOut(gomock.Any(), custody.CheckOutRequest{StorageCode: "ABC", CustomerName: "Ann", CustomerContact: "+100"}).
				Return(nil, tt.err)

			_, err := f.client.CheckOut(staffCtx(t), &grpcserver.CheckOutRequest{StorageCode: "ABC", CustomerName: "Ann", CustomerContact: "+100"})
			assert.Equal(t, tt.code, status.Code(err))
		})
	}

	t.Run("success", func(t *testing.T) {
		f := setup(t)
		out := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
		f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(true, nil)
		f.custody.EXPECT().CheckOut(gomock.Any(), gomock.Any()).
			Return(&repository.StorageItem{StorageCode: "ABC", Status: repository.StorageRetrieved, CheckOutTime: &out}, nil)

		resp, err := f.client.CheckOut(staffCtx(t), &grpcserver.CheckOutRequest{StorageCode: "ABC", PickupToken: "tok"})
		require.NoError(t, err)
		assert.Equal(t, repository.StorageRetrieved, resp.Status)
		require.NotNil(t, resp.CheckOutTime)
		assert.True(t, out.Equal(*resp.CheckOutTime))
	})
}

func TestGetStoreOccupancy(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := setup(t)
		f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(true, nil)
		f.custody.EXPECT().Occupancy(gomock.Any(), int64(7)).Return(&custody.Occupancy{
			StoreID:   7,
			StoreName: "Central",
			ItemCount: 1,
			Bags:      repository.BagCounts{Small: 2},
			Items:     []*repository.OccupancyItem{{StorageCode: "ABC", ActualSmallBags: 2}},
		}, nil)

		resp, err := f.client.GetStoreOccupancy(staffCtx(t), &grpcserver.GetStoreOccupancyRequest{StoreID: 7})
		require.NoError(t, err)
		assert.Equal(t, "Central", resp.StoreName)
		assert.Equal(t, 1, resp.ItemCount)
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].ActualSmallBags)
	})

	t.Run("unknown store", func(t *testing.T) {
		f := setup(t)
		f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(true, nil)
		f.custody.EXPECT().Occupancy(gomock.Any(), int64(8)).Return(nil, apperrors.NewStoreNotFound(8))

		_, err := f.client.GetStoreOccupancy(staffCtx(t), &grpcserver.GetStoreOccupancyRequest{StoreID: 8})
		assert.Equal(t, codes.NotFound, status.Code(err))
	})

	t.Run("missing id", func(t *testing.T) {
		f := setup(t)
		f.auth.EXPECT().ValidateUser(gomock.Any(), "clerk", "secret").Return(true, nil)
		_, err := f.client.GetStoreOccupancy(staffCtx(t), &grpcserver.GetStoreOccupancyRequest{})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}
