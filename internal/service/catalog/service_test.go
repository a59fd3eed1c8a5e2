package catalog

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/catalog/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetActiveByID(ctx context.Context, id int64) (*domain.Service, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListActive(ctx context.Context) ([]*domain.Service, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) ListAll(ctx context.Context) ([]*domain.Service, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Create(ctx context.Context, service *domain.Service) (*domain.Service, error) {
	args := m.Called(ctx, service)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Update(ctx context.Context, id int64, fields catalogRepo.UpdateFields) (*domain.Service, error) {
	args := m.Called(ctx, id, fields)
	if v := args.Get(0); v != nil {
		return v.(*domain.Service), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockCounter struct {
	mock.Mock
}

func (m *mockCounter) CountFutureConfirmedByService(ctx context.Context, serviceID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, serviceID, now)
	return args.Get(0).(int64), args.Error(1)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func haircut() *domain.Service {
	return &domain.Service{ID: 7, Name: "Corte", DurationMinutes: 30, PriceAmount: 12000, Active: true}
}

func newTestService(repo *mockRepo, counter *mockCounter) *Service {
	return NewService(repo, counter, fixedClock{now: testNow}, 0, logger.NewWithWriter(io.Discard, "error"))
}

func TestGetActiveService(t *testing.T) {
	ctx := context.Background()

	repo := &mockRepo{}
	repo.On("GetActiveByID", ctx, int64(7)).Return(haircut(), nil)
	repo.On("GetActiveByID", ctx, int64(8)).Return(nil, catalogRepo.ErrServiceNotFound)
	repo.On("GetActiveByID", ctx, int64(9)).Return(nil, errors.New("connection reset"))
	svc := newTestService(repo, &mockCounter{})

	resp, err := svc.GetActiveService(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), resp.ID)

	_, err = svc.GetActiveService(ctx, 8)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = svc.GetActiveService(ctx, 9)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid service is stored with trimmed name", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("Create", ctx, mock.MatchedBy(func(s *domain.Service) bool {
			return s.Name == "Corte" && s.DurationMinutes == 30 && s.PriceAmount == 12000
		})).Return(haircut(), nil)

		svc := newTestService(repo, &mockCounter{})
		resp, err := svc.Create(ctx, &models.CreateServiceRequest{Name: "  Corte ", DurationMinutes: 30, PriceAmount: 12000})

		require.NoError(t, err)
		assert.Equal(t, int64(7), resp.ID)
		assert.True(t, resp.Active)
		repo.AssertExpectations(t)
	})

	cases := []struct {
		name string
		req  models.CreateServiceRequest
		want error
	}{
		{"empty name", models.CreateServiceRequest{Name: "  ", DurationMinutes: 30, PriceAmount: 100}, domain.ErrInvalidServiceName},
		{"too short", models.CreateServiceRequest{Name: "Corte", DurationMinutes: 1, PriceAmount: 100}, domain.ErrInvalidDuration},
		{"too long", models.CreateServiceRequest{Name: "Corte", DurationMinutes: 600, PriceAmount: 100}, domain.ErrInvalidDuration},
		{"zero price", models.CreateServiceRequest{Name: "Corte", DurationMinutes: 30, PriceAmount: 0}, domain.ErrInvalidPrice},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockRepo{}
			svc := newTestService(repo, &mockCounter{})

			_, err := svc.Create(ctx, &tc.req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.ErrorIs(t, err, tc.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		repo := &mockRepo{}
		updated := haircut()
		updated.PriceAmount = 15000
		repo.On("GetByID", ctx, int64(7)).Return(haircut(), nil)
		repo.On("Update", ctx, int64(7), catalogRepo.UpdateFields{PriceAmount: ptr.Ptr(int64(15000))}).Return(updated, nil)

		svc := newTestService(repo, &mockCounter{})
		resp, err := svc.Update(ctx, 7, &models.UpdateServiceRequest{PriceAmount: ptr.Ptr(int64(15000))})

		require.NoError(t, err)
		assert.Equal(t, int64(15000), resp.PriceAmount)
		assert.Equal(t, "Corte", resp.Name)
		repo.AssertExpectations(t)
	})

	t.Run("resulting duration is validated", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(7)).Return(haircut(), nil)

		svc := newTestService(repo, &mockCounter{})
		_, err := svc.Update(ctx, 7, &models.UpdateServiceRequest{DurationMinutes: ptr.Ptr(0)})

		assert.ErrorIs(t, err, ErrInvalidInput)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(99)).Return(nil, catalogRepo.ErrServiceNotFound)

		svc := newTestService(repo, &mockCounter{})
		_, err := svc.Update(ctx, 99, &models.UpdateServiceRequest{Name: ptr.Ptr("Barba")})

		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()

	t.Run("future appointments deactivate", func(t *testing.T) {
		repo := &mockRepo{}
		counter := &mockCounter{}
		repo.On("GetByID", ctx, int64(7)).Return(haircut(), nil)
		counter.On("CountFutureConfirmedByService", ctx, int64(7), testNow).Return(int64(2), nil)
		repo.On("Deactivate", ctx, int64(7)).Return(nil)

		resp, err := newTestService(repo, counter).Remove(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, models.RemovedSoft, resp.Mode)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("no references delete", func(t *testing.T) {
		repo := &mockRepo{}
		counter := &mockCounter{}
		repo.On("GetByID", ctx, int64(7)).Return(haircut(), nil)
		counter.On("CountFutureConfirmedByService", ctx, int64(7), testNow).Return(int64(0), nil)
		repo.On("Delete", ctx, int64(7)).Return(nil)

		resp, err := newTestService(repo, counter).Remove(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, models.RemovedHard, resp.Mode)
		repo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)
	})

	t.Run("history blocks delete and falls back to deactivate", func(t *testing.T) {
		repo := &mockRepo{}
		counter := &mockCounter{}
		repo.On("GetByID", ctx, int64(7)).Return(haircut(), nil)
		counter.On("CountFutureConfirmedByService", ctx, int64(7), testNow).Return(int64(0), nil)
		repo.On("Delete", ctx, int64(7)).Return(catalogRepo.ErrServiceInUse)
		repo.On("Deactivate", ctx, int64(7)).Return(nil)

		resp, err := newTestService(repo, counter).Remove(ctx, 7)

		require.NoError(t, err)
		assert.Equal(t, models.RemovedSoft, resp.Mode)
		repo.AssertExpectations(t)
	})

	t.Run("unknown service", func(t *testing.T) {
		repo := &mockRepo{}
		repo.On("GetByID", ctx, int64(99)).Return(nil, catalogRepo.ErrServiceNotFound)

		_, err := newTestService(repo, &mockCounter{}).Remove(ctx, 99)

		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("counter failure is internal", func(t *testing.T) {
		repo := &mockRepo{}
		counter := &mockCounter{}
		repo.On("GetByID", ctx, int64(7)).Return(haircut(), nil)
		counter.On("CountFutureConfirmedByService", ctx, int64(7), testNow).Return(int64(0), errors.New("db down"))

		_, err := newTestService(repo, counter).Remove(ctx, 7)

		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestListActive(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepo{}
	repo.On("ListActive", ctx).Return([]*domain.Service{haircut()}, nil)

	resp, err := newTestService(repo, &mockCounter{}).ListActive(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "Corte", resp.Services[0].Name)
}

func TestQueryTimeoutBoundsRepositoryCalls(t *testing.T) {
	repo := &mockRepo{}
	repo.On("ListActive", mock.Anything).
		Run(func(args mock.Arguments) { <-args.Get(0).(context.Context).Done() }).
		Return(nil, context.DeadlineExceeded)
	svc := NewService(repo, &mockCounter{}, fixedClock{now: testNow}, 20*time.Millisecond, logger.NewWithWriter(io.Discard, "error"))

	started := time.Now()
	_, err := svc.ListActive(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
	assert.Less(t, time.Since(started), 2*time.Second)
}
