package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	getAvailability "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*getAvailability.Response)
	return resp, args.Error(1)
}

func get(uc *mockUseCase, query string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OpenDay(t *testing.T) {
	clt := time.FixedZone("CLT", -3*60*60)
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, clt)
	at := func(h int) time.Time { return time.Date(2025, 3, 10, h, 0, 0, 0, clt) }

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &getAvailability.Request{Date: "2025-03-10", ServiceID: 1}).
		Return(&getAvailability.Response{
			Date:    date,
			Service: &domain.Service{ID: 1, Name: "Corte", DurationMinutes: 60},
			Availability: getAvailability.Availability{
				IsOpen: true,
				Open:   ptr.Ptr(types.MustTimeString("10:00")),
				Close:  ptr.Ptr(types.MustTimeString("19:00")),
				Break: &getAvailability.BreakWindow{
					Start: types.MustTimeString("14:00"),
					End:   types.MustTimeString("15:00"),
				},
				Slots: []getAvailability.Slot{
					{Time: types.MustTimeString("10:00"), StartAt: at(10), EndAt: at(11), Available: true},
					{Time: types.MustTimeString("11:00"), StartAt: at(11), EndAt: at(12), Reason: getAvailability.ReasonBooked},
				},
			},
		}, nil)

	rec := get(uc, "date=2025-03-10&serviceId=1")

	require.Equal(t, http.StatusOK, rec.Code)
	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2025-03-10", body.Date)
	assert.True(t, body.IsOpen)
	assert.Equal(t, "10:00", *body.Open)
	assert.Equal(t, "19:00", *body.Close)
	assert.Equal(t, &BreakResponse{Start: "14:00", End: "15:00"}, body.Break)
	require.Len(t, body.Slots, 2)
	assert.Equal(t, SlotResponse{
		Time: "10:00", StartAt: "2025-03-10T10:00:00-03:00", EndAt: "2025-03-10T11:00:00-03:00", Available: true,
	}, body.Slots[0])
	assert.Equal(t, "booked", body.Slots[1].Reason)
	assert.False(t, body.Slots[1].Available)
}

func TestHandle_ClosedDayHasEmptySlots(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).Return(&getAvailability.Response{
		Date:    time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		Service: &domain.Service{ID: 1, DurationMinutes: 60},
	}, nil)

	rec := get(uc, "date=2025-03-09&serviceId=1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-03-09","serviceId":1,"durationMinutes":60,"isOpen":false,"slots":[]}`, rec.Body.String())
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		err    error
		status int
		code   string
	}{
		{"missing service", "date=2025-03-10", nil, http.StatusBadRequest, handlers.CodeBadRequest},
		{"missing date", "serviceId=1", nil, http.StatusBadRequest, handlers.CodeBadRequest},
		{"service not found", "date=2025-03-10&serviceId=9", getAvailability.ErrServiceNotFound, http.StatusNotFound, handlers.CodeNotFound},
		{"invalid date", "date=10-03-2025&serviceId=1", getAvailability.ErrInvalidDate, http.StatusBadRequest, "invalid_date"},
		{"internal", "date=2025-03-10&serviceId=1", getAvailability.ErrInternal, http.StatusInternalServerError, handlers.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.err != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			rec := get(uc, tt.query)

			assert.Equal(t, tt.status, rec.Code)
			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			uc.AssertExpectations(t)
		})
	}
}
