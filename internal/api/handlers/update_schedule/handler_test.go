package update_schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule"
	"github.com/m04kA/SMC-BarberBooking/internal/service/schedule/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpsertTemplate(ctx context.Context, entries []domain.WeeklyScheduleEntry) ([]domain.WeeklyScheduleEntry, error) {
	args := m.Called(ctx, entries)
	resp, _ := args.Get(0).([]domain.WeeklyScheduleEntry)
	return resp, args.Error(1)
}

func (m *mockService) ApplyUniformHours(ctx context.Context, req *models.UniformHoursRequest) ([]domain.WeeklyScheduleEntry, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).([]domain.WeeklyScheduleEntry)
	return resp, args.Error(1)
}

func put(handle http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/schedule", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handle(rec, req)
	return rec
}

func TestHandle_ParsesNumericAndNamedDays(t *testing.T) {
	svc := &mockService{}
	svc.On("UpsertTemplate", mock.Anything, mock.MatchedBy(func(entries []domain.WeeklyScheduleEntry) bool {
		return len(entries) == 2 &&
			entries[0].Weekday == domain.Sunday && !entries[0].IsWorkingDay &&
			entries[1].Weekday == domain.Monday && entries[1].IsWorkingDay &&
			*entries[1].OpenTime == types.MustTimeString("10:00") &&
			*entries[1].CloseTime == types.MustTimeString("19:00")
	})).Return(nil, fmt.Errorf("%w: got 2 entries", schedule.ErrInvalidTemplate))

	h := NewHandler(svc, logger.NewNop())
	rec := put(h.Handle, `{"days":[
		{"weekday":0,"isWorkingDay":false},
		{"day":"Lunes","isWorkingDay":true,"openTime":"10:00","closeTime":"19:00"}
	]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_ReturnsTemplate(t *testing.T) {
	template := make([]domain.WeeklyScheduleEntry, 0, domain.DaysPerWeek)
	for _, w := range domain.AllWeekdays() {
		template = append(template, domain.NonWorkingEntry(w))
	}

	svc := &mockService{}
	svc.On("UpsertTemplate", mock.Anything, mock.Anything).Return(template, nil)

	h := NewHandler(svc, logger.NewNop())
	body := `{"days":[` + strings.Repeat(`{"weekday":0},`, 6) + `{"weekday":0}]}`
	rec := put(h.Handle, body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"days":[`)
}

func TestHandle_InvalidWeekday(t *testing.T) {
	svc := &mockService{}
	h := NewHandler(svc, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest, put(h.Handle, `{"days":[{"weekday":7}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(h.Handle, `{"days":[{"day":"funday"}]}`).Code)
	assert.Equal(t, http.StatusBadRequest, put(h.Handle, `{"days":[{"isWorkingDay":true}]}`).Code)
	svc.AssertNotCalled(t, "UpsertTemplate", mock.Anything, mock.Anything)
}

func TestHandle_InvalidEntry(t *testing.T) {
	svc := &mockService{}
	svc.On("UpsertTemplate", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", schedule.ErrInvalidEntry, domain.ErrCloseNotAfterOpen))

	h := NewHandler(svc, logger.NewNop())
	rec := put(h.Handle, `{"days":[{"weekday":1,"isWorkingDay":true,"openTime":"19:00","closeTime":"10:00"}]}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidEntry)
}

func TestHandleUniform(t *testing.T) {
	svc := &mockService{}
	svc.On("ApplyUniformHours", mock.Anything, &models.UniformHoursRequest{
		WorkingDays: []domain.Weekday{domain.Monday, domain.Wednesday, domain.Saturday},
		OpenTime:    types.MustTimeString("10:00"),
		CloseTime:   types.MustTimeString("19:00"),
	}).Return([]domain.WeeklyScheduleEntry{}, nil)

	h := NewHandler(svc, logger.NewNop())
	rec := put(h.HandleUniform, `{"workingDays":["lunes","Miércoles","SABADO"],"openTime":"10:00","closeTime":"19:00"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)

	rec = put(h.HandleUniform, `{"workingDays":["monday"],"openTime":"10:00","closeTime":"19:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
