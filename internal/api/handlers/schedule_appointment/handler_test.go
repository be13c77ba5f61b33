package schedule_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scheduleAppointment "github.com/luminahealth/LMH-SchedulingService/internal/usecase/schedule_appointment"
)

type testLogger struct{}

func (testLogger) Info(string, ...interface{})  {}
func (testLogger) Warn(string, ...interface{})  {}
func (testLogger) Error(string, ...interface{}) {}

type stubUseCase struct {
	resp *scheduleAppointment.Response
	err  error
}

func (s *stubUseCase) Execute(context.Context, *scheduleAppointment.Request) (*scheduleAppointment.Response, error) {
	return s.resp, s.err
}

func doRequest(t *testing.T, uc ScheduleAppointmentUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, testLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

const validBody = `{"patientName":"Jordan Rivers","patientPhone":"555-0175","appointmentType":"Follow-up","date":"2026-01-05","time":"10:00"}`

func TestHandleCreated(t *testing.T) {
	uc := &stubUseCase{resp: &scheduleAppointment.Response{
		ID:              "apt-123",
		PatientName:     "Jordan Rivers",
		AppointmentType: "Follow-up",
		Date:            "2026-01-05",
		Time:            "10:00",
		Status:          "scheduled",
		CreatedAt:       time.Now(),
	}}

	rec := doRequest(t, uc, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "apt-123", resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", scheduleAppointment.ErrValidation, http.StatusBadRequest},
		{"bad time", scheduleAppointment.ErrInvalidTimeFormat, http.StatusBadRequest},
		{"bad date", scheduleAppointment.ErrInvalidDate, http.StatusBadRequest},
		{"bad timezone", scheduleAppointment.ErrInvalidTimezone, http.StatusBadRequest},
		{"outside hours", scheduleAppointment.ErrOutsideBusinessHours, http.StatusBadRequest},
		{"slot taken", scheduleAppointment.ErrSlotUnavailable, http.StatusConflict},
		{"internal", scheduleAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandleRejectsMalformedBody(t *testing.T) {
	rec := doRequest(t, &stubUseCase{}, `{"patientName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, &stubUseCase{}, `{"unknownField":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
