package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/piresc/shuttlefleet/internal/pkg/models"
	"github.com/piresc/shuttlefleet/internal/pkg/scheduler"
	"github.com/piresc/shuttlefleet/services/fleet"
	"github.com/piresc/shuttlefleet/services/fleet/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, "/", reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestNewFleetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFleetUC := mocks.NewMockFleetUC(ctrl)
	handler := NewFleetHandler(mockFleetUC)

	assert.NotNil(t, handler)
	assert.Equal(t, mockFleetUC, handler.fleetUC)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &fleet.ValidationError{Field: "guest_name", Reason: "is required"}, http.StatusBadRequest},
		{"invalid transition", &fleet.InvalidTransition{RideID: "r1", Op: "start", From: models.RideStatusPending}, http.StatusConflict},
		{"no vehicle available", fleet.ErrNoVehicleAvailable, http.StatusConflict},
		{"no vehicles", fleet.ErrNoVehicles, http.StatusConflict},
		{"already rated", fleet.ErrAlreadyRated, http.StatusConflict},
		{"already resolved", fleet.ErrAlreadyResolved, http.StatusConflict},
		{"simulation running", fleet.ErrSimulationRunning, http.StatusConflict},
		{"wrapped not found", errors.Join(errors.New("ride r9"), fleet.ErrNotFound), http.StatusNotFound},
		{"access expired", fleet.ErrAccessExpired, http.StatusGone},
		{"no actor", fleet.ErrNoActor, http.StatusUnauthorized},
		{"network", &fleet.NetworkError{Attempts: 4, Cause: errors.New("timeout")}, http.StatusServiceUnavailable},
		{"loop stopped", scheduler.ErrStopped, http.StatusServiceUnavailable},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestFleetHandler_GetSimulation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFleetUC := mocks.NewMockFleetUC(ctrl)
	handler := NewFleetHandler(mockFleetUC)

	mockFleetUC.EXPECT().State().Return(models.SimulationState{IsActive: true, TimeRemaining: 1200})

	c, rec := newContext(http.MethodGet, "")
	err := handler.GetSimulation(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	var state models.SimulationState
	decodeData(t, rec, &state)
	assert.True(t, state.IsActive)
	assert.Equal(t, 1200, state.TimeRemaining)
}

func TestFleetHandler_StartSimulation(t *testing.T) {
	tests := []struct {
		name     string
		startErr error
		wantCode int
	}{
		{"started", nil, http.StatusOK},
		{"empty fleet", fleet.ErrNoVehicles, http.StatusConflict},
		{"already running", fleet.ErrSimulationRunning, http.StatusConflict},
		{"loop closed", scheduler.ErrStopped, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFleetUC := mocks.NewMockFleetUC(ctrl)
			handler := NewFleetHandler(mockFleetUC)

			mockFleetUC.EXPECT().Start(gomock.Any()).Return(tt.startErr)
			if tt.startErr == nil {
				mockFleetUC.EXPECT().State().Return(models.SimulationState{IsActive: true})
			}

			c, rec := newContext(http.MethodPost, "")
			err := handler.StartSimulation(c)

			require.NoError(t, err)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestFleetHandler_StopSimulation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFleetUC := mocks.NewMockFleetUC(ctrl)
	handler := NewFleetHandler(mockFleetUC)

	mockFleetUC.EXPECT().Stop(gomock.Any()).Return(nil)
	mockFleetUC.EXPECT().State().Return(models.SimulationState{})

	c, rec := newContext(http.MethodPost, "")
	require.NoError(t, handler.StopSimulation(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFleetHandler_RefreshSimulation(t *testing.T) {
	tests := []struct {
		name       string
		refreshErr error
		wantCode   int
	}{
		{"refreshed", nil, http.StatusOK},
		{"no actor", fleet.ErrNoActor, http.StatusUnauthorized},
		{"network", &fleet.NetworkError{Attempts: 1, Cause: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{"store error", errors.New("fetch rides: boom"), http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFleetUC := mocks.NewMockFleetUC(ctrl)
			handler := NewFleetHandler(mockFleetUC)

			mockFleetUC.EXPECT().Refresh(gomock.Any()).Return(tt.refreshErr)
			if tt.refreshErr == nil {
				mockFleetUC.EXPECT().State().Return(models.SimulationState{})
			}

			c, rec := newContext(http.MethodPost, "")
			require.NoError(t, handler.RefreshSimulation(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestFleetHandler_CreateRide(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFleetUC := mocks.NewMockFleetUC(ctrl)
		handler := NewFleetHandler(mockFleetUC)

		expectedReq := models.CreateRideRequest{
			GuestName:      "Ada Lovelace",
			GuestRoom:      "1204",
			PickupLocation: "hotel",
			Destination:    "galleria",
		}
		mockFleetUC.EXPECT().
			CreateRide(gomock.Any(), expectedReq).
			Return(&models.Ride{ID: "r1", Status: models.RideStatusPending}, nil)

		body := `{"guest_name":"Ada Lovelace","guest_room":"1204","pickup_location":"hotel","destination":"galleria"}`
		c, rec := newContext(http.MethodPost, body)
		require.NoError(t, handler.CreateRide(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var ride models.Ride
		decodeData(t, rec, &ride)
		assert.Equal(t, "r1", ride.ID)
	})

	t.Run("validation error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockFleetUC := mocks.NewMockFleetUC(ctrl)
		handler := NewFleetHandler(mockFleetUC)

		mockFleetUC.EXPECT().
			CreateRide(gomock.Any(), gomock.Any()).
			Return(nil, &fleet.ValidationError{Field: "destination", Reason: "trip must start or end at the hotel"})

		c, rec := newContext(http.MethodPost, `{"guest_name":"Ada","pickup_location":"galleria","destination":"rice-village"}`)
		require.NoError(t, handler.CreateRide(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "trip must start or end at the hotel")
	})

	t.Run("malformed body", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		handler := NewFleetHandler(mocks.NewMockFleetUC(ctrl))

		c, rec := newContext(http.MethodPost, `{"guest_name":`)
		require.NoError(t, handler.CreateRide(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestFleetHandler_AssignRide(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		vehicleID string
		ride      *models.Ride
		err       error
		wantCode  int
	}{
		{
			name:      "explicit vehicle",
			body:      `{"vehicle_id":"v2"}`,
			vehicleID: "v2",
			ride:      &models.Ride{ID: "r1", Status: models.RideStatusAssigned, VehicleNumber: "V2"},
			wantCode:  http.StatusOK,
		},
		{
			name:     "policy choice without body",
			ride:     &models.Ride{ID: "r1", Status: models.RideStatusAssigned, VehicleNumber: "V1"},
			wantCode: http.StatusOK,
		},
		{
			name:     "nothing free",
			err:      fleet.ErrNoVehicleAvailable,
			wantCode: http.StatusConflict,
		},
		{
			name:      "unknown ride",
			body:      `{"vehicle_id":"v1"}`,
			vehicleID: "v1",
			err:       fleet.ErrNotFound,
			wantCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFleetUC := mocks.NewMockFleetUC(ctrl)
			handler := NewFleetHandler(mockFleetUC)

			mockFleetUC.EXPECT().AssignRide(gomock.Any(), "r1", tt.vehicleID).Return(tt.ride, tt.err)

			c, rec := newContext(http.MethodPost, tt.body)
			c.SetParamNames("id")
			c.SetParamValues("r1")

			require.NoError(t, handler.AssignRide(c))
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestFleetHandler_RideTransitions(t *testing.T) {
	notStarted := &fleet.InvalidTransition{RideID: "r1", Op: "complete", From: models.RideStatusPending}

	tests := []struct {
		name     string
		call     func(h *FleetHandler, c echo.Context) error
		expect   func(m *mocks.MockFleetUC) *gomock.Call
		ride     *models.Ride
		err      error
		wantCode int
	}{
		{
			name:     "start",
			call:     (*FleetHandler).StartRide,
			expect:   func(m *mocks.MockFleetUC) *gomock.Call { return m.EXPECT().StartRide(gomock.Any(), "r1") },
			ride:     &models.Ride{ID: "r1", Status: models.RideStatusInProgress},
			wantCode: http.StatusOK,
		},
		{
			name:     "complete from pending",
			call:     (*FleetHandler).CompleteRide,
			expect:   func(m *mocks.MockFleetUC) *gomock.Call { return m.EXPECT().CompleteRide(gomock.Any(), "r1") },
			err:      notStarted,
			wantCode: http.StatusConflict,
		},
		{
			name:     "cancel",
			call:     (*FleetHandler).CancelRide,
			expect:   func(m *mocks.MockFleetUC) *gomock.Call { return m.EXPECT().CancelRide(gomock.Any(), "r1") },
			ride:     &models.Ride{ID: "r1", Status: models.RideStatusCancelled},
			wantCode: http.StatusOK,
		},
		{
			name:     "store failure",
			call:     (*FleetHandler).CancelRide,
			expect:   func(m *mocks.MockFleetUC) *gomock.Call { return m.EXPECT().CancelRide(gomock.Any(), "r1") },
			err:      errors.New("update ride: connection reset"),
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockFleetUC := mocks.NewMockFleetUC(ctrl)
			handler := NewFleetHandler(mockFleetUC)
			tt.expect(mockFleetUC).Return(tt.ride, tt.err)

			c, rec := newContext(http.MethodPost, "")
			c.SetParamNames("id")
			c.SetParamValues("r1")

			require.NoError(t, tt.call(handler, c))
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusInternalServerError {
				assert.NotContains(t, rec.Body.String(), "connection reset")
			}
		})
	}
}

func TestFleetHandler_MissingRideID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewFleetHandler(mocks.NewMockFleetUC(ctrl))

	c, rec := newContext(http.MethodPost, "")
	require.NoError(t, handler.StartRide(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFleetHandler_Alerts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockFleetUC := mocks.NewMockFleetUC(ctrl)
	handler := NewFleetHandler(mockFleetUC)

	// Arrange
	mockFleetUC.EXPECT().
		CreateAlert(gomock.Any(), models.CreateAlertRequest{AlertType: models.AlertTypeBreakdown, Message: "flat tyre", VehicleNumber: "V3"}).
		Return(&models.EmergencyAlert{ID: "a1", AlertType: models.AlertTypeBreakdown, Status: models.AlertStatusActive}, nil)
	mockFleetUC.EXPECT().ResolveAlert(gomock.Any(), "a1").
		Return(&models.EmergencyAlert{ID: "a1", Status: models.AlertStatusResolved}, nil)
	mockFleetUC.EXPECT().ResolveAlert(gomock.Any(), "a1").Return(nil, fleet.ErrAlreadyResolved)

	// Act
	c, rec := newContext(http.MethodPost, `{"alert_type":"breakdown","message":"flat tyre","vehicle_number":"V3"}`)
	require.NoError(t, handler.CreateAlert(c))

	resolveCtx, resolveRec := newContext(http.MethodPost, "")
	resolveCtx.SetParamNames("id")
	resolveCtx.SetParamValues("a1")
	require.NoError(t, handler.ResolveAlert(resolveCtx))

	againCtx, againRec := newContext(http.MethodPost, "")
	againCtx.SetParamNames("id")
	againCtx.SetParamValues("a1")
	require.NoError(t, handler.ResolveAlert(againCtx))

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, http.StatusOK, resolveRec.Code)
	assert.Equal(t, http.StatusConflict, againRec.Code)
	assert.True(t, strings.Contains(againRec.Body.String(), fleet.ErrAlreadyResolved.Error()))
}
