package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"clinicapi/internal/model"
	"clinicapi/internal/service"
	serviceMocks "clinicapi/internal/service/mocks"
)

func TestAuthHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockAuthService)
	app := newApp()
	app.Post("/api/auth/register", Register(mockSvc))
	app.Post("/api/auth/login", Login(mockSvc))

	tests := []struct {
		name       string
		target     string
		body       map[string]string
		setupMocks func()
		wantStatus int
		wantCode   string
	}{
		{
			name:   "register",
			target: "/api/auth/register",
			body:   map[string]string{"name": "Dr A", "email": "a@clinic.test", "password": "pw"},
			setupMocks: func() {
				mockSvc.On("Register", mock.Anything, "Dr A", "a@clinic.test", "pw").Return(int64(1), nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "register duplicate",
			target: "/api/auth/register",
			body:   map[string]string{"name": "Dr A", "email": "a@clinic.test", "password": "pw"},
			setupMocks: func() {
				mockSvc.On("Register", mock.Anything, "Dr A", "a@clinic.test", "pw").Return(int64(0), service.ErrEmailTaken).Once()
			},
			wantStatus: http.StatusConflict,
			wantCode:   "CONFLICT",
		},
		{
			name:   "login",
			target: "/api/auth/login",
			body:   map[string]string{"email": "a@clinic.test", "password": "pw"},
			setupMocks: func() {
				mockSvc.On("Login", mock.Anything, "a@clinic.test", "pw").Return("jwt", nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "login wrong password",
			target: "/api/auth/login",
			body:   map[string]string{"email": "a@clinic.test", "password": "nope"},
			setupMocks: func() {
				mockSvc.On("Login", mock.Anything, "a@clinic.test", "nope").Return("", service.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHORIZED",
		},
		{
			name:   "login unknown user",
			target: "/api/auth/login",
			body:   map[string]string{"email": "x@clinic.test", "password": "pw"},
			setupMocks: func() {
				mockSvc.On("Login", mock.Anything, "x@clinic.test", "pw").Return("", service.ErrUserNotFound).Once()
			},
			wantStatus: http.StatusNotFound,
			wantCode:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMocks()
			resp, err := app.Test(jsonRequest(http.MethodPost, tt.target, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			}
		})
	}
	mockSvc.AssertExpectations(t)
}

func TestPatientHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockPatientService)
	app := newApp()
	app.Get("/patient", ListPatients(mockSvc))
	app.Post("/patient", CreatePatient(mockSvc))
	app.Get("/patient/id/:id", GetPatientByID(mockSvc))
	app.Get("/patient/name/:name", GetPatientByName(mockSvc))
	app.Put("/patient/:id", UpdatePatient(mockSvc))
	app.Delete("/patient/:id", DeletePatient(mockSvc))

	lina := model.Patient{Name: "Lina", CreationDate: "2024-01-01", Sex: "F", DateOfBirth: "2019-03-02"}

	t.Run("create", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, testUser, lina).Return(int64(9), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/patient", lina))
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var res map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, float64(9), res["id"])
	})

	t.Run("create validation", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, testUser, model.Patient{}).
			Return(int64(0), service.ErrInvalidInput).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/patient", map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})

	t.Run("get by id", func(t *testing.T) {
		mockSvc.On("GetByID", mock.Anything, testUser, int64(9)).Return(&model.Patient{ID: 9, Name: "Lina"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/patient/id/9", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("get by id not found", func(t *testing.T) {
		mockSvc.On("GetByID", mock.Anything, testUser, int64(10)).Return(nil, service.ErrPatientNotFound).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/patient/id/10", nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "patient not found", decodeError(t, resp).Error.Message)
	})

	t.Run("get by name", func(t *testing.T) {
		mockSvc.On("GetByName", mock.Anything, testUser, "Lina").Return(&model.Patient{ID: 9, Name: "Lina"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/patient/name/Lina", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("list", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, testUser).Return([]model.Patient{{ID: 9}}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/patient", nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("update", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, testUser, int64(9), lina).Return(nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/patient/9", lina))
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("duplicate name on update", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, testUser, int64(8), lina).Return(service.ErrPatientExists).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/patient/8", lina))
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("delete", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, testUser, int64(9)).Return(nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/patient/9", nil))
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("delete invalid id", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/patient/-3", nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	mockSvc.AssertExpectations(t)
}

func TestClinicalHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockClinicalService)
	app := newApp()
	app.Post("/patient/:patientId/visits", AddVisit(mockSvc))
	app.Get("/patient/:patientId/visits", ListVisits(mockSvc))
	app.Post("/patient/:patientId/medications", AddMedication(mockSvc))
	app.Get("/patient/:patientId/medications", ListMedications(mockSvc))
	app.Get("/patient/:patientId/medications/search", SearchMedications(mockSvc))
	app.Post("/patient/:patientId/labtests", AddLabTest(mockSvc))
	app.Get("/patient/:patientId/labtests", ListLabTests(mockSvc))
	app.Get("/patient/:patientId/labtests/search", SearchLabTests(mockSvc))

	visit := model.Visit{Reason: "fever", Date: "2024-05-01", Hour: "10:30"}
	med := model.Medication{Name: "Amoxicillin", Date: "2024-05-01"}
	lab := model.LabTest{Name: "CBC", Date: "2024-05-01"}

	mockSvc.On("AddVisit", mock.Anything, testUser, int64(7), visit).Return(int64(1), nil).Once()
	mockSvc.On("ListVisits", mock.Anything, testUser, int64(7)).Return([]model.Visit{visit}, nil).Once()
	mockSvc.On("AddMedication", mock.Anything, testUser, int64(7), med).Return(int64(2), nil).Once()
	mockSvc.On("ListMedications", mock.Anything, testUser, int64(7)).Return(nil, service.ErrPatientNotFound).Once()
	mockSvc.On("SearchMedications", mock.Anything, testUser, int64(7), "amox").Return([]model.Medication{med}, nil).Once()
	mockSvc.On("AddLabTest", mock.Anything, testUser, int64(7), lab).Return(int64(0), service.ErrInvalidInput).Once()
	mockSvc.On("ListLabTests", mock.Anything, testUser, int64(7)).Return([]model.LabTest{lab}, nil).Once()
	mockSvc.On("SearchLabTests", mock.Anything, testUser, int64(7), "").Return(nil, nil).Once()

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
	}{
		{"add visit", jsonRequest(http.MethodPost, "/patient/7/visits", visit), http.StatusCreated},
		{"list visits", httptest.NewRequest(http.MethodGet, "/patient/7/visits", nil), http.StatusOK},
		{"add medication", jsonRequest(http.MethodPost, "/patient/7/medications", med), http.StatusCreated},
		{"list medications of a foreign patient", httptest.NewRequest(http.MethodGet, "/patient/7/medications", nil), http.StatusNotFound},
		{"search medications", httptest.NewRequest(http.MethodGet, "/patient/7/medications/search?name=amox", nil), http.StatusOK},
		{"add lab test rejected", jsonRequest(http.MethodPost, "/patient/7/labtests", lab), http.StatusBadRequest},
		{"list lab tests", httptest.NewRequest(http.MethodGet, "/patient/7/labtests", nil), http.StatusOK},
		{"search lab tests without a name", httptest.NewRequest(http.MethodGet, "/patient/7/labtests/search", nil), http.StatusOK},
		{"bad patient id", httptest.NewRequest(http.MethodGet, "/patient/zero/visits", nil), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
	mockSvc.AssertExpectations(t)
}

func TestWaitingRoomHandlers(t *testing.T) {
	mockSvc := new(serviceMocks.MockWaitingRoomService)
	app := newApp()
	app.Post("/patient/waiting-room/add", AddToWaitingRoom(mockSvc))
	app.Get("/patient/waiting-room", ListWaitingRoom(mockSvc))
	app.Put("/patient/waiting-room/:entryId/status", UpdateWaitingStatus(mockSvc))
	app.Delete("/patient/waiting-room/:entryId", RemoveFromWaitingRoom(mockSvc))

	mockSvc.On("Add", mock.Anything, testUser, int64(7)).Return(&model.WaitingRoomEntry{ID: 3, PatientID: 7, Status: model.StatusWaiting}, nil).Once()
	mockSvc.On("Add", mock.Anything, testUser, int64(8)).Return(nil, service.ErrAlreadyWaiting).Once()
	mockSvc.On("List", mock.Anything, testUser).Return([]model.WaitingRoomEntry{{ID: 3}}, nil).Once()
	mockSvc.On("UpdateStatus", mock.Anything, testUser, int64(3), model.StatusCalled).Return(nil).Once()
	mockSvc.On("UpdateStatus", mock.Anything, testUser, int64(3), "bogus").Return(service.ErrInvalidInput).Once()
	mockSvc.On("Remove", mock.Anything, testUser, int64(3)).Return(nil).Once()
	mockSvc.On("Remove", mock.Anything, testUser, int64(4)).Return(service.ErrEntryNotFound).Once()

	tests := []struct {
		name       string
		req        *http.Request
		wantStatus int
	}{
		{"add", jsonRequest(http.MethodPost, "/patient/waiting-room/add", map[string]int{"patient_id": 7}), http.StatusCreated},
		{"add twice", jsonRequest(http.MethodPost, "/patient/waiting-room/add", map[string]int{"patient_id": 8}), http.StatusConflict},
		{"list", httptest.NewRequest(http.MethodGet, "/patient/waiting-room", nil), http.StatusOK},
		{"call", jsonRequest(http.MethodPut, "/patient/waiting-room/3/status", map[string]string{"status": model.StatusCalled}), http.StatusOK},
		{"bad status", jsonRequest(http.MethodPut, "/patient/waiting-room/3/status", map[string]string{"status": "bogus"}), http.StatusBadRequest},
		{"remove", httptest.NewRequest(http.MethodDelete, "/patient/waiting-room/3", nil), http.StatusNoContent},
		{"remove unknown", httptest.NewRequest(http.MethodDelete, "/patient/waiting-room/4", nil), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
	mockSvc.AssertExpectations(t)
}
