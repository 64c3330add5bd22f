package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookingService struct {
	createFunc func(ctx context.Context, candidate *model.Booking) (*model.Booking, error)
	updateFunc func(ctx context.Context, id int64, candidate *model.Booking) (*model.Booking, error)
	listFunc   func(ctx context.Context) ([]*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, candidate *model.Booking) (*model.Booking, error) {
	return m.createFunc(ctx, candidate)
}

func (m *mockBookingService) Update(ctx context.Context, id int64, candidate *model.Booking) (*model.Booking, error) {
	return m.updateFunc(ctx, id, candidate)
}

func (m *mockBookingService) List(ctx context.Context) ([]*model.Booking, error) {
	return m.listFunc(ctx)
}

func newRouter(svc *mockBookingService) *httprouter.Router {
	router := httprouter.New()
	NewBookingHandler(svc, logger.NewNop()).RegisterRoutes(router)
	return router
}

func serve(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Code  string          `json:"code"`
	Error string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestBookingHandler_Create(t *testing.T) {
	var received *model.Booking
	svc := &mockBookingService{
		createFunc: func(_ context.Context, candidate *model.Booking) (*model.Booking, error) {
			received = candidate
			stored := *candidate
			stored.ID = 1
			return &stored, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings",
		`{"name":"Alice","date":"2024-01-15","classId":5}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, received)
	assert.Equal(t, "Alice", received.Name)
	assert.Equal(t, model.NewDate(2024, time.January, 15), received.Date)
	assert.Equal(t, int64(5), received.ClassID)

	assert.JSONEq(t, `{"name":"Alice","date":"2024-01-15","classId":5}`, string(decode(t, rec).Data))
}

func TestBookingHandler_CreateIgnoresClientID(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(_ context.Context, candidate *model.Booking) (*model.Booking, error) {
			assert.Zero(t, candidate.ID)
			return candidate, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings",
		`{"id":9,"name":"Alice","date":"2024-01-15","classId":5}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestBookingHandler_CreateBadBody(t *testing.T) {
	svc := &mockBookingService{
		createFunc: func(context.Context, *model.Booking) (*model.Booking, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	for _, body := range []string{`{`, `{"date":"15/01/2024"}`, `{"classId":"five"}`} {
		rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, apperrors.CodeInvalidInput, decode(t, rec).Code)
	}
}

func TestBookingHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "validation",
			err:        apperrors.Validation("date null", map[string]any{"field": "date"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   apperrors.CodeValidation,
		},
		{
			name:       "unknown class",
			err:        apperrors.NotFound("invalid class id"),
			wantStatus: http.StatusNotFound,
			wantCode:   apperrors.CodeNotFound,
		},
		{
			name:       "store failure",
			err:        apperrors.Internal("Failed to create booking", assert.AnError),
			wantStatus: http.StatusInternalServerError,
			wantCode:   apperrors.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookingService{
				createFunc: func(context.Context, *model.Booking) (*model.Booking, error) {
					return nil, tt.err
				},
			}

			rec := serve(newRouter(svc), http.MethodPost, "/api/v1/bookings", `{"name":"Alice"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decode(t, rec).Code)
		})
	}
}

func TestBookingHandler_List(t *testing.T) {
	svc := &mockBookingService{
		listFunc: func(context.Context) ([]*model.Booking, error) {
			return []*model.Booking{
				{ID: 1, Name: "Alice", Date: model.NewDate(2024, time.January, 15), ClassID: 5},
				{ID: 2, Name: "Bob", Date: model.NewDate(2024, time.January, 16), ClassID: 5},
			}, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodGet, "/api/v1/bookings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"name":"Alice","date":"2024-01-15","classId":5},
		{"name":"Bob","date":"2024-01-16","classId":5}
	]`, string(decode(t, rec).Data))
}

func TestBookingHandler_ListEmpty(t *testing.T) {
	svc := &mockBookingService{
		listFunc: func(context.Context) ([]*model.Booking, error) { return nil, nil },
	}

	rec := serve(newRouter(svc), http.MethodGet, "/api/v1/bookings", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))
}

func TestBookingHandler_Update(t *testing.T) {
	svc := &mockBookingService{
		updateFunc: func(_ context.Context, id int64, candidate *model.Booking) (*model.Booking, error) {
			assert.Equal(t, int64(7), id)
			merged := *candidate
			merged.ID = id
			return &merged, nil
		},
	}

	rec := serve(newRouter(svc), http.MethodPut, "/api/v1/bookings/id/7",
		`{"name":"Alice B","date":"2024-01-20","classId":5}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"name":"Alice B","date":"2024-01-20","classId":5}`, string(decode(t, rec).Data))
}

func TestBookingHandler_UpdateInvalidID(t *testing.T) {
	svc := &mockBookingService{
		updateFunc: func(context.Context, int64, *model.Booking) (*model.Booking, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}

	for _, id := range []string{"abc", "0", "-3"} {
		rec := serve(newRouter(svc), http.MethodPut, "/api/v1/bookings/id/"+id, `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
	}
}

func TestBookingHandler_UpdateNotFound(t *testing.T) {
	svc := &mockBookingService{
		updateFunc: func(_ context.Context, id int64, _ *model.Booking) (*model.Booking, error) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		},
	}

	rec := serve(newRouter(svc), http.MethodPut, "/api/v1/bookings/id/42",
		`{"name":"Alice","date":"2024-01-15","classId":5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Booking not found", decode(t, rec).Error)
}
