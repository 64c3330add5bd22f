package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "classbook/pkg/errors"
	"classbook/pkg/logger"
	"classbook/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockClassService struct {
	createFunc  func(ctx context.Context, class *model.Class) error
	getByIDFunc func(ctx context.Context, id int64) (*model.Class, error)
	listFunc    func(ctx context.Context) ([]*model.Class, error)
}

func (m *mockClassService) Create(ctx context.Context, class *model.Class) error {
	return m.createFunc(ctx, class)
}

func (m *mockClassService) GetByID(ctx context.Context, id int64) (*model.Class, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockClassService) List(ctx context.Context) ([]*model.Class, error) {
	return m.listFunc(ctx)
}

func do(svc *mockClassService, method, path, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewClassHandler(svc, logger.NewNop()).RegisterRoutes(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClassHandler_Create(t *testing.T) {
	svc := &mockClassService{
		createFunc: func(_ context.Context, class *model.Class) error {
			class.ID = 5
			return nil
		},
	}

	rec := do(svc, http.MethodPost, "/api/v1/classes",
		`{"name":"Pilates","startDate":"2024-01-01","endDate":"2024-01-31","capacity":10}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	want := `"data":{"id":5,"name":"Pilates","startDate":"2024-01-01","endDate":"2024-01-31","capacity":10}`
	if !strings.Contains(rec.Body.String(), want) {
		t.Errorf("body = %s, want containing %s", rec.Body.String(), want)
	}
}

func TestClassHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{
			name:       "malformed body",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid date",
			body:       `{"startDate":"2024-02-30"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "validation failure",
			body:       `{"name":"P"}`,
			err:        apperrors.Validation("Class validation failed", nil),
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockClassService{
				createFunc: func(context.Context, *model.Class) error { return tt.err },
			}
			rec := do(svc, http.MethodPost, "/api/v1/classes", tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestClassHandler_GetByID(t *testing.T) {
	svc := &mockClassService{
		getByIDFunc: func(_ context.Context, id int64) (*model.Class, error) {
			if id != 5 {
				return nil, apperrors.NotFoundWithID("Class", id)
			}
			return &model.Class{
				ID:        5,
				Name:      "Pilates",
				StartDate: model.NewDate(2024, time.January, 1),
				EndDate:   model.NewDate(2024, time.January, 31),
				Capacity:  10,
			}, nil
		},
	}

	tests := []struct {
		path       string
		wantStatus int
	}{
		{path: "/api/v1/classes/id/5", wantStatus: http.StatusOK},
		{path: "/api/v1/classes/id/6", wantStatus: http.StatusNotFound},
		{path: "/api/v1/classes/id/five", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := do(svc, http.MethodGet, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestClassHandler_List(t *testing.T) {
	svc := &mockClassService{
		listFunc: func(context.Context) ([]*model.Class, error) { return nil, nil },
	}

	rec := do(svc, http.MethodGet, "/api/v1/classes", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"data":[]}` {
		t.Errorf("body = %s, want {\"data\":[]}", got)
	}
}
