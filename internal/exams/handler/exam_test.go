package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"examdesk/pkg/logger"
	"examdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// Mock service for testing
type mockExamService struct {
	createFunc    func(ctx context.Context, exam *model.Exam) error
	getAllFunc    func(ctx context.Context, limit int, offset int64) ([]*model.Exam, int64, error)
	getByDateFunc func(ctx context.Context, examDate string) ([]*model.Exam, error)
}

func (m *mockExamService) Create(ctx context.Context, exam *model.Exam) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, exam)
	}
	return nil
}

func (m *mockExamService) GetByID(ctx context.Context, id string) (*model.Exam, error) {
	return nil, nil
}

func (m *mockExamService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Exam, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return []*model.Exam{}, 0, nil
}

func (m *mockExamService) GetByDate(ctx context.Context, examDate string) ([]*model.Exam, error) {
	if m.getByDateFunc != nil {
		return m.getByDateFunc(ctx, examDate)
	}
	return []*model.Exam{}, nil
}

func (m *mockExamService) Update(ctx context.Context, id string, updates *model.ExamUpdate) error {
	return nil
}

func (m *mockExamService) Delete(ctx context.Context, id string) error {
	return nil
}

func (m *mockExamService) Stats(ctx context.Context) (*model.ExamStats, error) {
	return nil, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestGetAll_QueryParameters(t *testing.T) {
	var receivedLimit int
	var receivedOffset int64
	mockService := &mockExamService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Exam, int64, error) {
			receivedLimit = limit
			receivedOffset = offset
			return []*model.Exam{}, 0, nil
		},
	}

	handler := &ExamHandler{
		service: mockService,
		log:     testLogger(),
	}

	tests := []struct {
		name           string
		queryString    string
		expectHTTPCode int
		expectLimit    int
		expectOffset   int64
	}{
		{
			name:           "valid parameters",
			queryString:    "?limit=20&offset=10",
			expectHTTPCode: http.StatusOK,
			expectLimit:    20,
			expectOffset:   10,
		},
		{
			name:           "missing parameters fall back to defaults",
			queryString:    "",
			expectHTTPCode: http.StatusOK,
			expectLimit:    10,
			expectOffset:   0,
		},
		{
			name:           "limit clamped to maximum",
			queryString:    "?limit=999999&offset=0",
			expectHTTPCode: http.StatusOK,
			expectLimit:    50,
			expectOffset:   0,
		},
		{
			name:           "negative values normalized",
			queryString:    "?limit=-10&offset=-5",
			expectHTTPCode: http.StatusOK,
			expectLimit:    10,
			expectOffset:   0,
		},
		{
			name:           "invalid limit rejected",
			queryString:    "?limit=abc&offset=0",
			expectHTTPCode: http.StatusBadRequest,
		},
		{
			name:           "invalid offset rejected",
			queryString:    "?limit=10&offset=xyz",
			expectHTTPCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/exams"+tt.queryString, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req, httprouter.Params{})

			if w.Code != tt.expectHTTPCode {
				t.Errorf("expected status %d, got %d", tt.expectHTTPCode, w.Code)
			}

			if tt.expectHTTPCode != http.StatusOK {
				return
			}

			if receivedLimit != tt.expectLimit {
				t.Errorf("expected limit %d, got %d", tt.expectLimit, receivedLimit)
			}

			if receivedOffset != tt.expectOffset {
				t.Errorf("expected offset %d, got %d", tt.expectOffset, receivedOffset)
			}
		})
	}
}

func TestGetAll_ResponseStructure(t *testing.T) {
	mockService := &mockExamService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Exam, int64, error) {
			return []*model.Exam{
				{ID: "1", Name: "Algorithms Final"},
				{ID: "2", Name: "Databases Midterm"},
			}, 100, nil
		},
	}

	handler := &ExamHandler{
		service: mockService,
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exams?limit=20&offset=10", nil)
	w := httptest.NewRecorder()

	handler.GetAll(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response struct {
		Data       []model.Exam `json:"data"`
		TotalCount int64        `json:"total_count"`
		Limit      int          `json:"limit"`
		Offset     int64        `json:"offset"`
	}

	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.TotalCount != 100 {
		t.Errorf("expected total_count 100, got %d", response.TotalCount)
	}

	if len(response.Data) != 2 {
		t.Errorf("expected 2 items, got %d", len(response.Data))
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	handler := &ExamHandler{
		service: &mockExamService{},
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exams", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}

func TestSearch_RequiresExamDate(t *testing.T) {
	var receivedDate string
	mockService := &mockExamService{
		getByDateFunc: func(ctx context.Context, examDate string) ([]*model.Exam, error) {
			receivedDate = examDate
			return []*model.Exam{}, nil
		},
	}

	handler := &ExamHandler{
		service: mockService,
		log:     testLogger(),
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/exams/search", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 without exam_date, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/exams/search?exam_date=2026-06-01", nil)
	w = httptest.NewRecorder()

	handler.Search(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	if receivedDate != "2026-06-01" {
		t.Errorf("expected exam_date 2026-06-01, got %q", receivedDate)
	}
}
