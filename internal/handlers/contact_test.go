package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mhollis/vitrine/internal/models"
	"github.com/stretchr/testify/assert"
)

// MockContactService implements ContactServiceInterface for testing
type MockContactService struct {
	SubmitFunc func(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error)
	ListFunc   func(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (m *MockContactService) Submit(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, request)
	}
	return nil, models.ErrInternalServer
}

func (m *MockContactService) List(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.ContactRequest{}, nil
}

func (m *MockContactService) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func TestContactHandler_Submit(t *testing.T) {
	service := &MockContactService{
		SubmitFunc: func(ctx context.Context, request *models.ContactRequest) (*models.ContactRequest, error) {
			created := *request
			created.ID = "msg-1"
			return &created, nil
		},
	}
	handler := NewContactHandler(service)

	req := NewTestRequest(t, http.MethodPost, "/api/contact", ContactSubmitRequest{
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Message: "Do you ship internationally?",
	})
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	var resp ContactResponse
	AssertJSONResponse(t, w, http.StatusCreated, &resp)
	assert.Equal(t, "msg-1", resp.ID)
	assert.Equal(t, "jane@example.com", resp.Email)
}

func TestContactHandler_SubmitInvalidEmail(t *testing.T) {
	handler := NewContactHandler(&MockContactService{})

	req := NewTestRequest(t, http.MethodPost, "/api/contact", ContactSubmitRequest{
		Name:    "Jane Doe",
		Email:   "not-an-email",
		Message: "Hello",
	})
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestContactHandler_SubmitMissingMessage(t *testing.T) {
	handler := NewContactHandler(&MockContactService{})

	req := NewTestRequest(t, http.MethodPost, "/api/contact", ContactSubmitRequest{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})
	w := httptest.NewRecorder()
	handler.Submit(w, req)

	AssertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
}

func TestContactHandler_ListClampsPaging(t *testing.T) {
	var gotLimit, gotOffset int
	service := &MockContactService{
		ListFunc: func(ctx context.Context, limit, offset int) ([]*models.ContactRequest, error) {
			gotLimit, gotOffset = limit, offset
			return []*models.ContactRequest{}, nil
		},
	}
	handler := NewContactHandler(service)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contact-requests?limit=9999&offset=-3", nil)
	w := httptest.NewRecorder()
	handler.ListContactRequests(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 50, gotLimit, "out-of-range limit should fall back to the default")
	assert.Equal(t, 0, gotOffset)
}

func TestContactHandler_DeleteNotFound(t *testing.T) {
	service := &MockContactService{
		DeleteFunc: func(ctx context.Context, id string) error {
			return models.ErrNotFound
		},
	}
	handler := NewContactHandler(service)

	req := WithURLParam(httptest.NewRequest(http.MethodDelete, "/api/admin/contact-requests/msg-9", nil), "id", "msg-9")
	w := httptest.NewRecorder()
	handler.DeleteContactRequest(w, req)

	AssertErrorResponse(t, w, http.StatusNotFound, "not_found")
}
