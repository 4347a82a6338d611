package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/microblog/user-service/internal/api/middleware"
	"github.com/microblog/user-service/internal/core/domain"
	"github.com/microblog/user-service/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub service
// ---------------------------------------------------------------------------

type stubUserService struct {
	signupFn    func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	listFn      func(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error)
	lastListIn  ports.ListUsersInput
	signupCalls int
}

func (s *stubUserService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	s.signupCalls++
	if s.signupFn != nil {
		return s.signupFn(ctx, in)
	}
	return &domain.User{ID: "id-1"}, nil
}

func (s *stubUserService) ListUsers(ctx context.Context, in ports.ListUsersInput) (*ports.UserPage, error) {
	s.lastListIn = in
	if s.listFn != nil {
		return s.listFn(ctx, in)
	}
	return &ports.UserPage{Users: []domain.User{}, Size: 10}, nil
}

func (s *stubUserService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func newSignupContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/1.0/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/1.0/users")
	return c, rec
}

func newListContext(query string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/1.0/users"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/api/1.0/users")
	return c, rec
}

const validSignupBody = `{"username":"user1","displayName":"display1","password":"P4ssword"}`

// ---------------------------------------------------------------------------
// Signup
// ---------------------------------------------------------------------------

func TestSignup_ReturnsOKWithMessage(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, rec := newSignupContext(validSignupBody)

	if err := h.Signup(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}

	var resp genericResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Message == "" {
		t.Error("expected a non-empty success message")
	}
}

func TestSignup_MalformedBody_ReturnsBadRequest(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, rec := newSignupContext(`{"username":`)

	if err := h.Signup(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: expected 400, got %d", rec.Code)
	}
	if svc.signupCalls != 0 {
		t.Error("service must not be called for an unparsable body")
	}
}

func TestSignup_ValidationFailure_ReturnsAPIError(t *testing.T) {
	svc := &stubUserService{
		signupFn: func(context.Context, ports.SignupInput) (*domain.User, error) {
			return nil, domain.NewValidationError(map[string]string{
				"username": "Username cannot be null",
			})
		},
	}
	h := NewUserHandler(svc)
	c, rec := newSignupContext(`{"displayName":"display1","password":"P4ssword"}`)

	if err := h.Signup(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: expected 400, got %d", rec.Code)
	}

	var apiErr APIError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status field: expected 400, got %d", apiErr.Status)
	}
	if apiErr.URL != "/api/1.0/users" {
		t.Errorf("url field: expected /api/1.0/users, got %q", apiErr.URL)
	}
	if apiErr.Timestamp == 0 {
		t.Error("timestamp field must be set")
	}
	if apiErr.ValidationErrors["username"] != "Username cannot be null" {
		t.Errorf("unexpected validationErrors: %v", apiErr.ValidationErrors)
	}
}

func TestSignup_AbsentFields_ReachServiceAsNil(t *testing.T) {
	var captured ports.SignupInput
	svc := &stubUserService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.User, error) {
			captured = in
			return &domain.User{ID: "id-1"}, nil
		},
	}
	h := NewUserHandler(svc)
	c, _ := newSignupContext(`{"username":"user1"}`)

	if err := h.Signup(c); err != nil {
		t.Fatal(err)
	}
	if captured.Username == nil || *captured.Username != "user1" {
		t.Errorf("username: expected user1, got %v", captured.Username)
	}
	if captured.DisplayName != nil {
		t.Error("absent displayName must arrive as nil, not empty string")
	}
	if captured.Password != nil {
		t.Error("absent password must arrive as nil, not empty string")
	}
}

// ---------------------------------------------------------------------------
// List
// ---------------------------------------------------------------------------

func TestList_ForwardsPageAndSize(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, _ := newListContext("?page=2&size=25")

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	if svc.lastListIn.Page != 2 || svc.lastListIn.Size != 25 {
		t.Errorf("expected page=2 size=25, got %+v", svc.lastListIn)
	}
}

func TestList_UnparsableParamsFallBackToZero(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, rec := newListContext("?page=abc&size=xyz")

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", rec.Code)
	}
	if svc.lastListIn.Page != 0 || svc.lastListIn.Size != 0 {
		t.Errorf("expected zero values, got %+v", svc.lastListIn)
	}
}

func TestList_AnonymousRequestHasNoRequesterID(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, _ := newListContext("")

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	if svc.lastListIn.RequesterID != "" {
		t.Errorf("expected empty requester id, got %q", svc.lastListIn.RequesterID)
	}
}

func TestList_AuthenticatedRequesterForwarded(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, _ := newListContext("")
	middleware.SetAuthenticatedUser(c, &domain.User{ID: "id-7", Username: "user7"})

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	if svc.lastListIn.RequesterID != "id-7" {
		t.Errorf("expected requester id-7, got %q", svc.lastListIn.RequesterID)
	}
}

func TestList_ResponseNeverContainsPasswords(t *testing.T) {
	svc := &stubUserService{
		listFn: func(context.Context, ports.ListUsersInput) (*ports.UserPage, error) {
			return &ports.UserPage{
				Users: []domain.User{
					{ID: "id-1", Username: "user1", DisplayName: "display1", PasswordHash: "$2a$10$secret"},
				},
				Size:             10,
				TotalElements:    1,
				TotalPages:       1,
				NumberOfElements: 1,
			}, nil
		},
	}
	h := NewUserHandler(svc)
	c, rec := newListContext("")

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}

	body := rec.Body.String()
	if strings.Contains(strings.ToLower(body), "password") {
		t.Errorf("response leaks a password field: %s", body)
	}
	if strings.Contains(body, "secret") {
		t.Errorf("response leaks the stored hash: %s", body)
	}

	var page userPageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatal(err)
	}
	if len(page.Content) != 1 || page.Content[0].Username != "user1" {
		t.Errorf("unexpected content: %+v", page.Content)
	}
	if page.TotalElements != 1 || page.TotalPages != 1 {
		t.Errorf("unexpected pagination metadata: %+v", page)
	}
}

func TestList_EmptyPageSerializesAsEmptyArray(t *testing.T) {
	svc := &stubUserService{}
	h := NewUserHandler(svc)
	c, rec := newListContext("")

	if err := h.List(c); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(rec.Body.String(), `"content":[]`) {
		t.Errorf("content must serialize as [], got %s", rec.Body.String())
	}
}
