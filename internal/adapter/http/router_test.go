package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderanges/swiftcrm/internal/adapter/http/middleware"
	"github.com/coderanges/swiftcrm/internal/domain"
	"github.com/coderanges/swiftcrm/internal/security"
	"github.com/coderanges/swiftcrm/internal/usecase"
)

type fakeUserRepo struct {
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return usecase.ErrDuplicateEmail
	}
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	return u, nil
}

type fakeContactRepo struct {
	contacts map[string]*domain.Contact
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{contacts: map[string]*domain.Contact{}}
}

func (f *fakeContactRepo) Create(_ context.Context, c *domain.Contact) error {
	cp := *c
	f.contacts[c.ID] = &cp
	return nil
}

func (f *fakeContactRepo) GetByID(_ context.Context, id, userID string) (*domain.Contact, error) {
	c, ok := f.contacts[id]
	if !ok || c.UserID != userID {
		return nil, usecase.ErrNotFound
	}
	return c, nil
}

func (f *fakeContactRepo) ListByUser(_ context.Context, userID string) ([]*domain.Contact, error) {
	var out []*domain.Contact
	for _, c := range f.contacts {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) Update(_ context.Context, c *domain.Contact) error {
	if _, ok := f.contacts[c.ID]; !ok {
		return usecase.ErrNotFound
	}
	cp := *c
	f.contacts[c.ID] = &cp
	return nil
}

func (f *fakeContactRepo) Delete(_ context.Context, id, userID string) error {
	c, ok := f.contacts[id]
	if !ok || c.UserID != userID {
		return usecase.ErrNotFound
	}
	delete(f.contacts, id)
	return nil
}

const testCookie = "crm_session"

func testRouter(t *testing.T) (*gin.Engine, *fakeContactRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := security.NewSessions(security.SessionConfig{
		Secret:   "router-test-secret",
		Issuer:   "crm-api",
		Audience: "crm-web",
		TTL:      time.Hour,
	})

	users := newFakeUserRepo()
	contacts := newFakeContactRepo()

	h := Handlers{
		Auth:     NewAuthHandler(users, sessions, testCookie, false, time.Hour),
		Contacts: NewContactHandler(contacts),
		Leads:    NewLeadHandler(nil, nil),
		Orders:   NewOrderHandler(nil, nil, nil),
		Invoices: NewInvoiceHandler(nil, nil, nil, nil),
		Receipts: NewReceiptHandler(nil, nil, nil, nil),
		Accounting: NewAccountingHandler(
			nil, nil,
		),
	}
	return NewRouter(h, middleware.SessionAuth(sessions, testCookie)), contacts
}

func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == testCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func register(t *testing.T, r *gin.Engine, email string) *http.Cookie {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/register", gin.H{
		"name":     "Ada",
		"email":    email,
		"password": "correct horse",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return sessionCookie(t, w)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, _ := testRouter(t)
	register(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/api/register", gin.H{
		"name":     "Ada Again",
		"email":    "ada@example.com",
		"password": "correct horse",
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "email_taken")
}

func TestLogin(t *testing.T) {
	r, _ := testRouter(t)
	register(t, r, "ada@example.com")

	w := doJSON(r, http.MethodPost, "/api/login", gin.H{
		"email":    "ada@example.com",
		"password": "correct horse",
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	sessionCookie(t, w)

	w = doJSON(r, http.MethodPost, "/api/login", gin.H{
		"email":    "ada@example.com",
		"password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// unknown email gets the same answer as a bad password
	w = doJSON(r, http.MethodPost, "/api/login", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionRequired(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(r, http.MethodGet, "/api/contacts", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/contacts", nil, &http.Cookie{Name: testCookie, Value: "forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	r, _ := testRouter(t)
	cookie := register(t, r, "ada@example.com")

	w := doJSON(r, http.MethodGet, "/api/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp userResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ada@example.com", resp.Email)
	assert.Equal(t, "Ada", resp.Name)
}

func TestContactCRUDAndTenancy(t *testing.T) {
	r, _ := testRouter(t)
	ada := register(t, r, "ada@example.com")
	bob := register(t, r, "bob@example.com")

	w := doJSON(r, http.MethodPost, "/api/contacts", gin.H{
		"name":    "Grace Hopper",
		"email":   "grace@example.com",
		"company": "Navy",
	}, ada)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created contactResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	// owner sees it
	w = doJSON(r, http.MethodGet, "/api/contacts/"+created.ID, nil, ada)
	assert.Equal(t, http.StatusOK, w.Code)

	// another user does not
	w = doJSON(r, http.MethodGet, "/api/contacts/"+created.ID, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// blank name is rejected at the boundary
	w = doJSON(r, http.MethodPut, "/api/contacts/"+created.ID, gin.H{"name": "  "}, ada)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodDelete, "/api/contacts/"+created.ID, nil, ada)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/contacts/"+created.ID, nil, ada)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
