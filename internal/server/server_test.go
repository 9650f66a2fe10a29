package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/internal/server"
	"github.com/shashiranjanraj/storefront/internal/testdb"
)

func TestMain(m *testing.M) {
	config.Set("BCRYPT_COST", "4")
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type api struct {
	t       *testing.T
	handler http.Handler
}

func newAPI(t *testing.T) api {
	t.Helper()
	return api{t: t, handler: server.Build(testdb.Open(t))}
}

func (a api) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// signup creates an account and logs it in, returning the user and a
// valid bearer token.
func (a api) signup(email string) (models.User, string) {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"email":     email,
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  "password123",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(a.t, json.Unmarshal(env.Data, &user))

	rec, env = a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    email,
		"password": "password123",
	})
	require.Equal(a.t, http.StatusOK, rec.Code, rec.Body.String())

	var creds struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &creds))
	require.NotEmpty(a.t, creds.AccessToken)

	return user, creds.AccessToken
}

func (a api) createProduct(token, name string, price float64) models.Product {
	a.t.Helper()

	rec, env := a.do(http.MethodPost, "/api/products", token, map[string]interface{}{
		"name":  name,
		"price": price,
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var product models.Product
	require.NoError(a.t, json.Unmarshal(env.Data, &product))
	return product
}

func TestSignupAndLogin(t *testing.T) {
	a := newAPI(t)

	user, token := a.signup("ada@example.com")
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)

	// Signup response never carries the password in any form.
	rec, _ := a.do(http.MethodGet, fmt.Sprintf("/api/users/%d", user.ID), token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestSignupDuplicateEmail(t *testing.T) {
	a := newAPI(t)
	a.signup("ada@example.com")

	// The unique-index violation propagates as an unanticipated store
	// error.
	rec, env := a.do(http.MethodPost, "/api/users", "", map[string]string{
		"email":     "ada@example.com",
		"firstName": "Ada",
		"lastName":  "Lovelace",
		"password":  "password123",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	a := newAPI(t)
	a.signup("ada@example.com")

	// Wrong password and unknown account yield the identical response.
	rec1, env1 := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	rec2, env2 := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ghost@example.com", "password": "password123",
	})

	assert.Equal(t, http.StatusBadRequest, rec1.Code)
	assert.Equal(t, rec1.Code, rec2.Code)
	assert.Equal(t, env1.Message, env2.Message)
}

func TestLoginValidatesInput(t *testing.T) {
	a := newAPI(t)

	rec, env := a.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	a := newAPI(t)

	for _, c := range []struct{ method, path string }{
		{http.MethodGet, "/api/users"},
		{http.MethodGet, "/api/orders"},
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/orders/1/status"},
	} {
		rec, _ := a.do(c.method, c.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", c.method, c.path)
	}

	rec, _ := a.do(http.MethodGet, "/api/users", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProductBrowsingIsOpen(t *testing.T) {
	a := newAPI(t)
	_, token := a.signup("ada@example.com")
	product := a.createProduct(token, "Keyboard", 49.99)

	rec, _ := a.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodGet, fmt.Sprintf("/api/products/%d", product.ID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = a.do(http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserUpdateOwnership(t *testing.T) {
	a := newAPI(t)
	ada, adaToken := a.signup("ada@example.com")
	alan, _ := a.signup("alan@example.com")

	rec, env := a.do(http.MethodPut, fmt.Sprintf("/api/users/%d", ada.ID), adaToken, map[string]string{
		"firstName": "Augusta", "lastName": "King",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.User
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Augusta", updated.FirstName)

	// Updating somebody else's account is forbidden.
	rec, _ = a.do(http.MethodPut, fmt.Sprintf("/api/users/%d", alan.ID), adaToken, map[string]string{
		"firstName": "Mallory", "lastName": "Intruder",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeletedUserTokenRejected(t *testing.T) {
	a := newAPI(t)
	ada, token := a.signup("ada@example.com")

	rec, _ := a.do(http.MethodDelete, fmt.Sprintf("/api/users/%d", ada.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The token is still cryptographically valid but its subject is gone.
	rec, _ = a.do(http.MethodGet, "/api/users", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderLifecycle(t *testing.T) {
	a := newAPI(t)
	ada, adaToken := a.signup("ada@example.com")
	_, alanToken := a.signup("alan@example.com")

	keyboard := a.createProduct(adaToken, "Keyboard", 49.99)
	mouse := a.createProduct(adaToken, "Mouse", 19.99)

	rec, env := a.do(http.MethodPost, "/api/orders", adaToken, map[string]interface{}{
		"products": []map[string]interface{}{
			{"id": keyboard.ID, "quantity": 2},
			{"id": mouse.ID, "quantity": 5},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, models.OrderActive, order.Status)
	assert.Equal(t, ada.ID, order.User.ID)
	assert.Len(t, order.Products, 2)

	// The nested user must never expose the stored digest.
	assert.NotContains(t, rec.Body.String(), "hashed_password")

	// Owner filter.
	rec, env = a.do(http.MethodGet, fmt.Sprintf("/api/orders?userId=%d", ada.ID), alanToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)

	rec, env = a.do(http.MethodGet, "/api/orders?userId=999", adaToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var none []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &none))
	assert.Empty(t, none)

	// Only the owner may change the status.
	statusPath := fmt.Sprintf("/api/orders/%d/status", order.ID)
	rec, _ = a.do(http.MethodPut, statusPath, alanToken, map[string]string{"status": "canceled"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = a.do(http.MethodPut, statusPath, adaToken, map[string]string{"status": "shipped"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = a.do(http.MethodPut, statusPath, adaToken, map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, models.OrderCompleted, order.Status)
}

func TestOrderValidation(t *testing.T) {
	a := newAPI(t)
	_, token := a.signup("ada@example.com")

	// No products.
	rec, _ := a.do(http.MethodPost, "/api/orders", token, map[string]interface{}{
		"products": []map[string]interface{}{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Unknown status.
	rec, _ = a.do(http.MethodPost, "/api/orders", token, map[string]interface{}{
		"status":   "pending",
		"products": []map[string]interface{}{{"id": 1, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderNotFound(t *testing.T) {
	a := newAPI(t)
	_, token := a.signup("ada@example.com")

	rec, _ := a.do(http.MethodGet, "/api/orders/424242", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = a.do(http.MethodPut, "/api/orders/424242/status", token, map[string]string{"status": "completed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	a := newAPI(t)

	rec, _ := a.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_")
}
