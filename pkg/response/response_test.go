package response_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestOK(t *testing.T) {
	rec := httptest.NewRecorder()
	response.OK(rec, map[string]string{"hello": "world"})

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success || env.Data == nil {
		t.Errorf("envelope: %+v", env)
	}
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Created(rec, 1)

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); !env.Success {
		t.Errorf("envelope: %+v", env)
	}
}

func TestFail(t *testing.T) {
	rec := httptest.NewRecorder()
	response.Fail(rec, http.StatusBadRequest, "nope")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Message != "nope" || env.Data != nil {
		t.Errorf("envelope: %+v", env)
	}
}

func TestErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.NewBadRequest("bad"), http.StatusBadRequest},
		{apperr.NewUnauthorized("no"), http.StatusUnauthorized},
		{apperr.NewForbidden("no"), http.StatusForbidden},
		{apperr.NewNotFound("gone"), http.StatusNotFound},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, c := range cases {
		rec := httptest.NewRecorder()
		response.Error(rec, c.err)
		if rec.Code != c.code {
			t.Errorf("%v: got status %d, want %d", c.err, rec.Code, c.code)
		}
		if env := decodeEnvelope(t, rec); env.Success {
			t.Errorf("%v: error envelope must not be success", c.err)
		}
	}
}
