// Package response writes the uniform API envelope. Every response —
// success or failure — has the same shape, so clients branch on one
// boolean:
//
//	{"success": true,  "message": "Success", "data": ...}
//	{"success": false, "message": "...",     "data": null}
package response

import (
	"encoding/json"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
)

// Envelope is the wire shape of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

func write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// OK sends a 200 success envelope.
func OK(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, Envelope{Success: true, Message: "Success", Data: data})
}

// Created sends a 201 success envelope.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, Envelope{Success: true, Message: "Success", Data: data})
}

// Fail sends a failure envelope with the given status and message.
func Fail(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: false, Message: message, Data: nil})
}

// Error is the centralizing error responder. Known kinds map to their
// status code; unknown errors default to 500 with the error's message
// text in the body.
func Error(w http.ResponseWriter, err error) {
	if e := apperr.From(err); e != nil {
		Fail(w, e.Status(), e.Error())
		return
	}
	Fail(w, http.StatusInternalServerError, err.Error())
}
