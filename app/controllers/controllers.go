package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/bind"
	"github.com/shashiranjanraj/storefront/pkg/validate"
)

// decode binds the JSON body into dest and folds malformed bodies and
// validation failures into one BadRequest error.
func decode(r *http.Request, dest interface{}) error {
	errs, err := bind.JSON(r, dest)
	if err != nil {
		return apperr.NewBadRequest(err.Error())
	}
	if errs != nil {
		return apperr.NewBadRequest(validate.Join(errs))
	}
	return nil
}

// idParam parses a numeric path parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, apperr.NewBadRequest("Invalid " + name)
	}
	return id, nil
}
