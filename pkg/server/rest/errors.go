package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/lintang-b-s/roadnav/pkg/util"
)

// ErrResponse model info
//
//	@Description	error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

// ErrServiceRend renders an error coming out of the service layer with the status matching its code.
func ErrServiceRend(err error) render.Renderer {
	var uerr *util.Error
	if !errors.As(err, &uerr) {
		return ErrInternalServerErrorRend(errors.New("internal server error"))
	}

	resp := &ErrResponse{
		Err:       err,
		AppCode:   int64(uerr.Code()),
		ErrorText: uerr.Message(),
	}
	switch uerr.Code() {
	case util.ErrBadParamInput:
		resp.HTTPStatusCode = http.StatusBadRequest
		resp.StatusText = "Invalid request."
	case util.ErrNotFound:
		resp.HTTPStatusCode = http.StatusNotFound
		resp.StatusText = "Not found."
	case util.ErrConflict:
		resp.HTTPStatusCode = http.StatusConflict
		resp.StatusText = "Conflict."
	case util.ErrUnprocessable:
		resp.HTTPStatusCode = http.StatusUnprocessableEntity
		resp.StatusText = "Unprocessable entity."
	default:
		resp.HTTPStatusCode = http.StatusInternalServerError
		resp.StatusText = "Internal server error."
		resp.ErrorText = "internal server error"
	}
	return resp
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, fmt.Errorf("%s", e.Translate(trans)))
	}
	return errs
}
