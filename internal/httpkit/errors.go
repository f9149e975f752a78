package httpkit

import (
	"net/http"

	"cardrender/internal/pkg/errors"
)

// WriteDomainErr maps a service error onto the JSON error envelope using
// the error's code and HTTP status. Unknown error types become 500s.
func WriteDomainErr(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	var e *errors.Error
	if errors.As(err, &e) {
		WriteErr(w, e.HTTPStatus(), string(e.Code), e.Message, e.Fields)
		return
	}

	WriteErr(w, http.StatusInternalServerError, string(errors.CodeInternal), "internal error", nil)
}
