package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/advboard/internal/common"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error any `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, msg any) {
	writeJSON(w, status, errorBody{Error: msg})
}

// decodeJSON reads a single JSON object from the request body into dst.
// Syntax problems become a 400 with a fixed message; a value of the wrong
// type is reported as a *common.ValidationError for that field.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return common.NewValidationError(typeErr.Field, "type",
				fmt.Sprintf("%s must be of type %s", typeErr.Field, typeErr.Type.String()))
		}
		return errInvalidJSON
	}
	if _, err := dec.Token(); err != io.EOF {
		return errInvalidJSON
	}
	return nil
}

var errInvalidJSON = errors.New("invalid JSON body")

// writeError converts err into the structured error body. resource names
// the entity for not-found and conflict messages.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, resource string) {
	var ve *common.ValidationError

	switch {
	case errors.As(err, &ve):
		writeJSONError(w, http.StatusBadRequest, ve)
	case errors.Is(err, errInvalidJSON):
		writeJSONError(w, http.StatusBadRequest, errInvalidJSON.Error())
	case errors.Is(err, common.ErrTokenExpired):
		writeJSONError(w, http.StatusUnauthorized, common.ErrTokenExpired.Error())
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrorUnauthorized):
		writeJSONError(w, http.StatusUnauthorized, common.ErrInvalidToken.Error())
	case errors.Is(err, common.ErrorAuthentication):
		writeJSONError(w, http.StatusUnauthorized, common.ErrorAuthentication.Error())
	case errors.Is(err, common.ErrorInvalidOwner):
		writeJSONError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, common.ErrorNotFound):
		writeJSONError(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSONError(w, http.StatusConflict, resource+" already exists")
	default:
		s.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		writeJSONError(w, http.StatusInternalServerError, common.ErrorInternal.Error())
	}
}
