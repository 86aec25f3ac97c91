package handler

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/actuallystonmai/travel-recommendation-service/internal/logging"
	"github.com/actuallystonmai/travel-recommendation-service/internal/service"
	"github.com/actuallystonmai/travel-recommendation-service/internal/validation"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{service: svc}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error().Err(err).Msg("[handler] encode response")
	}
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

func writeValidationError(w http.ResponseWriter, err *validation.RequestValidationError) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
		Details: err.Details(),
	})
}

// decodeAndValidate reads a single JSON value into v and validates it. On
// failure the error response is already written and false is returned.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", readErrorMessage(err))
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body is empty")
		return false
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", decodeErrorMessage(err, data, v))
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid_request", "Request body must contain a single JSON object")
		return false
	}

	if err := validation.Struct(v); err != nil {
		var ve *validation.RequestValidationError
		if errors.As(err, &ve) {
			writeValidationError(w, ve)
		} else {
			writeError(w, http.StatusBadRequest, "validation_error", err.Error())
		}
		return false
	}
	return true
}

func readErrorMessage(err error) string {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit)
	}
	return "Request body could not be read"
}

func decodeErrorMessage(err error, data []byte, v any) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" && typeErr.Type != nil {
		field := jsonFieldPath(reflect.TypeOf(v), typeErr.Field)
		return fmt.Sprintf("Field %s must be of type %s", field, jsonTypeName(typeErr.Type))
	}

	// Well-formed JSON that failed to decode has a value of the wrong type,
	// e.g. 1.5 for an integer field.
	if json.Valid(data) {
		return "Request body contains a value of the wrong type"
	}
	return "Request body is not valid JSON"
}

// jsonFieldPath rewrites a dotted Go field path such as "Preferences.Vibe"
// into the JSON names declared on t, e.g. "preferences.vibe". Segments that
// are already JSON names or cannot be resolved are kept as they are.
func jsonFieldPath(t reflect.Type, path string) string {
	segments := strings.Split(path, ".")
	for i, seg := range segments {
		t = elemType(t)
		if t == nil || t.Kind() != reflect.Struct {
			continue
		}

		f, ok := lookupField(t, seg)
		if !ok {
			t = nil
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name != "" && name != "-" {
			segments[i] = name
		}
		t = f.Type
	}
	return strings.Join(segments, ".")
}

// lookupField finds a field by Go name or JSON name on t, falling back to
// nested struct fields since the decoder reports only the innermost name.
func lookupField(t reflect.Type, name string) (reflect.StructField, bool) {
	if f, ok := t.FieldByName(name); ok {
		return f, true
	}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag == name {
			return f, true
		}
	}
	for i := 0; i < t.NumField(); i++ {
		if nested := elemType(t.Field(i).Type); nested != nil && nested.Kind() == reflect.Struct && nested != t {
			if f, ok := lookupField(nested, name); ok {
				return f, true
			}
		}
	}
	return reflect.StructField{}, false
}

func elemType(t reflect.Type) reflect.Type {
	for t != nil && (t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array) {
		t = t.Elem()
	}
	return t
}

func jsonTypeName(t reflect.Type) string {
	switch elemType(t).Kind() {
	case reflect.String:
		if t.Kind() == reflect.Slice {
			return "array of strings"
		}
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Bool:
		return "boolean"
	case reflect.Struct, reflect.Map:
		return "object"
	default:
		return t.String()
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	code, msg := service.CategorizeError(err)
	status := http.StatusInternalServerError
	if code == "request_timeout" || code == "catalog_unavailable" {
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, code, msg)
}
