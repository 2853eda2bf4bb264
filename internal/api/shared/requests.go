package shared

import (
	"encoding"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/taskboard-api/internal/domain"
)

// MaxRequestBodyBytes bounds the size of JSON request bodies.
const MaxRequestBodyBytes = 1 << 20

// ErrMalformedBody is returned by DecodeJSON when the body is not a JSON object.
var ErrMalformedBody = errors.New("malformed JSON request body")

var (
	validate = newValidator()

	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(domain.JSONFieldName)
	return v
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored and
// an empty body decodes as an empty object. A value of the wrong JSON type is
// reported as a *domain.ValidationError on that field; any other decoding
// failure wraps ErrMalformedBody.
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}

	err := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBodyBytes)).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return domain.NewValidationError(typeErr.Field, "must be a "+jsonKind(typeErr.Type))
	}
	if errors.Is(err, domain.ErrInvalidTaskStatus) {
		return domain.NewValidationError("status", "must be one of "+statusList())
	}
	return fmt.Errorf("%w: %v", ErrMalformedBody, err)
}

// ValidateRequest runs the struct-tag validators on v. Field failures come
// back as a *domain.ValidationError keyed by JSON field name.
func ValidateRequest(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return domain.FromValidatorErrors(err)
	}
	return nil
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return "string"
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Slice, reflect.Array:
		return "list"
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "number"
	}
}

func statusList() string {
	statuses := domain.AllStatuses()
	names := make([]string, len(statuses))
	for i, s := range statuses {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
