package pkg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRequest = errors.New("invalid request")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeRequest fills dst (a pointer to a flat struct) from a JSON body, or from
// form values keyed by the `json` tag names, and validates it.
func DecodeRequest(r *http.Request, dst any) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), ContentType.JSON) {
		if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
			return fmt.Errorf("%w: decode json: %s", ErrInvalidRequest, err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: parse form: %s", ErrInvalidRequest, err)
		}
		if err := formToStruct(r, dst); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
		}
	}

	return Validate(dst)
}

func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			return fmt.Errorf("%w: field %s failed on %s", ErrInvalidRequest, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %s", ErrInvalidRequest, err)
	}
	return nil
}

func formToStruct(r *http.Request, dst any) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return errors.New("destination must be a struct pointer")
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		if !r.Form.Has(name) {
			continue
		}
		raw := r.Form.Get(name)

		fv := rv.Field(i)
		switch fv.Kind() {
		case reflect.String:
			fv.SetString(raw)
		case reflect.Int, reflect.Int64, reflect.Int32:
			n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				return fmt.Errorf("field %s: not a number", name)
			}
			fv.SetInt(n)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("field %s: not a bool", name)
			}
			fv.SetBool(b)
		default:
			return fmt.Errorf("field %s: unsupported kind %s", name, fv.Kind())
		}
	}
	return nil
}
