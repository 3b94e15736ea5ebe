package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9\s\-()]{7,20}$`)
)

func IsBlank(s string) bool { return strings.TrimSpace(s) == "" }

func IsEmail(s string) bool { return emailPattern.MatchString(strings.TrimSpace(s)) }

func IsPhone(s string) bool { return phonePattern.MatchString(strings.TrimSpace(s)) }

// FieldErrors maps a field path (json names) to a message a user can act on.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Add keeps the first message recorded for a field.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

func (f FieldErrors) Merge(other FieldErrors) {
	for k, v := range other {
		f.Add(k, v)
	}
}

// AsFieldErrors unwraps err into FieldErrors when it carries any.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	must := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(err)
		}
	}
	must("notblank", func(fl validator.FieldLevel) bool {
		return !IsBlank(fl.Field().String())
	})
	must("emailaddr", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
	must("phone", func(fl validator.FieldLevel) bool {
		return IsPhone(fl.Field().String())
	})
	must("datefmt", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(DateLayout, fl.Field().String())
		return err == nil
	})
	must("timefmt", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(TimeLayout, fl.Field().String())
		return err == nil
	})
	must("icon", func(fl validator.FieldLevel) bool {
		return models.IconName(fl.Field().String()).Valid()
	})

	return v
}

// Struct validates every tagged field of v.
func Struct(v any) error {
	return translate(v, validate.Struct(v))
}

// Partial validates only the named struct fields of v.
func Partial(v any, fields ...string) error {
	return translate(v, validate.StructPartial(v, fields...))
}

func translate(v any, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	root := reflect.TypeOf(v)
	out := FieldErrors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace()), message(fe, labelFor(root, fe)))
	}
	return out
}

func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func labelFor(root reflect.Type, fe validator.FieldError) string {
	t := root
	label := ""
	segments := strings.Split(fe.StructNamespace(), ".")
	for _, seg := range segments[1:] {
		if i := strings.Index(seg, "["); i >= 0 {
			seg = seg[:i]
		}
		for t.Kind() == reflect.Pointer || t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			break
		}
		f, ok := t.FieldByName(seg)
		if !ok {
			break
		}
		label = f.Tag.Get("label")
		t = f.Type
	}
	if label != "" {
		return label
	}
	return humanize(fe.Field())
}

func humanize(field string) string {
	if i := strings.Index(field, "["); i >= 0 {
		field = field[:i]
	}
	field = strings.ReplaceAll(field, "_", " ")
	if field == "" {
		return "Field"
	}
	return strings.ToUpper(field[:1]) + field[1:]
}

func message(fe validator.FieldError, label string) string {
	param := fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "notblank", "required":
		return label + " is required"
	case "emailaddr":
		return "Please enter a valid email address"
	case "phone":
		return "Please enter a valid phone number"
	case "datefmt":
		return label + " must be a valid date (YYYY-MM-DD)"
	case "timefmt":
		return label + " must be a valid time (HH:MM)"
	case "icon":
		return label + " is not a known icon"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(param, " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", label, param)
	case "gte", "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "lte", "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must be at most %s", label, param)
	}
	return label + " is invalid"
}
