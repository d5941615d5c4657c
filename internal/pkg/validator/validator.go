package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	// report json field names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// Validate checks struct tags and returns field -> failed tag, or nil.
func Validate(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Tag()
	}
	return out
}

// Messages flattens Validate output into sorted human-readable lines.
func Messages(fields map[string]string) []string {
	out := make([]string, 0, len(fields))
	for field, tag := range fields {
		out = append(out, fmt.Sprintf("%s failed %s", field, tag))
	}
	sort.Strings(out)
	return out
}

// Var validates a single value against a tag expression such as "oneof=a b".
func Var(value any, tag string) bool {
	return validate.Var(value, tag) == nil
}
