package billboard

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// ValidatePost normalizes and checks a new post.
func ValidatePost(p NewPost) (NewPost, error) {
	p = p.Normalize()
	if err := validatorInstance().Struct(p); err != nil {
		return p, newValidationError(err)
	}
	return p, nil
}

// ValidateResponse normalizes and checks a new reply.
func ValidateResponse(r NewResponse) (NewResponse, error) {
	r = r.Normalize()
	if err := validatorInstance().Struct(r); err != nil {
		return r, newValidationError(err)
	}
	return r, nil
}
