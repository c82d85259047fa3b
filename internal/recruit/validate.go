package recruit

import "github.com/go-playground/validator/v10"

var validate = validator.New()

type uploadRequest struct {
	Filename    string `validate:"required"`
	ContentType string `validate:"required"`
	HasBody     bool   `validate:"eq=true"`
}
