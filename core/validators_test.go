package core

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type validatedReq struct {
	Name   *string `json:"name" validate:"required"`
	UserID string  `param:"userId" validate:"userid"`
	Limit  int     `query:"limit" validate:"min=0"`
}

func TestInitValidators(t *testing.T) {
	validate := validator.New()
	translator := NewTranslator()
	InitValidators(validate, translator)

	name := "ok"
	tests := []struct {
		name string
		req  validatedReq
		want map[string]string
	}{
		{name: "valid", req: validatedReq{Name: &name, UserID: "user_1-a"}},
		{name: "required", req: validatedReq{UserID: "u"}, want: map[string]string{"name": "this field is required"}},
		{
			name: "userid", req: validatedReq{Name: &name, UserID: "u 1"},
			want: map[string]string{"userId": "only alphanumeric characters, dashes and underscores are allowed"},
		},
		{name: "min", req: validatedReq{Name: &name, UserID: "u", Limit: -1}, want: map[string]string{"limit": "limit must be 0 or greater"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.req)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var vErrs validator.ValidationErrors
			require.True(t, errors.As(err, &vErrs), "Struct() error = %v", err)
			assert.Equal(t, tt.want, TranslateErrors(vErrs, translator))
		})
	}
}

func TestValidationError(t *testing.T) {
	err := errors.Wrap(NewValidationError(nil, FieldError{Field: "message", Error: "message is too long"}), "replying")
	assert.True(t, IsValidationError(err))
	assert.Equal(t, "replying: message: message is too long", err.Error())

	err = NewValidationError(errors.New("invalid credentials"))
	assert.Equal(t, "invalid credentials", err.Error())

	assert.False(t, IsValidationError(errors.New("db down")))
}

func TestShutdownError(t *testing.T) {
	err := errors.Wrap(NewShutdownError("integrity issue"), "inserting")
	assert.True(t, IsShutdown(err))
	assert.False(t, IsShutdown(errors.New("integrity issue")))
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Hello", CleanString("  Hello\t"))
	assert.Equal(t, "hello", CleanString(" HeLLo ", true))
}
