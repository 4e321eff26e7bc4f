package chat

import (
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/eduforum/core"
)

// Roles
const (
	RoleStudent = "STUDENT"
	RoleTeacher = "TEACHER"
	RoleAdmin   = "ADMIN"
)

var Roles = []string{RoleStudent, RoleTeacher, RoleAdmin}

// IsRole reports whether role is one of Roles.
func IsRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Turn is one persisted message/response pair.
type Turn struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userid,omitempty" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Response  string    `json:"response" db:"response"`
	Category  string    `json:"category" db:"category"`
	Timestamp time.Time `json:"timestamp" db:"created_at"` // UTC
}

// NewMessage is a message sent to the chatbot.
type NewMessage struct {
	Message *string `json:"message" validate:"required"`
	UserID  string  `json:"-"`
}

func (nm NewMessage) Validate(validate *validator.Validate, maxLen int) error {
	if err := validate.Struct(nm); err != nil {
		return err
	}
	if maxLen > 0 && utf8.RuneCountInString(*nm.Message) > maxLen {
		return core.NewValidationError(nil, core.FieldError{Field: "message", Error: "message is too long"})
	}
	return nil
}

// HistoryFilter selects the turns of a user, newest first.
type HistoryFilter struct {
	UserID string `param:"userId" validate:"required,userid"`
	Limit  int    `query:"limit" validate:"min=0"`
}

func (hf *HistoryFilter) Validate(validate *validator.Validate) error {
	hf.UserID = core.CleanString(hf.UserID)
	return validate.Struct(hf)
}

// Clean bounds Limit to [1, max]; 0 means max.
func (hf *HistoryFilter) Clean(max int) {
	if hf.Limit <= 0 || hf.Limit > max {
		hf.Limit = max
	}
}
