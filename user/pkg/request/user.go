package request

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

type Register struct {
	Name     string `validate:"required"       json:"name"`
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required,min=5" json:"password"`
}

func (r Register) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", r.Name).Str("email", r.Email).Str("password", "***")
}

func (r Register) MarshalJSON() ([]byte, error) {
	r.Password = "***"
	type R Register
	return json.Marshal(R(r))
}

type Login struct {
	Email    string `validate:"required,email" json:"email"`
	Password string `validate:"required"       json:"password"`
}

func (l Login) MarshalZerologObject(e *zerolog.Event) {
	e.Str("email", l.Email).Str("password", "***")
}

func (l Login) MarshalJSON() ([]byte, error) {
	l.Password = "***"
	type L Login
	return json.Marshal(L(l))
}

type UpdateUser struct {
	Name     string `validate:"required"        json:"name"`
	Email    string `validate:"required,email"  json:"email"`
	Password string `validate:"omitempty,min=5" json:"password"`
	IsAdmin  bool   `                           json:"isAdmin"`
}

func (u UpdateUser) MarshalZerologObject(e *zerolog.Event) {
	e.Str("name", u.Name).Str("email", u.Email).Bool("isAdmin", u.IsAdmin)
}

func (u UpdateUser) MarshalJSON() ([]byte, error) {
	if u.Password != "" {
		u.Password = "***"
	}
	type U UpdateUser
	return json.Marshal(U(u))
}
