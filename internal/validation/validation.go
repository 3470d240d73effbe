package validation

import (
	"errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// std backs jsonrpc param binding; gin keeps its own engine. Custom tags are
// registered on both so websocket and HTTP payloads share one vocabulary.
var std = validator.New()

func Struct(v any) error {
	return std.Struct(v)
}

func Var(field any, tag string) error {
	return std.Var(field, tag)
}

func MustRegister(tag string, fn validator.Func) {
	if err := Register(std, tag, fn); err != nil {
		panic(err)
	}
	if err := RegisterGin(tag, fn); err != nil {
		panic(err)
	}
}

func MustRegisterAlias(tag string, alias string) {
	RegisterAlias(std, tag, alias)
	if err := RegisterGinAlias(tag, alias); err != nil {
		panic(err)
	}
}

func Register(v *validator.Validate, tag string, fn validator.Func) error {
	return v.RegisterValidation(tag, fn)
}

func RegisterAlias(v *validator.Validate, tag string, alias string) {
	v.RegisterAlias(tag, alias)
}

func ginEngine() (*validator.Validate, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v, nil
	}
	return nil, errors.New("validator engine is not of type *validator.Validate")
}

func RegisterGin(tag string, fn validator.Func) error {
	v, err := ginEngine()
	if err != nil {
		return err
	}
	return Register(v, tag, fn)
}

func RegisterGinAlias(tag string, alias string) error {
	v, err := ginEngine()
	if err != nil {
		return err
	}
	RegisterAlias(v, tag, alias)
	return nil
}
