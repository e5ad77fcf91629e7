package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/box73oficina/api-embaixador/internal/apperr"
)

var validate = validator.New()

func init() {
	// tag "cpf" disponível para qualquer DTO
	_ = validate.RegisterValidation("cpf", func(fl validator.FieldLevel) bool {
		return ValidarCPF(fl.Field().String())
	})
}

// ValidarStruct aplica as tags validate do DTO e devolve um erro de
// validação de domínio com o primeiro campo rejeitado.
func ValidarStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if erros, ok := err.(validator.ValidationErrors); ok && len(erros) > 0 {
		e := erros[0]
		return apperr.Validacao(fmt.Sprintf("campo %s inválido (%s)", e.Field(), e.Tag()))
	}
	return apperr.Validacao("payload inválido")
}
