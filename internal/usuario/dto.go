package usuario

type loginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type criarUsuarioRequest struct {
	Nome  string `json:"nome" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"omitempty,min=6"` // vazia gera senha temporária
	Papel string `json:"papel" validate:"required,oneof=ADMIN GERENTE ATENDENTE"`
}

type atualizarUsuarioRequest struct {
	Nome  *string `json:"nome"`
	Email *string `json:"email" validate:"omitempty,email"`
	Senha *string `json:"senha" validate:"omitempty,min=6"`
	Papel *string `json:"papel" validate:"omitempty,oneof=ADMIN GERENTE ATENDENTE"`
}
