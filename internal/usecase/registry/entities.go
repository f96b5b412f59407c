package registry

type RegisterInput struct {
	Caller   string `json:"-"`
	Identity string `json:"identity" validate:"required,hex32"`
	Role     string `json:"role" validate:"required,role"`
}

type ChangeStatusInput struct {
	Caller     string   `json:"-"`
	Identities []string `json:"identities" validate:"required,min=1,dive,hex32"`
	Role       string   `json:"role" validate:"required,role"`
	Active     bool     `json:"active"`
}

type RegistrationDTO struct {
	Identity string `json:"identity"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}
