package dto

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type RefreshDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type SessionUserDTO struct {
	Email  string `json:"email"`
	Nombre string `json:"name"`
}

type LoginResponseDTO struct {
	User   SessionUserDTO `json:"user"`
	Tokens TokenPairDTO   `json:"tokens"`
}
