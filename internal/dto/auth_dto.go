package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Correo   string `json:"correo"   validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CrearUsuarioRequest struct {
	Correo    string            `json:"correo"    validate:"required,email"`
	Nombre    string            `json:"nombre"    validate:"required,min=2,max=100"`
	Password  string            `json:"password"  validate:"required,min=8"`
	Farmacias map[string]string `json:"farmacias" validate:"required,min=1"`
	Permisos  []string          `json:"permisos"  validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID        string            `json:"id"`
	Correo    string            `json:"correo"`
	Nombre    string            `json:"nombre"`
	Farmacias map[string]string `json:"farmacias"`
	Permisos  []string          `json:"permisos"`
	Activo    bool              `json:"activo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}
