package contract

type CreateUserRequest struct {
	Username          string `json:"username" validate:"required,min=2,max=80"`
	Email             string `json:"email" validate:"required,email,max=100"`
	TemporaryPassword string `json:"temporary_password" validate:"required,min=8,max=64"`
	Perms             *int64 `json:"permissions" validate:"omitempty,min=0"`
}

type UserLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=64"`
}

type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=2,max=80"`
	Perms    *int64  `json:"permissions" validate:"omitempty,min=0"`
	Active   *bool   `json:"active"`
}

type UserResponse struct {
	ID        int64  `json:"id,string"`
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	Perms     int64  `json:"permissions"`
	Active    *bool  `json:"active,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type UserLoginResponse struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}
