package domain

// Registration is a customer sign-up request as sent to the backend.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// AdminRegistration is an administrator sign-up request.
type AdminRegistration struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
}

// Credentials is a login attempt.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Remember bool   `json:"remember"`
}

// RegistrationForm is the sign-up form including the confirmation field that
// never leaves this service.
type RegistrationForm struct {
	Username        string `json:"username"        validate:"required"`
	Password        string `json:"password"        validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Email           string `json:"email"           validate:"required,email"`
	FullName        string `json:"fullName"        validate:"required"`
	Address         string `json:"address"`
	Phone           string `json:"phone"           validate:"omitempty,phone"`
}

// Registration strips the form down to what the backend accepts.
func (f RegistrationForm) Registration() Registration {
	return Registration{
		Username: f.Username,
		Password: f.Password,
		Email:    f.Email,
		FullName: f.FullName,
		Address:  f.Address,
		Phone:    f.Phone,
	}
}
