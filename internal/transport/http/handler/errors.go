package handler

const (
	errInternalServer     = "Internal server error"
	errTaskNotFound       = "Task not found"
	errEmailTaken         = "Email already registered"
	errInvalidCredentials = "Invalid email or password"
)
