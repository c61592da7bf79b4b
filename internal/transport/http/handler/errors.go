package handler

const (
	errInternalServer    = "Internal server error"
	errEmailTaken        = "This email is already registered"
	errBadCredentials    = "Invalid email or password"
	errNeedsVerification = "Email not verified"
	errTokenInvalid      = "Token is invalid or expired"
	errUserNotFound      = "User not found"
	errAlreadyVerified   = "Email already verified"
	errWeakPassword      = "Password must be at least 6 characters"
)
