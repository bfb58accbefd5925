package auth

// indicates that a request carried no usable Authorization header
type InvalidHeaderError struct{}

func (e InvalidHeaderError) Error() string {
	return "Invalid authorization header"
}

// indicates that a bearer token failed verification or has expired
type InvalidTokenError struct{}

func (e InvalidTokenError) Error() string {
	return "Invalid or expired bearer token"
}

// indicates that the configured service secret is not a valid fernet key
type InvalidKeyError struct {
	Message string
}

func (e InvalidKeyError) Error() string {
	return "Invalid service secret: " + e.Message
}
