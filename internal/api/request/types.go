package request

// SignupRequest is the request body for creating an account
type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SelectLocationRequest is the request body for playing a location card
type SelectLocationRequest struct {
	Card string `json:"card"`
}
