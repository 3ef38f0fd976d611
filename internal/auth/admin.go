package auth

import "crypto/subtle"

// Admin is the single principal of the system, configured via env vars.
// Credentials are compared verbatim, there is no hashing.
type Admin struct {
	Username string
	Password string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Check reports whether both username and password match. Both fields are
// always compared, so the caller cannot tell which one was wrong.
func (a *Admin) Check(creds Credentials) bool {
	usernameOK := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(a.Username)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(a.Password)) == 1
	return usernameOK && passwordOK
}
