package globals

import "os"

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"

// JwtSecret signs and verifies operator session tokens. The POS issues no
// tokens itself; the auth provider and this service share the secret.
var JwtSecret = jwtSecret()

func jwtSecret() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("jlink_dev_secret")
}
