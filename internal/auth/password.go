package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt digest of the plain-text password.
// We MUST NOT store the plain-text password anywhere.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored digest.
// bcrypt's comparison is constant-time internally, so a wrong password
// and a malformed digest are indistinguishable to the caller.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
