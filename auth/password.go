package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a valid bcrypt hash compared against when login hits an
// unknown email, so that path costs a hash too and timing does not reveal
// whether the email exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// hashPassword generates a bcrypt hash of the plain-text password.
func hashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// checkPasswordHash compares a bcrypt hash with a plain-text password.
// bcrypt's comparison is constant-time over the hash output.
func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
