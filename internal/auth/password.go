package auth

import "golang.org/x/crypto/bcrypt"

// FakeHash is a valid-format bcrypt hash compared against when no real hash
// exists, so login latency does not reveal whether an email is registered.
const FakeHash = "$2a$10$Z55yvUWYa6mWIVa/4YpBz.1w17gMjjaQ8oCSI1FScahPGM2mZP4Xa"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// BurnComparison runs a bcrypt comparison against FakeHash and discards the
// result. Called on the failure paths that have no stored hash to compare.
func BurnComparison(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(FakeHash), []byte(plain))
}
