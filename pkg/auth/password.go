package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/shashiranjanraj/storefront/config"
)

// HashPassword returns a bcrypt digest of plain + the configured static
// suffix. The suffix is applied before hashing, so digests are only
// comparable through CheckPassword.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(peppered(plain), config.BcryptCost())
	return string(b), err
}

// CheckPassword reports whether plain (with suffix applied) matches the
// stored digest.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), peppered(plain)) == nil
}

func peppered(plain string) []byte {
	return []byte(plain + config.PasswordHashSuffix())
}
