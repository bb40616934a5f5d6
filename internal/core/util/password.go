package util

import "golang.org/x/crypto/bcrypt"

// HashCost is lowered by tests to keep hashing fast.
var HashCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)

	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

func ComparePassword(password, hashed string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
}
