package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateSecureOTP returns a numeric code of the given length with every digit
// drawn uniformly from crypto/rand.
func GenerateSecureOTP(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid otp length %d", length)
	}

	ten := big.NewInt(10)
	buffer := make([]byte, length)
	for i := range buffer {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		buffer[i] = byte('0' + n.Int64())
	}

	return string(buffer), nil
}

// HashOTP is the form a code is stored in.
func HashOTP(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func CompareOTP(code, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(HashOTP(code)), []byte(hash)) == 1
}
