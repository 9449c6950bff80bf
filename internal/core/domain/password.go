package domain

import (
	"crypto/md5" //nolint:gosec // the Directory API accepts MD5 as a password hash function
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// HashFunctionMD5 is the hashFunction value sent with an MD5-hashed password.
const HashFunctionMD5 = "MD5"

// MinPasswordLength is the shortest password Google Workspace accepts.
const MinPasswordLength = 8

const (
	lowerChars  = "abcdefghijkmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars  = "23456789"
	symbolChars = "!@#$%^&*-_=+?"
)

// HashPasswordMD5 returns the lowercase hex MD5 digest of password.
func HashPasswordMD5(password string) string {
	sum := md5.Sum([]byte(password)) //nolint:gosec // required wire format
	return hex.EncodeToString(sum[:])
}

// GeneratePassword returns a random password with at least one lower, upper,
// digit and symbol character. Lengths below MinPasswordLength are raised to it.
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	classes := []string{lowerChars, upperChars, digitChars, symbolChars}
	all := lowerChars + upperChars + digitChars + symbolChars

	out := make([]byte, length)
	for i := range out {
		set := all
		if i < len(classes) {
			set = classes[i]
		}
		c, err := randomChar(set)
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		out[i] = c
	}

	// Shuffle so the guaranteed classes are not always in front.
	for i := len(out) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", fmt.Errorf("generate password: %w", err)
		}
		j := int(n.Int64())
		out[i], out[j] = out[j], out[i]
	}

	return string(out), nil
}

func randomChar(set string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
	if err != nil {
		return 0, err
	}
	return set[n.Int64()], nil
}
