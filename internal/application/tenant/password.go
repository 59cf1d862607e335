package tenant

import (
	"crypto/rand"
	"math/big"
)

const (
	passwordLength   = 12
	passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
)

// GeneratePassword contraseña temporal de un solo uso (sin caracteres ambiguos como 0/O, 1/l).
func GeneratePassword() (string, error) {
	n := big.NewInt(int64(len(passwordAlphabet)))
	out := make([]byte, passwordLength)
	for i := range out {
		idx, err := rand.Int(rand.Reader, n)
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out), nil
}
