package helper

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OrderCodeAlphabet leaves out I, O, 0 and 1 so codes read back unambiguously.
const (
	OrderCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	OrderCodeLength   = 6
)

func GenerateOrderCode() (string, error) {
	size := big.NewInt(int64(len(OrderCodeAlphabet)))
	code := make([]byte, OrderCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", fmt.Errorf("generate order code: %w", err)
		}
		code[i] = OrderCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
