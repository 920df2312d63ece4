// Package randompkg generates random test values: economy ids, player ids and amounts.
package randompkg

import (
	"crypto/rand"
	"math/big"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Intn returns a uniform random integer in [0, n) from crypto/rand.
func Intn(n int) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return v.Int64()
}

// String returns n random characters from [a-z0-9].
func String(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = idAlphabet[Intn(len(idAlphabet))]
	}

	return string(b)
}

// EconomyID returns an economy id that no other test uses.
func EconomyID() string {
	return "test-" + String(12)
}

// UUID returns a random player id.
func UUID() uuid.UUID {
	return uuid.New()
}

// MoneyAmount returns a random amount with two decimals in [min, max).
func MoneyAmount(min, max int) decimal.Decimal {
	cents := int64(min)*100 + Intn((max-min)*100)
	return decimal.New(cents, -2)
}
