package provisioning

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const base36 = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateTempPassword returns a one-time password of the form
// "Galo-xxxx-xxxx!". Returned to the admin exactly once; never persisted in
// plaintext and never logged.
func GenerateTempPassword() (string, error) {
	a, err := randomChunk(4)
	if err != nil {
		return "", err
	}
	b, err := randomChunk(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Galo-%s-%s!", a, b), nil
}

func randomChunk(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(base36)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = base36[idx.Int64()]
	}
	return string(out), nil
}
