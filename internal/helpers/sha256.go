package helpers

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

func SHA256(input string) string {
	return SHA256Bytes([]byte(input))
}

func SHA256Bytes(input []byte) string {
	sum := sha256.Sum256(input)
	return hex.EncodeToString(sum[:])
}

func SHA256Reader(reader io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, reader); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ShortID truncates a hex checksum to n characters, used for rule IDs and source URLs.
func ShortID(checksum string, n int) string {
	if n <= 0 || len(checksum) <= n {
		return checksum
	}
	return checksum[:n]
}
