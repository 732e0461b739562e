// Package checksum provides content hashing for input and output files.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// CalculateHash computes the hex SHA-256 of data.
func CalculateHash(data []byte) string {
	hash := sha256.Sum256(data)

	return hex.EncodeToString(hash[:])
}

// FileHash computes the hex SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	return CalculateHash(data), nil
}

// Matches reports whether the file at path already holds exactly data.
// A missing file is not an error and never matches.
func Matches(path string, data []byte) (bool, error) {
	existing, err := FileHash(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}

		return false, err
	}

	return existing == CalculateHash(data), nil
}
