package dupscan

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"hash/fnv"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/sha3"
)

// ErrInterrupted is returned when a digest is abandoned because the shutdown
// channel was closed mid-stream.
var ErrInterrupted = errors.New("digest interrupted by shutdown")

// HashAlgorithm represents a digest algorithm configuration
type HashAlgorithm struct {
	Name    string
	Size    int // digest output size in bytes
	NewFunc func() hash.Hash
}

// GetHashAlgorithm returns the hash algorithm configuration for the given name
func GetHashAlgorithm(name string) (*HashAlgorithm, error) {
	switch strings.ToLower(name) {
	case "xxh64":
		return &HashAlgorithm{
			Name:    "xxh64",
			Size:    8,
			NewFunc: func() hash.Hash { return xxhash.New() },
		}, nil
	case "fnv1a64":
		return &HashAlgorithm{
			Name:    "fnv1a64",
			Size:    8,
			NewFunc: func() hash.Hash { return fnv.New64a() },
		}, nil
	case "sha1":
		return &HashAlgorithm{
			Name:    "sha1",
			Size:    20,
			NewFunc: func() hash.Hash { return sha1.New() },
		}, nil
	case "sha256":
		return &HashAlgorithm{
			Name:    "sha256",
			Size:    32,
			NewFunc: func() hash.Hash { return sha256.New() },
		}, nil
	case "sha512":
		return &HashAlgorithm{
			Name:    "sha512",
			Size:    64,
			NewFunc: func() hash.Hash { return sha512.New() },
		}, nil
	case "sha3-256":
		return &HashAlgorithm{
			Name:    "sha3-256",
			Size:    32,
			NewFunc: func() hash.Hash { return sha3.New256() },
		}, nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %s (supported: %s)",
			name, strings.Join(SupportedHashAlgorithms(), ", "))
	}
}

// SupportedHashAlgorithms returns the names of all supported digest algorithms
func SupportedHashAlgorithms() []string {
	return []string{"xxh64", "fnv1a64", "sha1", "sha256", "sha512", "sha3-256"}
}

// HashFile calculates the fingerprint of a file using the specified algorithm
// and returns it as a hex string
func HashFile(filePath string, algorithm *HashAlgorithm) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := algorithm.NewFunc()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to hash file %s: %w", filePath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashFileInterruptible calculates the fingerprint of a file by streaming it
// in chunkSize reads, checking for shutdown signals between reads so a large
// file never delays cancellation. Memory use is O(chunkSize) independent of
// file size.
func HashFileInterruptible(filePath string, algorithm *HashAlgorithm, chunkSize int, shutdownChan <-chan struct{}) (string, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := algorithm.NewFunc()
	buffer := make([]byte, chunkSize)

	for {
		// Check for shutdown signal before each read
		select {
		case <-shutdownChan:
			return "", ErrInterrupted
		default:
		}

		n, err := file.Read(buffer)
		if n > 0 {
			hasher.Write(buffer[:n])
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read from file %s: %w", filePath, err)
		}
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// HashBytes calculates the fingerprint of a byte slice and returns it as a
// hex string. Mainly useful for tests and for deriving expected values.
func HashBytes(data []byte, algorithm *HashAlgorithm) string {
	hasher := algorithm.NewFunc()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}
