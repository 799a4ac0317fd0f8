package security

import (
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"hash"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

var ErrMismatch = errors.New("password mismatch")

// Префикс хешей werkzeug, которые лежат в старой базе
const legacyPrefix = "pbkdf2:"

type PasswordHasher struct {
	cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcrypt.DefaultCost}
}

// NewPasswordHasherWithCost - для тестов, где DefaultCost слишком медленный.
func NewPasswordHasherWithCost(cost int) *PasswordHasher {
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	return string(bytes), err
}

// prehash снимает лимит bcrypt в 72 байта: в bcrypt уходит base64(sha256(password)), 44 байта.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// Compare принимает bcrypt и werkzeug "pbkdf2:<alg>:<iter>$<salt>$<hex>".
func (h *PasswordHasher) Compare(hashed, password string) error {
	if strings.HasPrefix(hashed, legacyPrefix) {
		return compareLegacy(hashed, password)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), prehash(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}

// NeedsRehash - true для старых хешей, их переводим на bcrypt после входа.
func (h *PasswordHasher) NeedsRehash(hashed string) bool {
	return strings.HasPrefix(hashed, legacyPrefix)
}

func compareLegacy(hashed, password string) error {
	parts := strings.Split(hashed, "$")
	if len(parts) != 3 {
		return errors.New("malformed legacy hash")
	}
	method := strings.Split(parts[0], ":")
	if len(method) != 3 {
		return errors.New("legacy hash without iteration count")
	}

	var fn func() hash.Hash
	switch method[1] {
	case "sha256":
		fn = sha256.New
	case "sha512":
		fn = sha512.New
	default:
		return errors.New("unsupported legacy hash algorithm " + method[1])
	}
	iter, err := strconv.Atoi(method[2])
	if err != nil || iter <= 0 {
		return errors.New("malformed legacy iteration count")
	}
	want, err := hex.DecodeString(parts[2])
	if err != nil {
		return errors.New("malformed legacy digest")
	}

	got := pbkdf2.Key([]byte(password), []byte(parts[1]), iter, fn().Size(), fn)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}
