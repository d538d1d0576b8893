package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

const (
	singleUseTokenBytes = 20
	confirmExtendBytes  = 100
	confirmSeparator    = "."
)

// SingleUseToken is a freshly issued reset or confirmation token.
// Plain goes to the user; Hash and Expiry are persisted.
type SingleUseToken struct {
	Plain  string
	Hash   string
	Expiry time.Time
}

// TokenIssuer issues single-use tokens valid for TTL.
type TokenIssuer struct {
	TTL time.Duration
	now func() time.Time
}

func NewTokenIssuer(ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{TTL: ttl, now: time.Now}
}

// Issue generates a random hex token and its SHA-256 hash.
func (i *TokenIssuer) Issue() (SingleUseToken, error) {
	plain, err := randomHex(singleUseTokenBytes)
	if err != nil {
		return SingleUseToken{}, err
	}
	return SingleUseToken{Plain: plain, Hash: HashToken(plain), Expiry: i.now().Add(i.TTL)}, nil
}

// IssueConfirmation generates "<token>.<extension>". The whole value is hashed,
// so both segments must be presented back unchanged.
func (i *TokenIssuer) IssueConfirmation() (SingleUseToken, error) {
	head, err := randomHex(singleUseTokenBytes)
	if err != nil {
		return SingleUseToken{}, err
	}
	ext, err := randomHex(confirmExtendBytes)
	if err != nil {
		return SingleUseToken{}, err
	}
	plain := head + confirmSeparator + ext
	return SingleUseToken{Plain: plain, Hash: HashToken(plain), Expiry: i.now().Add(i.TTL)}, nil
}

// WellFormedConfirmation reports whether s has exactly two non-empty segments.
func WellFormedConfirmation(s string) bool {
	parts := strings.Split(s, confirmSeparator)
	return len(parts) == 2 && parts[0] != "" && parts[1] != ""
}

// HashToken is the deterministic one-way hash used to store and look up tokens.
func HashToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
