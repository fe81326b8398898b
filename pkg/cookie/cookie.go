// Package cookie writes HMAC-signed cookies and one-shot flash messages
// that survive a post/redirect/get round trip.
package cookie

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrBadSecret = errors.New("cookie: secret must be 32+ bytes")
	ErrBadSig    = errors.New("cookie: invalid signature")
)

const (
	minSecretLen = 32
	flashPrefix  = "flash_"
)

// Manager signs and verifies cookies with one secret.
type Manager struct {
	secret   []byte
	path     string
	secure   bool
	sameSite http.SameSite
}

type Option func(*Manager)

func WithPath(path string) Option {
	return func(m *Manager) {
		if path != "" {
			m.path = path
		}
	}
}

// WithSecure marks cookies HTTPS-only.
func WithSecure(secure bool) Option {
	return func(m *Manager) { m.secure = secure }
}

// New returns a Manager signing with secret. An empty secret is replaced by
// a random one, so signed cookies do not outlive the process.
func New(secret string, opts ...Option) (*Manager, error) {
	key := []byte(secret)
	switch {
	case secret == "":
		key = make([]byte, minSecretLen)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	case len(key) < minSecretLen:
		return nil, ErrBadSecret
	}

	m := &Manager{secret: key, path: "/", sameSite: http.SameSiteLaxMode}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SetSigned stores value as base64(value).base64(hmac).
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, maxAge int) {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(value)) +
		"." + base64.RawURLEncoding.EncodeToString(m.sign([]byte(value)))
	http.SetCookie(w, m.cookie(name, encoded, maxAge))
}

func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if errors.Is(err, http.ErrNoCookie) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}

	rawValue, rawSig, ok := strings.Cut(c.Value, ".")
	if !ok {
		return "", ErrBadSig
	}
	value, err := base64.RawURLEncoding.DecodeString(rawValue)
	if err != nil {
		return "", ErrBadSig
	}
	sig, err := base64.RawURLEncoding.DecodeString(rawSig)
	if err != nil || !hmac.Equal(sig, m.sign(value)) {
		return "", ErrBadSig
	}
	return string(value), nil
}

func (m *Manager) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, m.cookie(name, "", -1))
}

// SetFlash stores value as JSON for the next request to read once.
func (m *Manager) SetFlash(w http.ResponseWriter, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.SetSigned(w, flashPrefix+key, string(data), 0)
	return nil
}

// Flash decodes the flash stored under key into dest and deletes it.
// A missing flash returns ErrNotFound; a tampered one is deleted and
// reported as ErrBadSig.
func (m *Manager) Flash(w http.ResponseWriter, r *http.Request, key string, dest any) error {
	name := flashPrefix + key
	raw, err := m.GetSigned(r, name)
	if errors.Is(err, ErrNotFound) {
		return err
	}
	m.Delete(w, name)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(raw), dest)
}

func (m *Manager) sign(value []byte) []byte {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write(value)
	return mac.Sum(nil)
}

func (m *Manager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     m.path,
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: m.sameSite,
	}
}
