package auth

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AccessToken is a signed admin JWT along with its expiry. The token is
// stateless: signature plus expiry are the only validity checks and there
// is no revocation list.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// AdminCredentials carries the injected admin credential pair. When Hash
// is set it takes precedence over the plaintext Password and is verified
// with bcrypt; the plaintext path exists for local development and is
// compared in constant time.
type AdminCredentials struct {
	Username string
	Password string
	Hash     string
}

// IssueAdminToken validates the presented username/password against the
// configured credentials and, on match, mints an HS256 JWT asserting the
// admin identity for ttlMin minutes. There are no side effects beyond the
// returned token. A mismatch fails with ErrInvalidCredentials.
func IssueAdminToken(secret string, creds AdminCredentials, username, password string, ttlMin int) (AccessToken, error) {
	if !creds.match(username, password) {
		return AccessToken{}, ErrInvalidCredentials
	}
	return signToken(secret, username, time.Duration(ttlMin)*time.Minute)
}

// VerifyAdminToken decodes the token, verifies the HMAC signature and the
// expiry, and returns the subject (admin username). Malformed, badly
// signed, expired or subject-less tokens all fail with ErrUnauthenticated.
// The check is purely cryptographic; no storage is consulted.
func VerifyAdminToken(secret, raw string) (string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnauthenticated
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", ErrUnauthenticated
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrUnauthenticated
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrUnauthenticated
	}
	return sub, nil
}

func (c AdminCredentials) match(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) == 1
	if c.Hash != "" {
		return userOK && bcrypt.CompareHashAndPassword([]byte(c.Hash), []byte(password)) == nil
	}
	passOK := subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1
	return userOK && passOK
}

// signToken builds and signs the JWT with standard sub/iat/exp claims. A
// non-positive ttl yields an already-expired token, which tests rely on.
func signToken(secret, subject string, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
