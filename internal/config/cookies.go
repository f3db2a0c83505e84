package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

// Cookies carries player tokens split in two: the readable header.payload
// and an HttpOnly signature.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
	jwt      *JWT
}

func NewCookies(j *JWT) (*Cookies, error) {
	domain, err := requireEnv("COOKIES_DOMAIN")
	if err != nil {
		return nil, err
	}
	secure, err := requireEnv("COOKIES_SECURE")
	if err != nil {
		return nil, err
	}
	sameSite, err := requireEnv("COOKIES_SAMESITE")
	if err != nil {
		return nil, err
	}
	return &Cookies{
		Domain:   domain,
		Secure:   secure != "0",
		SameSite: parseSameSite(sameSite),
		jwt:      j,
	}, nil
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func (c *Cookies) cookie(name, value string, expires time.Time, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Path:     "/",
		Value:    value,
		Expires:  expires,
		HttpOnly: httpOnly,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
}

func (c *Cookies) Clear(w http.ResponseWriter) {
	for _, name := range []string{authCookie, signCookie} {
		ck := c.cookie(name, "delete", time.Time{}, name == signCookie)
		ck.MaxAge = -1
		http.SetCookie(w, ck)
	}
}

// Issue signs a fresh token for the player and sets both cookies.
func (c *Cookies) Issue(w http.ResponseWriter, playerId int64, username string) error {
	token, err := c.jwt.Sign(playerId, username)
	if err != nil {
		return fmt.Errorf("unable to sign token: %w", err)
	}
	header, payload, signature, err := splitToken(token)
	if err != nil {
		return err
	}
	expires := time.Now().Add(c.jwt.Lifetime())
	http.SetCookie(w, c.cookie(authCookie, header+"."+payload, expires, false))
	http.SetCookie(w, c.cookie(signCookie, signature, expires, true))
	return nil
}

func splitToken(token string) (header, payload, signature string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("malformed JWT token generated")
	}
	return parts[0], parts[1], parts[2], nil
}

func (c *Cookies) ParsePlayerClaims(r *http.Request) (*PlayerClaims, error) {
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return nil, err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return nil, err
	}
	return c.jwt.Parse(auth.Value + "." + sign.Value)
}
