package middleware

import (
	"net/http"

	goAccounts "github.com/atharvk9/goAccounts"
)

// SetSessionCookie writes the session token as an HttpOnly cookie. In
// production the cookie is Secure with SameSite=None so cross-site frontends
// can carry it; outside production it falls back to SameSite=Lax over plain
// HTTP.
func SetSessionCookie(w http.ResponseWriter, cfg goAccounts.CookieConfig, token string) {
	http.SetCookie(w, sessionCookie(cfg, token, int(cfg.MaxAge.Seconds())))
}

// ClearSessionCookie expires the session cookie. It uses the same attribute
// set as [SetSessionCookie] so browsers match and drop the original cookie.
func ClearSessionCookie(w http.ResponseWriter, cfg goAccounts.CookieConfig) {
	http.SetCookie(w, sessionCookie(cfg, "", -1))
}

func sessionCookie(cfg goAccounts.CookieConfig, value string, maxAge int) *http.Cookie {
	name := cfg.Name
	if name == "" {
		name = "token"
	}
	path := cfg.Path
	if path == "" {
		path = "/"
	}

	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
	}

	if cfg.Production {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	} else {
		cookie.SameSite = http.SameSiteLaxMode
	}

	return cookie
}
