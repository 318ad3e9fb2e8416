package auth

import (
	"net/http"

	"github.com/brainboyai/tiny-tutor-api/internal/config"
)

// CookieName is the cookie browser clients may carry the token in instead of
// an Authorization header.
const CookieName = "jwt"

// SessionCookie holds the attributes the token cookie was issued with. A
// browser only drops a cookie when the clearing Set-Cookie matches them.
type SessionCookie struct {
	Domain string
	Secure bool
}

type LogoutResponse struct {
	Message       string `json:"message"`
	ClearedCookie bool   `json:"cleared_cookie"`
}

type Handler struct {
	cookie SessionCookie
}

func NewHandler(cookie SessionCookie) *Handler {
	return &Handler{cookie: cookie}
}

// Logout expires the session cookie. Bearer tokens are stateless and simply
// dropped by the client.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	_, err := r.Cookie(CookieName)
	hadCookie := err == nil

	sameSite := http.SameSiteLaxMode
	if h.cookie.Secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite,
	})

	config.WithContext(r.Context()).WithField("had_cookie", hadCookie).Info("Session cookie cleared")
	config.JSON(w, http.StatusOK, LogoutResponse{Message: "logged out", ClearedCookie: hadCookie})
}
