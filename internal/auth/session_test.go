package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/brainboyai/tiny-tutor-api/internal/auth"
)

func TestLogout(t *testing.T) {
	t.Run("ClearsCookieWithIssuedAttributes", func(t *testing.T) {
		h := auth.NewHandler(auth.SessionCookie{Domain: ".tinytutor.app", Secure: true})
		req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "token"})
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		cookies := rec.Result().Cookies()
		if len(cookies) != 1 {
			t.Fatalf("cookies = %d, want 1", len(cookies))
		}
		c := cookies[0]
		if c.Name != auth.CookieName || c.MaxAge >= 0 || c.Domain != "tinytutor.app" || !c.Secure || c.SameSite != http.SameSiteNoneMode {
			t.Errorf("cookie = %+v", c)
		}

		var resp auth.LogoutResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if !resp.ClearedCookie {
			t.Error("request carried a cookie")
		}
	})

	t.Run("LocalHTTPWithoutCookie", func(t *testing.T) {
		h := auth.NewHandler(auth.SessionCookie{})
		rec := httptest.NewRecorder()
		h.Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

		c := rec.Result().Cookies()[0]
		if c.Secure || c.SameSite != http.SameSiteLaxMode || c.Domain != "" {
			t.Errorf("cookie = %+v", c)
		}
		var resp auth.LogoutResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp.ClearedCookie {
			t.Error("request carried no cookie")
		}
	})
}
