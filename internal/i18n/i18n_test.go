package i18n

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newLocaleContext(t *testing.T, query, acceptLanguage string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/v1/products"+query, nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	return c
}

func TestResolveLocale(t *testing.T) {
	cases := []struct {
		name           string
		query          string
		acceptLanguage string
		want           string
	}{
		{"query wins", "?locale=en", "tr-TR,tr;q=0.9", LocaleEN},
		{"header fallback", "", "en-US,en;q=0.8", LocaleEN},
		{"header weighted turkish", "", "tr-TR,tr;q=0.9,en;q=0.5", LocaleTR},
		{"unsupported falls back to default", "?locale=de", "de-DE", DefaultLocale},
		{"empty falls back to default", "", "", DefaultLocale},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newLocaleContext(t, tc.query, tc.acceptLanguage)
			if got := ResolveLocale(c); got != tc.want {
				t.Fatalf("locale want %s got %s", tc.want, got)
			}
		})
	}
}

func TestResolveLocaleCachesInContext(t *testing.T) {
	c := newLocaleContext(t, "?locale=en", "")
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("first resolve want en got %s", got)
	}
	// 第二次读取命中上下文缓存，不再解析请求
	c.Request = httptest.NewRequest("GET", "/api/v1/products?locale=tr", nil)
	if got := ResolveLocale(c); got != LocaleEN {
		t.Fatalf("cached resolve want en got %s", got)
	}
}

func TestTranslateFallsBackToEnglishThenKey(t *testing.T) {
	if got := T(LocaleTR, "error.bad_request"); got != "Geçersiz istek" {
		t.Fatalf("tr message want Geçersiz istek got %s", got)
	}
	if got := T("de", "error.bad_request"); got != "Invalid request" {
		t.Fatalf("unknown locale want english fallback got %s", got)
	}
	if got := T(LocaleTR, "error.not_in_catalog"); got != "error.not_in_catalog" {
		t.Fatalf("unknown key want key echo got %s", got)
	}
}

func TestSprintfAppliesArgs(t *testing.T) {
	got := Sprintf(LocaleEN, "error.password_min_length", 8)
	if got != "Password must be at least 8 characters" {
		t.Fatalf("formatted message want min-length text got %s", got)
	}
}
