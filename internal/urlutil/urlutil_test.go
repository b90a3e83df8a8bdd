package urlutil

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestBuildAbsolute_GeneratesExpectedURLs(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := fmt.Sprintf(
			"https://%s.%s",
			rapid.StringMatching(`[a-z]{3,12}`).Draw(rt, "baseHost"),
			rapid.StringMatching(`[a-z]{2,8}`).Draw(rt, "baseTld"),
		)
		if rapid.Bool().Draw(rt, "baseHasSlash") {
			base += "/"
		}

		pathKind := rapid.IntRange(0, 3).Draw(rt, "pathKind")
		var path string
		switch pathKind {
		case 0:
			path = ""
		case 1:
			path = "/" + rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, "relativePath")
		case 2:
			path = "collections/" + rapid.StringMatching(`[a-z]{1,12}`).Draw(rt, "nestedPath")
		case 3:
			path = fmt.Sprintf(
				"https://%s.%s/login",
				rapid.StringMatching(`[a-z]{3,10}`).Draw(rt, "absoluteHost"),
				rapid.StringMatching(`[a-z]{2,6}`).Draw(rt, "absoluteTld"),
			)
		}

		got := BuildAbsolute(base, path)
		var want string
		switch {
		case path == "":
			want = strings.TrimRight(base, "/")
		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			want = path
		case strings.HasPrefix(path, "/"):
			want = strings.TrimRight(base, "/") + path
		default:
			want = strings.TrimRight(base, "/") + "/" + path
		}

		if got != want {
			rt.Fatalf("BuildAbsolute mismatch: got=%s want=%s", got, want)
		}
		parsed, err := url.Parse(got)
		if err != nil {
			rt.Fatalf("BuildAbsolute returned invalid URL %s: %v", got, err)
		}
		if parsed.Scheme == "" {
			rt.Fatalf("expected absolute URL with scheme, got=%s", got)
		}
	})
}

func TestBuildAbsolute_TrailingSlashBase(t *testing.T) {
	t.Parallel()
	if got := BuildAbsolute("https://uae.thehorecastore.co/", "/login"); got != "https://uae.thehorecastore.co/login" {
		t.Fatalf("unexpected URL: %s", got)
	}
}

func TestIsAbsolute(t *testing.T) {
	t.Parallel()
	cases := map[string]bool{
		"https://www.thehorecastore.com": true,
		"http://localhost:8080/":         true,
		"/login":                         false,
		"ftp://example.com":              false,
		"":                               false,
	}
	for raw, want := range cases {
		if got := IsAbsolute(raw); got != want {
			t.Fatalf("IsAbsolute(%q) = %v want %v", raw, got, want)
		}
	}
}

func TestSameOriginAndHasPath(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		host := rapid.StringMatching(`[a-z]{3,12}\.[a-z]{2,4}`).Draw(rt, "host")
		path := "/" + rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "path")
		base := "https://" + host + "/"

		if !SameOrigin(base, "https://"+strings.ToUpper(host)+path) {
			rt.Fatalf("expected same origin for %s", host)
		}
		if SameOrigin(base, "http://"+host+path) {
			rt.Fatalf("scheme change must not be same origin")
		}
		if !HasPath("https://"+host+path+"?x=1", path) {
			rt.Fatalf("expected path %s", path)
		}
	})
}
