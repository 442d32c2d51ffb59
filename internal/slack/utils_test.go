package slack

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseCaptions(t *testing.T) {
	cases := []struct {
		text      string
		wantText0 string
		wantText1 string
	}{
		{"Hello:World", "Hello", "World"},
		{" spaced : out ", " spaced ", " out "},
		{"no separator here", "no separator here", ""},
		{"a:b:c", "a", "b"},
		{"http://example.com", "http", "//example.com"},
		{":bottom only", "", "bottom only"},
		{"top only:", "top only", ""},
	}

	for _, tc := range cases {
		text0, text1 := ParseCaptions(tc.text)
		if text0 != tc.wantText0 || text1 != tc.wantText1 {
			t.Errorf("ParseCaptions(%q) = %q, %q; want %q, %q", tc.text, text0, text1, tc.wantText0, tc.wantText1)
		}
	}
}

func TestParseImageID(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/", "fallback"},
		{"/42", "42"},
		{"/42/", "42"},
	}

	for _, tc := range cases {
		var got string
		mux := Routes(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = ParseImageID(r, "fallback")
		}))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tc.path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("POST %s status = %d; want 200", tc.path, rec.Code)
		}
		if got != tc.want {
			t.Errorf("ParseImageID(%s) = %q; want %q", tc.path, got, tc.want)
		}
	}
}

func TestRoutes_RejectsOtherShapes(t *testing.T) {
	mux := Routes(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/42/extra", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("POST /42/extra status = %d; want 404", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET / status = %d; want 405", rec.Code)
	}
}
