package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/time/rate"
)

func sequence() TokenFunc {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tok%d", n)
	}
}

func challenge(t *testing.T, realm *Realm) string {
	t.Helper()
	rec := httptest.NewRecorder()
	realm.Challenge(rec)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	header := rec.Header().Get("WWW-Authenticate")
	if header == "" {
		t.Fatalf("expected WWW-Authenticate header")
	}
	return header
}

func signedRequest(t *testing.T, header, method, target, user, password string) *http.Request {
	t.Helper()
	value, err := MD5Digest{}.Respond(header, method, target, user, password)
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", value)
	return req
}

func TestDisabledRealmAcceptsEverything(t *testing.T) {
	realm := NewRealm()
	if realm.Enabled() {
		t.Fatalf("expected realm without user to be disabled")
	}
	if !realm.Authenticate(httptest.NewRequest(http.MethodPost, "/settings/set", nil)) {
		t.Fatalf("expected unauthenticated request to pass when no user is configured")
	}
}

func TestChallengeHeader(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"), WithTokens(sequence()))

	got := challenge(t, realm)
	want := `Digest realm="tok1", qop="auth", nonce="tok3", opaque="tok2"`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("challenge mismatch (-want +got):\n%s", diff)
	}
}

func TestAuthenticateRotatesRealm(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"))
	before := realm.Token()

	req := signedRequest(t, challenge(t, realm), http.MethodPost, "/settings/set", "admin", "secret")
	if !realm.Authenticate(req) {
		t.Fatalf("expected valid credentials to authenticate")
	}
	if realm.Token() == before {
		t.Fatalf("expected realm to rotate after success")
	}
	if realm.Authenticate(req) {
		t.Fatalf("expected replayed credentials to fail after rotation")
	}
}

func TestAuthenticateRejects(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"))
	header := challenge(t, realm)

	cases := []struct {
		name string
		req  *http.Request
	}{
		{name: "no header", req: httptest.NewRequest(http.MethodPost, "/settings/set", nil)},
		{name: "wrong password", req: signedRequest(t, header, http.MethodPost, "/settings/set", "admin", "nope")},
		{name: "wrong user", req: signedRequest(t, header, http.MethodPost, "/settings/set", "root", "secret")},
		{name: "basic scheme", req: func() *http.Request {
			r := httptest.NewRequest(http.MethodPost, "/settings/set", nil)
			r.SetBasicAuth("admin", "secret")
			return r
		}()},
		{name: "uri mismatch", req: func() *http.Request {
			r := signedRequest(t, header, http.MethodPost, "/reboot", "admin", "secret")
			r.URL.Path = "/settings/set"
			r.RequestURI = "/settings/set"
			return r
		}()},
	}

	before := realm.Token()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if realm.Authenticate(tc.req) {
				t.Fatalf("expected rejection")
			}
		})
	}
	if realm.Token() != before {
		t.Fatalf("expected failures to keep the realm")
	}
}

func TestLegacyDigestWithoutQop(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"), WithTokens(sequence()))
	token := realm.Token()

	ha1 := MD5Digest{}.Hash("admin", token, "secret")
	resp := md5Hex(ha1 + ":n1:" + md5Hex("GET:/reboot"))
	req := httptest.NewRequest(http.MethodGet, "/reboot", nil)
	req.Header.Set("Authorization", fmt.Sprintf(`Digest username="admin", realm="%s", nonce="n1", uri="/reboot", response="%s"`, token, resp))

	if !realm.Authenticate(req) {
		t.Fatalf("expected legacy digest to authenticate")
	}
}

func TestConfigureRegenerates(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"))
	header := challenge(t, realm)
	req := signedRequest(t, header, http.MethodPost, "/settings/set", "admin", "secret")

	realm.Configure("admin", "secret")
	if realm.Authenticate(req) {
		t.Fatalf("expected credentials for the old realm to fail after Configure")
	}

	realm.Configure("", "")
	if !realm.Authenticate(req) || realm.Enabled() {
		t.Fatalf("expected clearing the user to disable authentication")
	}
}

func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/settings/set", nil)
	req.RemoteAddr = addr
	return req
}

func TestFailureLimiter(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"), WithFailureLimit(rate.Every(time.Hour), 2))
	noisy := requestFrom("10.0.0.66:4000")
	if !realm.Allow(noisy) || !realm.Allow(noisy) {
		t.Fatalf("expected burst to be allowed")
	}
	if realm.Allow(requestFrom("10.0.0.66:4001")) {
		t.Fatalf("expected limiter to throttle the same host after the burst")
	}
	if !realm.Allow(requestFrom("10.0.0.2:5000")) {
		t.Fatalf("expected another host to keep its own allowance")
	}

	unlimited := NewRealm(WithFailureLimit(rate.Inf, 0))
	for i := 0; i < 100; i++ {
		if !unlimited.Allow(noisy) {
			t.Fatalf("expected unlimited realm to always allow")
		}
	}
}

func TestFailureLimiterOffByDefault(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"))
	req := requestFrom("10.0.0.66:4000")
	for i := 0; i < 100; i++ {
		if !realm.Allow(req) {
			t.Fatalf("attempt %d throttled without a failure limit", i)
		}
	}
}

func TestAuthenticateResetsClientLimiter(t *testing.T) {
	realm := NewRealm(WithCredentials("admin", "secret"), WithFailureLimit(rate.Every(time.Hour), 1))
	if !realm.Allow(requestFrom("10.0.0.7:1")) {
		t.Fatalf("expected first failure to be allowed")
	}

	req := signedRequest(t, challenge(t, realm), http.MethodPost, "/settings/set", "admin", "secret")
	req.RemoteAddr = "10.0.0.7:2"
	if !realm.Authenticate(req) {
		t.Fatalf("expected valid credentials to authenticate")
	}
	if !realm.Allow(requestFrom("10.0.0.7:3")) {
		t.Fatalf("expected a successful login to restore the allowance")
	}
}

func TestParseParams(t *testing.T) {
	got := parseParams(`username="a,b", realm="r", nc=00000001, qop=auth, uri="/x?y=1,2"`)
	want := map[string]string{
		"username": "a,b",
		"realm":    "r",
		"nc":       "00000001",
		"qop":      "auth",
		"uri":      "/x?y=1,2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestRespondRejectsMalformedChallenge(t *testing.T) {
	for _, header := range []string{"", "Basic realm=x", `Digest qop="auth"`} {
		if _, err := (MD5Digest{}).Respond(header, http.MethodGet, "/", "u", "p"); err == nil {
			t.Fatalf("expected error for %q", header)
		}
	}
}
