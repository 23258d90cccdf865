package auth

import (
	"crypto/md5"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Hasher derives the stored credential digest for a user in a realm.
type Hasher interface {
	Hash(user, realm, password string) string
}

// Verifier checks a request's credentials against a stored digest.
type Verifier interface {
	Verify(r *http.Request, user, realm, digest string) bool
}

// ErrMalformedChallenge is returned when a WWW-Authenticate value cannot be
// answered.
var ErrMalformedChallenge = errors.New("auth: malformed digest challenge")

// MD5Digest implements RFC 2617 digest authentication with the MD5
// algorithm, both with qop=auth and in the legacy form without qop.
type MD5Digest struct{}

// Hash returns HA1 = MD5(user:realm:password).
func (MD5Digest) Hash(user, realm, password string) string {
	return md5Hex(user + ":" + realm + ":" + password)
}

// Verify checks the Authorization header of r against HA1.
func (MD5Digest) Verify(r *http.Request, user, realm, digest string) bool {
	header := r.Header.Get("Authorization")
	scheme, rest, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Digest") {
		return false
	}
	params := parseParams(rest)

	if params["username"] != user || params["realm"] != realm {
		return false
	}
	if params["nonce"] == "" || params["response"] == "" {
		return false
	}
	uri := params["uri"]
	if uri != r.URL.RequestURI() && uri != r.RequestURI {
		return false
	}
	if algo := params["algorithm"]; algo != "" && !strings.EqualFold(algo, "MD5") {
		return false
	}

	expected := response(digest, r.Method, uri, params)
	if expected == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(params["response"]))) == 1
}

// Respond answers a WWW-Authenticate challenge and returns the Authorization
// header value for method and uri. Clients and tests use it.
func (d MD5Digest) Respond(challenge, method, uri, user, password string) (string, error) {
	scheme, rest, ok := strings.Cut(challenge, " ")
	if !ok || !strings.EqualFold(scheme, "Digest") {
		return "", ErrMalformedChallenge
	}
	params := parseParams(rest)
	realm, nonce := params["realm"], params["nonce"]
	if realm == "" || nonce == "" {
		return "", ErrMalformedChallenge
	}

	answer := map[string]string{
		"username": user,
		"realm":    realm,
		"nonce":    nonce,
		"uri":      uri,
	}
	if strings.Contains(params["qop"], "auth") {
		answer["qop"] = "auth"
		answer["nc"] = "00000001"
		answer["cnonce"] = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	answer["response"] = response(d.Hash(user, realm, password), method, uri, answer)

	fields := []string{
		fmt.Sprintf(`username="%s"`, user),
		fmt.Sprintf(`realm="%s"`, realm),
		fmt.Sprintf(`nonce="%s"`, nonce),
		fmt.Sprintf(`uri="%s"`, uri),
		fmt.Sprintf(`response="%s"`, answer["response"]),
	}
	if answer["qop"] != "" {
		fields = append(fields, "qop=auth", "nc="+answer["nc"], fmt.Sprintf(`cnonce="%s"`, answer["cnonce"]))
	}
	if opaque := params["opaque"]; opaque != "" {
		fields = append(fields, fmt.Sprintf(`opaque="%s"`, opaque))
	}
	return "Digest " + strings.Join(fields, ", "), nil
}

func response(ha1, method, uri string, params map[string]string) string {
	ha2 := md5Hex(method + ":" + uri)
	switch qop := params["qop"]; qop {
	case "":
		return md5Hex(ha1 + ":" + params["nonce"] + ":" + ha2)
	case "auth":
		return md5Hex(strings.Join([]string{ha1, params["nonce"], params["nc"], params["cnonce"], qop, ha2}, ":"))
	default:
		return ""
	}
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// parseParams splits a comma separated list of key=value pairs. Values may be
// quoted and quoted values may contain commas.
func parseParams(s string) map[string]string {
	params := make(map[string]string)
	for len(s) > 0 {
		s = strings.TrimLeft(s, " \t,")
		eq := strings.IndexByte(s, '=')
		if eq < 0 {
			break
		}
		key := strings.ToLower(strings.TrimSpace(s[:eq]))
		s = s[eq+1:]

		var value string
		if strings.HasPrefix(s, `"`) {
			end := strings.IndexByte(s[1:], '"')
			if end < 0 {
				value, s = s[1:], ""
			} else {
				value, s = s[1:end+1], s[end+2:]
			}
		} else {
			end := strings.IndexByte(s, ',')
			if end < 0 {
				value, s = s, ""
			} else {
				value, s = s[:end], s[end:]
			}
			value = strings.TrimSpace(value)
		}
		params[key] = value
	}
	return params
}
