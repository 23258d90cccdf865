package auth

import (
	"fmt"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// Realm guards mutating routes with digest authentication. The realm token
// is regenerated after every successful authentication and whenever the
// credentials change, so a captured digest only works once.
type Realm struct {
	mu sync.Mutex

	user     string
	password string
	token    string
	opaque   string
	digest   string

	hasher   Hasher
	verifier Verifier
	tokens   TokenFunc

	// Rejected attempts are throttled per client host. A nil map disables
	// throttling.
	failureRate  rate.Limit
	failureBurst int
	limiters     map[string]*rate.Limiter
}

// maxTrackedClients bounds the limiter map. When it is full the map is reset.
const maxTrackedClients = 256

// NewRealm creates a realm with a freshly generated token.
func NewRealm(fns ...OptionFn) *Realm {
	opts := NewOptions(fns...)
	r := &Realm{
		user:     opts.User,
		password: opts.Password,
		hasher:   opts.Hasher,
		verifier: opts.Verifier,
		tokens:   opts.Tokens,
	}
	if opts.FailureRate > 0 && opts.FailureRate != rate.Inf {
		r.failureRate = opts.FailureRate
		r.failureBurst = opts.FailureBurst
		r.limiters = make(map[string]*rate.Limiter)
	}
	r.regenerate()
	return r
}

// Configure replaces the credentials and regenerates the realm. An empty
// user disables authentication.
func (r *Realm) Configure(user, password string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.user = user
	r.password = password
	r.regenerate()
}

// Enabled reports whether credentials are configured.
func (r *Realm) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user != ""
}

// Token returns the current realm token.
func (r *Realm) Token() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// Authenticate reports whether req carries valid credentials for the current
// realm. It always succeeds when no user is configured. A success rotates the
// realm.
func (r *Realm) Authenticate(req *http.Request) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.user == "" {
		return true
	}
	if !r.verifier.Verify(req, r.user, r.token, r.digest) {
		return false
	}
	if r.limiters != nil {
		delete(r.limiters, clientKey(req))
	}
	r.regenerate()
	return true
}

// Allow records a rejected attempt by the client that sent req and reports
// whether another challenge may be issued to it. Other clients keep their
// own allowance.
func (r *Realm) Allow(req *http.Request) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.limiters == nil {
		return true
	}
	key := clientKey(req)
	limiter, ok := r.limiters[key]
	if !ok {
		if len(r.limiters) >= maxTrackedClients {
			clear(r.limiters)
		}
		limiter = rate.NewLimiter(r.failureRate, r.failureBurst)
		r.limiters[key] = limiter
	}
	return limiter.Allow()
}

func clientKey(req *http.Request) string {
	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return req.RemoteAddr
	}
	return host
}

// Challenge writes a 401 response asking for digest credentials in the
// current realm.
func (r *Realm) Challenge(w http.ResponseWriter) {
	r.mu.Lock()
	header := fmt.Sprintf(`Digest realm="%s", qop="auth", nonce="%s", opaque="%s"`, r.token, r.tokens(), r.opaque)
	r.mu.Unlock()

	w.Header().Set("WWW-Authenticate", header)
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

func (r *Realm) regenerate() {
	r.token = r.tokens()
	r.opaque = r.tokens()
	r.digest = ""
	if r.user != "" {
		r.digest = r.hasher.Hash(r.user, r.token, r.password)
	}
}
