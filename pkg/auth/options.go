package auth

import (
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// TokenFunc produces realm, nonce and opaque tokens.
type TokenFunc func() string

type Options struct {
	User     string
	Password string

	Hasher   Hasher
	Verifier Verifier
	Tokens   TokenFunc

	// FailureRate and FailureBurst throttle rejected attempts per client
	// host. A zero rate, the default, disables throttling.
	FailureRate  rate.Limit
	FailureBurst int
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Tokens:   uuid.NewString,
		Hasher:   MD5Digest{},
		Verifier: MD5Digest{},
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Hasher == nil {
		opts.Hasher = MD5Digest{}
	}
	if opts.Verifier == nil {
		opts.Verifier = MD5Digest{}
	}
	if opts.Tokens == nil {
		opts.Tokens = uuid.NewString
	}
	if opts.FailureBurst <= 0 {
		opts.FailureBurst = 1
	}
	return opts
}

// WithCredentials sets the initial user and password. An empty user
// disables authentication.
func WithCredentials(user, password string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.User = user
		o.Password = password
	}
}

func WithHasher(h Hasher) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Hasher = h
	}
}

func WithVerifier(v Verifier) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Verifier = v
	}
}

func WithTokens(fn TokenFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Tokens = fn
	}
}

// WithFailureLimit throttles rejected attempts of each client host to r per
// second with the given burst. Pass 0 or rate.Inf to disable throttling.
func WithFailureLimit(r rate.Limit, burst int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FailureRate = r
		o.FailureBurst = burst
	}
}
