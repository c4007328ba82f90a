package validator

import (
	"context"
	"net"
	"net/url"
	"regexp"
	"time"

	"github.com/asaskevich/govalidator"
	"golang.org/x/net/idna"
)

// syntacticURL requires an optional http(s) scheme, dot separated
// hostname labels and an optional path. Queries and ports are rejected.
var syntacticURL = regexp.MustCompile(`^(https?://)?([\w-]+\.)+[\w-]+(/[\w-]*)*$`)

// SyntacticPolicy accepts URLs matching a fixed pattern.
// It never performs I/O, so unreachable hosts are accepted.
type SyntacticPolicy struct{}

var _ Policy = SyntacticPolicy{}

// Accept implements Policy.
func (SyntacticPolicy) Accept(_ context.Context, rawURL string) bool {
	return syntacticURL.MatchString(rawURL)
}

// hostProfile maps hostnames the way browsers do before a lookup:
// lowercased, internationalized labels in punycode, underscores allowed.
var hostProfile = idna.New(
	idna.MapForLookup(),
	idna.Transitional(false),
	idna.StrictDomainName(false),
)

// Resolver resolves hostnames. *net.Resolver implements it.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// SemanticPolicy accepts absolute URLs whose hostname resolves.
type SemanticPolicy struct {
	resolver Resolver
	timeout  time.Duration
}

var _ Policy = (*SemanticPolicy)(nil)

// NewSemanticPolicy returns a policy resolving hostnames with r.
// A zero timeout leaves the lookup bounded only by the caller's context.
func NewSemanticPolicy(r Resolver, timeout time.Duration) *SemanticPolicy {
	return &SemanticPolicy{resolver: r, timeout: timeout}
}

// Accept implements Policy. Unparsable URLs and failed lookups are rejected.
func (p *SemanticPolicy) Accept(ctx context.Context, rawURL string) bool {
	if !govalidator.IsRequestURL(rawURL) {
		return false
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	host := u.Hostname()
	if host == "" {
		return false
	}
	if net.ParseIP(host) == nil {
		if host, err = hostProfile.ToASCII(host); err != nil {
			return false
		}
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	_, err = p.resolver.LookupHost(ctx, host)
	return err == nil
}
