// Package validator gates both the write and the read path before they
// touch storage: it accepts or rejects submitted URLs and short codes.
package validator

import (
	"context"
	"fmt"
	"net"

	"github.com/KretovDmitry/shorturl/internal/config"
	"github.com/KretovDmitry/shorturl/internal/errs"
)

// Policy decides whether a submitted URL is acceptable.
type Policy interface {
	Accept(ctx context.Context, rawURL string) bool
}

// Validator checks submissions against a URL policy.
type Validator struct {
	policy Policy
}

// New returns a Validator using the given policy.
func New(policy Policy) (*Validator, error) {
	if policy == nil {
		return nil, fmt.Errorf("%w: policy", errs.ErrNilDependency)
	}
	return &Validator{policy: policy}, nil
}

// NewFromConfig returns a Validator with the configured policy.
// The semantic policy resolves hostnames with the default resolver.
func NewFromConfig(c config.Validator) (*Validator, error) {
	switch c.Policy {
	case config.PolicySyntactic:
		return New(SyntacticPolicy{})
	case config.PolicySemantic, "":
		return New(NewSemanticPolicy(net.DefaultResolver, c.DNSTimeout))
	default:
		return nil, fmt.Errorf("unsupported validation policy: %q", c.Policy)
	}
}

// SubmittedURL extracts the url field of a decoded request body.
// It reports false unless body is a mapping whose url value is a string.
func SubmittedURL(body any) (string, bool) {
	m, ok := body.(map[string]any)
	if !ok {
		return "", false
	}
	u, ok := m["url"].(string)
	return u, ok
}

// ValidateSubmission reports whether body carries a url field
// that passes the URL policy.
func (v *Validator) ValidateSubmission(ctx context.Context, body any) bool {
	u, ok := SubmittedURL(body)
	if !ok {
		return false
	}
	return v.policy.Accept(ctx, u)
}
