package pki

import (
	"crypto/rsa"
	"time"
)

// Certificate is a signed record binding a name, public key, issuer, and
// validity window. IssuerCert recurses toward a root whose IssuerName is
// empty and IssuerCert is nil.
type Certificate struct {
	Name       string
	IssuerName string
	IssuerCert *Certificate
	PublicKey  *rsa.PublicKey
	ValidFrom  time.Time
	ValidTo    time.Time
	IsCA       bool
	Signature  []byte
}

// Equal reports whether two certificates are structurally identical,
// including their signature bytes. Root-set and revocation-list membership
// is defined by this equality, not by pointer identity.
func (c *Certificate) Equal(other *Certificate) bool {
	if c == nil || other == nil {
		return c == other
	}
	a, err := c.canonicalBytes(false)
	if err != nil {
		return false
	}
	b, err := other.canonicalBytes(false)
	if err != nil {
		return false
	}
	return string(a) == string(b)
}

// containsCertificate reports whether target is structurally equal to any
// member of list.
func containsCertificate(list []*Certificate, target *Certificate) bool {
	for _, c := range list {
		if c.Equal(target) {
			return true
		}
	}
	return false
}
