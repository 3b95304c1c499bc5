package pki

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/dor890/trustcore/internal/metrics"
)

// RootValidityYears is the validity window, in years, a root CA grants
// itself at construction.
const RootValidityYears = 10

// CertValidityYears is the conventional validity window, in years, for a
// leaf certificate; callers may supply any window via IssueCert.
const CertValidityYears = 1

// CA extends Entity with the ability to issue certificates and maintain a
// revocation list that auto-prunes expired entries on every mutation.
type CA struct {
	*Entity
	revoked []*Certificate
}

// NewCA generates a fresh CA identity and builds its root certificate, valid
// for RootValidityYears. The root has no issuer and carries no signature.
func NewCA(name string) (*CA, error) {
	entity, err := NewEntity(name)
	if err != nil {
		return nil, err
	}
	from, to := RootValidityWindow(time.Now())
	root := &Certificate{
		Name:      name,
		PublicKey: entity.PublicKey(),
		ValidFrom: from,
		ValidTo:   to,
		IsCA:      true,
	}
	entity.SetCert(root)
	return &CA{Entity: entity}, nil
}

// RootValidityWindow returns the [from, to] validity window a root CA
// grants itself, anchored at from truncated to whole seconds.
func RootValidityWindow(now time.Time) (time.Time, time.Time) {
	from := now.UTC().Truncate(time.Second)
	to := from.AddDate(RootValidityYears, 0, 0)
	return from, to
}

// CertValidityWindow returns the conventional [from, to] validity window for
// a leaf certificate issued starting at from.
func CertValidityWindow(now time.Time) (time.Time, time.Time) {
	from := now.UTC().Truncate(time.Second)
	to := from.AddDate(CertValidityYears, 0, 0)
	return from, to
}

// IssueCert builds a certificate for the given name and public key, embeds
// the CA's own certificate as the issuer record, and signs the result with
// the CA's private key.
func (ca *CA) IssueCert(name string, pub *rsa.PublicKey, validFrom, validTo time.Time, isCA bool) (*Certificate, error) {
	cert := &Certificate{
		Name:       name,
		IssuerName: ca.Name,
		IssuerCert: ca.Cert(),
		PublicKey:  pub,
		ValidFrom:  validFrom,
		ValidTo:    validTo,
		IsCA:       isCA,
	}

	digest, err := cert.digest(true)
	if err != nil {
		return nil, fmt.Errorf("pki: failed to digest certificate for %q: %w", name, err)
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, ca.privateKey, crypto.SHA256, digest)
	if err != nil {
		return nil, fmt.Errorf("pki: failed to sign certificate for %q: %w", name, err)
	}
	cert.Signature = sig

	metrics.PKICertsIssuedTotal.Inc()
	logger.Info().Str("ca", ca.Name).Str("name", name).Bool("is_ca", isCA).Msg("issued certificate")
	return cert, nil
}

// RevokeCert appends cert to the revocation list and prunes expired
// entries.
func (ca *CA) RevokeCert(cert *Certificate) {
	ca.revoked = append(ca.revoked, cert)
	ca.updateRevoked()
	metrics.PKICertsRevokedTotal.Inc()
	logger.Info().Str("ca", ca.Name).Str("name", cert.Name).Msg("revoked certificate")
}

// Revoked returns the CA's current (pruned) revocation list.
func (ca *CA) Revoked() []*Certificate {
	ca.updateRevoked()
	out := make([]*Certificate, len(ca.revoked))
	copy(out, ca.revoked)
	return out
}

// updateRevoked drops entries whose validity window has already closed.
func (ca *CA) updateRevoked() {
	now := time.Now().UTC().Truncate(time.Second)
	kept := ca.revoked[:0]
	for _, cert := range ca.revoked {
		if !cert.ValidTo.Before(now) {
			kept = append(kept, cert)
		}
	}
	ca.revoked = kept
}
