package pki

import (
	"crypto"
	"crypto/rsa"
	"time"

	"github.com/dor890/trustcore/internal/metrics"
)

// SignedObject pairs an arbitrary payload with the signature produced over
// it by the leaf entity's private key.
type SignedObject struct {
	Payload   map[string]any
	Signature []byte
}

// RelyingParty verifies certificate chains against a fixed set of trusted
// roots and a live issuer-name-to-CA mapping used for revocation checks.
type RelyingParty struct {
	trustedRoots    []*Certificate
	revokedByIssuer map[string]*CA
}

// NewRelyingParty builds a verifier trusting trustedRoots, consulting
// revokedByIssuer[issuerName].Revoked() for revocation checks.
func NewRelyingParty(trustedRoots []*Certificate, revokedByIssuer map[string]*CA) *RelyingParty {
	return &RelyingParty{trustedRoots: trustedRoots, revokedByIssuer: revokedByIssuer}
}

func (rp *RelyingParty) revokedFor(name string) []*Certificate {
	ca, ok := rp.revokedByIssuer[name]
	if !ok {
		return nil
	}
	return ca.Revoked()
}

// Verify walks the chain from leafCert up to a trusted root, checking at
// every link: signature validity, revocation membership, and the validity
// window. The chain must terminate at a certificate structurally equal to
// one of the trusted roots.
func (rp *RelyingParty) Verify(obj *SignedObject, leafCert *Certificate) error {
	var lastCert *Certificate
	isObject := true
	cert := leafCert

	for cert != nil {
		var digest []byte
		var sig []byte
		var err error

		if isObject {
			digest, err = hashPayload(obj.Payload)
			sig = obj.Signature
		} else {
			digest, err = lastCert.digest(true)
			sig = lastCert.Signature
		}
		if err != nil {
			return err
		}

		if verr := rsa.VerifyPKCS1v15(cert.PublicKey, crypto.SHA256, digest, sig); verr != nil {
			metrics.PKIVerifyFailureTotal.WithLabelValues("invalid_signature").Inc()
			return ErrInvalidSignature
		}

		if cert.IssuerName != "" && containsCertificate(rp.revokedFor(cert.IssuerName), cert) {
			metrics.PKIVerifyFailureTotal.WithLabelValues("revoked").Inc()
			return ErrRevoked
		}
		if cert.IsCA && containsCertificate(rp.revokedFor(cert.Name), cert) {
			metrics.PKIVerifyFailureTotal.WithLabelValues("revoked").Inc()
			return ErrRevoked
		}

		now := time.Now().UTC().Truncate(time.Second)
		if now.Before(cert.ValidFrom) {
			metrics.PKIVerifyFailureTotal.WithLabelValues("not_yet_valid").Inc()
			return ErrNotYetValid
		}
		if now.After(cert.ValidTo) {
			metrics.PKIVerifyFailureTotal.WithLabelValues("expired").Inc()
			return ErrExpired
		}

		isObject = false
		lastCert = cert
		cert = cert.IssuerCert
	}

	if !containsCertificate(rp.trustedRoots, lastCert) {
		metrics.PKIVerifyFailureTotal.WithLabelValues("untrusted_root").Inc()
		return ErrUntrustedRoot
	}

	metrics.PKIVerifySuccessTotal.Inc()
	return nil
}
