// Package pki implements an X.509-style certificate-chain issuance,
// revocation, and verification core: Entities sign objects, CAs issue and
// revoke certificates, and a RelyingParty walks a certificate chain to a
// trusted root.
package pki

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"fmt"

	"github.com/google/uuid"

	"github.com/dor890/trustcore/internal/log"
	"github.com/dor890/trustcore/internal/metrics"
)

var logger = log.WithComponent("pki")

// KeyBits is the RSA modulus size used throughout this package. 512 bits is
// demonstration strength only, chosen to match the reference scheme this
// package reproduces; it is not suitable for production signing.
const KeyBits = 512

// Entity holds an asymmetric keypair and an optional certificate, and can
// sign arbitrary payloads with its private key. The private key never
// leaves the Entity.
type Entity struct {
	ID         uuid.UUID
	Name       string
	publicKey  *rsa.PublicKey
	privateKey *rsa.PrivateKey
	cert       *Certificate
}

// NewEntity generates a fresh RSA keypair for a new entity with the given
// name.
func NewEntity(name string) (*Entity, error) {
	key, err := rsa.GenerateKey(rand.Reader, KeyBits)
	if err != nil {
		return nil, fmt.Errorf("pki: failed to generate key for %q: %w", name, err)
	}
	return &Entity{
		ID:         uuid.New(),
		Name:       name,
		publicKey:  &key.PublicKey,
		privateKey: key,
	}, nil
}

// PublicKey returns the entity's public key.
func (e *Entity) PublicKey() *rsa.PublicKey {
	return e.publicKey
}

// SetCert attaches a certificate to the entity.
func (e *Entity) SetCert(cert *Certificate) {
	e.cert = cert
}

// Cert returns the entity's current certificate, or nil if unset.
func (e *Entity) Cert() *Certificate {
	return e.cert
}

// Sign returns an RSA-SHA256 signature over the canonical serialization of
// payload.
func (e *Entity) Sign(payload map[string]any) ([]byte, error) {
	digest, err := hashPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("pki: failed to hash payload: %w", err)
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, e.privateKey, crypto.SHA256, digest)
	if err != nil {
		return nil, fmt.Errorf("pki: failed to sign payload: %w", err)
	}
	metrics.PKISignTotal.Inc()
	return sig, nil
}
