package pki

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// hashPayload returns the SHA-256 digest of the sorted-key, 4-space-indented
// JSON encoding of payload. json.Marshal already sorts map[string]any keys,
// matching the sort_keys=True behavior this mirrors.
func hashPayload(payload map[string]any) ([]byte, error) {
	encoded, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("pki: failed to marshal payload: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return sum[:], nil
}

// canonicalMap builds the deterministic field map used for both signing and
// verification. When stripSignature is true, the Signature field is omitted
// entirely rather than zeroed, so it never influences the digest. Nested
// issuer certificates are always serialized with their own Signature
// present, since they are historical record, not the thing being signed.
func (c *Certificate) canonicalMap(stripSignature bool) map[string]any {
	m := map[string]any{
		"Name":        c.Name,
		"Issuer name": nullableString(c.IssuerName),
		"Issuer cert": issuerCertValue(c.IssuerCert),
		"Public key":  publicKeyValue(c.PublicKey),
		"Valid from":  c.ValidFrom.UTC().Format(time.RFC3339),
		"Valid to":    c.ValidTo.UTC().Format(time.RFC3339),
		"Is CA":       c.IsCA,
	}
	if !stripSignature && c.Signature != nil {
		m["Signature"] = base64.StdEncoding.EncodeToString(c.Signature)
	}
	return m
}

func issuerCertValue(issuer *Certificate) any {
	if issuer == nil {
		return nil
	}
	return issuer.canonicalMap(false)
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func publicKeyValue(pub *rsa.PublicKey) []any {
	if pub == nil {
		return nil
	}
	return []any{pub.N.String(), pub.E}
}

// canonicalBytes returns the canonical serialization of the certificate.
func (c *Certificate) canonicalBytes(stripSignature bool) ([]byte, error) {
	return json.MarshalIndent(c.canonicalMap(stripSignature), "", "    ")
}

// digest returns the SHA-256 digest of the certificate's canonical
// serialization.
func (c *Certificate) digest(stripSignature bool) ([]byte, error) {
	encoded, err := c.canonicalBytes(stripSignature)
	if err != nil {
		return nil, fmt.Errorf("pki: failed to serialize certificate: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return sum[:], nil
}
