package pki

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicChain(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)
	rp := NewRelyingParty([]*Certificate{universe.Cert()}, map[string]*CA{"UniverseCA": universe})

	huji, err := NewEntity("HUJI")
	require.NoError(t, err)
	from, to := CertValidityWindow(time.Now())
	cert, err := universe.IssueCert(huji.Name, huji.PublicKey(), from, to, false)
	require.NoError(t, err)
	huji.SetCert(cert)

	payload := map[string]any{"Name": "Dor", "Rule": "CEO"}
	sig, err := huji.Sign(payload)
	require.NoError(t, err)
	obj := &SignedObject{Payload: payload, Signature: sig}

	assert.NoError(t, rp.Verify(obj, huji.Cert()))
}

func TestExpiredCertificate(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)
	rp := NewRelyingParty([]*Certificate{universe.Cert()}, map[string]*CA{"UniverseCA": universe})

	expired, err := NewEntity("Expired")
	require.NoError(t, err)
	from, _ := CertValidityWindow(time.Now())
	to := from.Add(-time.Second)
	cert, err := universe.IssueCert(expired.Name, expired.PublicKey(), from, to, false)
	require.NoError(t, err)
	expired.SetCert(cert)

	payload := map[string]any{"Name": "Miki", "Rule": "Former CEO"}
	sig, err := expired.Sign(payload)
	require.NoError(t, err)
	obj := &SignedObject{Payload: payload, Signature: sig}

	assert.ErrorIs(t, rp.Verify(obj, expired.Cert()), ErrExpired)
}

func TestRevocation(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)
	rp := NewRelyingParty([]*Certificate{universe.Cert()}, map[string]*CA{"UniverseCA": universe})

	huji, err := NewEntity("HUJI")
	require.NoError(t, err)
	from, to := CertValidityWindow(time.Now())
	cert, err := universe.IssueCert(huji.Name, huji.PublicKey(), from, to, false)
	require.NoError(t, err)
	huji.SetCert(cert)

	payload := map[string]any{"Name": "Dor", "Rule": "CEO"}
	sig, err := huji.Sign(payload)
	require.NoError(t, err)
	obj := &SignedObject{Payload: payload, Signature: sig}

	require.NoError(t, rp.Verify(obj, huji.Cert()))

	universe.RevokeCert(huji.Cert())
	assert.ErrorIs(t, rp.Verify(obj, huji.Cert()), ErrRevoked)
}

func TestComplexChainThroughIntermediateCA(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)

	intelFrom, intelTo := RootValidityWindow(time.Now())
	intel, err := NewEntity("Intel")
	require.NoError(t, err)
	intelCert, err := universe.IssueCert(intel.Name, intel.PublicKey(), intelFrom, intelTo, true)
	require.NoError(t, err)
	intel.SetCert(intelCert)
	intelCA := &CA{Entity: intel}

	rp := NewRelyingParty(
		[]*Certificate{universe.Cert()},
		map[string]*CA{"UniverseCA": universe, "Intel": intelCA},
	)

	mobileye, err := NewEntity("Mobileye")
	require.NoError(t, err)
	from, to := CertValidityWindow(time.Now())
	mobileyeCert, err := intelCA.IssueCert(mobileye.Name, mobileye.PublicKey(), from, to, false)
	require.NoError(t, err)
	mobileye.SetCert(mobileyeCert)

	payload := map[string]any{"Name": "Barak", "Rule": "CTO"}
	sig, err := mobileye.Sign(payload)
	require.NoError(t, err)
	obj := &SignedObject{Payload: payload, Signature: sig}

	assert.NoError(t, rp.Verify(obj, mobileye.Cert()))
}

func TestInvalidSignatureForgedCert(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)
	rp := NewRelyingParty([]*Certificate{universe.Cert()}, map[string]*CA{"UniverseCA": universe})

	attacker, err := NewEntity("Attacker")
	require.NoError(t, err)
	from, to := CertValidityWindow(time.Now())
	forged := &Certificate{
		Name:       attacker.Name,
		IssuerName: universe.Name,
		IssuerCert: universe.Cert(),
		PublicKey:  attacker.PublicKey(),
		ValidFrom:  from,
		ValidTo:    to,
		IsCA:       false,
		Signature:  []byte("Some fake signature"),
	}
	attacker.SetCert(forged)

	payload := map[string]any{"Name": "Eve", "Rule": "Owner"}
	sig, err := attacker.Sign(payload)
	require.NoError(t, err)
	obj := &SignedObject{Payload: payload, Signature: sig}

	assert.ErrorIs(t, rp.Verify(obj, attacker.Cert()), ErrInvalidSignature)
}

func TestInvalidRootUntrusted(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)
	invalidRoot, err := NewCA("Invalid")
	require.NoError(t, err)

	rp := NewRelyingParty(
		[]*Certificate{universe.Cert()},
		map[string]*CA{"UniverseCA": universe, "Invalid": invalidRoot},
	)

	payload := map[string]any{"Name": "Just", "Rule": "Check"}
	sig, err := invalidRoot.Sign(payload)
	require.NoError(t, err)
	obj := &SignedObject{Payload: payload, Signature: sig}

	assert.ErrorIs(t, rp.Verify(obj, invalidRoot.Cert()), ErrUntrustedRoot)
}

func TestRevocationListAutoPrunesExpiredEntries(t *testing.T) {
	universe, err := NewCA("UniverseCA")
	require.NoError(t, err)

	stale, err := NewEntity("Stale")
	require.NoError(t, err)
	from := time.Now().Add(-48 * time.Hour)
	to := time.Now().Add(-24 * time.Hour)
	cert, err := universe.IssueCert(stale.Name, stale.PublicKey(), from, to, false)
	require.NoError(t, err)

	universe.RevokeCert(cert)
	assert.Empty(t, universe.Revoked())
}
