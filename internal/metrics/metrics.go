// Package metrics exposes prometheus counters for oram and pki operations.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	ORAMStoreTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_oram_store_total",
			Help: "Total number of successful Client.Store calls",
		},
	)

	ORAMRetrieveTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_oram_retrieve_total",
			Help: "Total number of Client.Retrieve calls that returned stored data",
		},
	)

	ORAMDeleteTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_oram_delete_total",
			Help: "Total number of Client.Delete calls that removed an entry",
		},
	)

	ORAMEvictionMovesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_oram_eviction_moves_total",
			Help: "Total number of slots relocated during push-down eviction",
		},
	)

	ORAMIntegrityFailureTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_oram_integrity_failure_total",
			Help: "Total number of integrity check failures (wrong data length or HMAC mismatch) on retrieve",
		},
	)

	PKICertsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_pki_certs_issued_total",
			Help: "Total number of certificates issued by a CA",
		},
	)

	PKICertsRevokedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_pki_certs_revoked_total",
			Help: "Total number of certificates revoked by a CA",
		},
	)

	PKISignTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_pki_sign_total",
			Help: "Total number of objects signed by an entity",
		},
	)

	PKIVerifySuccessTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trustcore_pki_verify_success_total",
			Help: "Total number of successful chain verifications",
		},
	)

	PKIVerifyFailureTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trustcore_pki_verify_failure_total",
			Help: "Total number of failed chain verifications by reason",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(ORAMStoreTotal)
	prometheus.MustRegister(ORAMRetrieveTotal)
	prometheus.MustRegister(ORAMDeleteTotal)
	prometheus.MustRegister(ORAMEvictionMovesTotal)
	prometheus.MustRegister(ORAMIntegrityFailureTotal)
	prometheus.MustRegister(PKICertsIssuedTotal)
	prometheus.MustRegister(PKICertsRevokedTotal)
	prometheus.MustRegister(PKISignTotal)
	prometheus.MustRegister(PKIVerifySuccessTotal)
	prometheus.MustRegister(PKIVerifyFailureTotal)
}
