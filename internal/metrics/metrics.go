// Package metrics holds Prometheus instruments for the admin settings.
// All collectors are registered with the global registry, so importing
// this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AdeptTravel/adept-admin/internal/admin"
)

var (
	AdminConfigAssemblies = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_config_assemblies_total",
			Help: "Admin settings assemblies by result (ok, error).",
		}, []string{"result"})

	AdminConfigErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admin_config_errors_total",
			Help: "Admin settings resolution errors by kind.",
		}, []string{"kind"})

	AdminFeatureFlag = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admin_feature_flag",
			Help: "Admin feature flags in effect (1 enabled, 0 disabled).",
		}, []string{"flag"})
)

func init() {
	prometheus.MustRegister(
		AdminConfigAssemblies,
		AdminConfigErrors,
		AdminFeatureFlag,
	)
}

// ObserveAssembly records the outcome of one admin.Assemble call.  Flags
// are only published on success.
func ObserveAssembly(rec admin.Record, err error) {
	if err != nil {
		AdminConfigAssemblies.WithLabelValues("error").Inc()
		for _, ce := range admin.Errors(err) {
			AdminConfigErrors.WithLabelValues(ce.Kind.String()).Inc()
		}
		return
	}
	AdminConfigAssemblies.WithLabelValues("ok").Inc()
	AdminFeatureFlag.WithLabelValues("nps").Set(boolGauge(rec.Flags.NPS))
	AdminFeatureFlag.WithLabelValues("promote_ee").Set(boolGauge(rec.Flags.PromoteEE))
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
