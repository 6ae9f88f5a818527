package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeOK              = "ok"
	OutcomeNotFound        = "not_found"
	OutcomeAlreadySignedUp = "already_signed_up"
	OutcomeFull            = "full"
	OutcomeNotSignedUp     = "not_signed_up"
	OutcomeError           = "error"
)

var (
	signups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_api",
		Name:      "signups_total",
		Help:      "Sign-up attempts by outcome.",
	}, []string{"outcome"})
	unregistrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "activities_api",
		Name:      "unregistrations_total",
		Help:      "Unregister attempts by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(signups, unregistrations)
}

func RecordSignup(outcome string) {
	signups.WithLabelValues(outcome).Inc()
}

func RecordUnregistration(outcome string) {
	unregistrations.WithLabelValues(outcome).Inc()
}
