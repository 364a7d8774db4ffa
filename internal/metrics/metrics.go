package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the auth event counters registered against a single
// prometheus registry.
type Metrics struct {
	SignIns     *prometheus.CounterVec
	SignUps     *prometheus.CounterVec
	Refreshes   *prometheus.CounterVec
	SignOuts    prometheus.Counter
	Validations *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SignIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_sign_ins_total",
			Help: "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
		SignUps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_sign_ups_total",
			Help: "Sign-up attempts by outcome.",
		}, []string{"outcome"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_token_refreshes_total",
			Help: "Token refresh attempts by outcome.",
		}, []string{"outcome"}),
		SignOuts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "auth_sign_outs_total",
			Help: "Completed sign-outs.",
		}),
		Validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_session_validations_total",
			Help: "Session validation checks by result.",
		}, []string{"result"}),
	}

	reg.MustRegister(m.SignIns, m.SignUps, m.Refreshes, m.SignOuts, m.Validations)

	return m
}
