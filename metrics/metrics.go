package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SessionsIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "datenight_sessions_issued_total", Help: "Total selection sessions issued"},
	)
	SubmissionsAccepted = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "datenight_submissions_accepted_total", Help: "Total selection submissions accepted"},
	)
	SubmissionsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "datenight_submissions_rejected_total", Help: "Total selection submissions rejected"},
	)
	MatchesComputed = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "datenight_matches_computed_total", Help: "Total matches produced by processing runs"},
	)
	EmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "datenight_emails_sent_total", Help: "Total emails handed to the email provider"},
	)
)

func Register() {
	prometheus.MustRegister(SessionsIssued, SubmissionsAccepted, SubmissionsRejected, MatchesComputed, EmailsSent)
}
