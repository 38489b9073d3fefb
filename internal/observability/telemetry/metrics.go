package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SkillRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_requests_total",
		Help: "Skill requests dispatched, by request type and selected route",
	}, []string{"request_type", "route"})

	SkillHandlerErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_handler_errors_total",
		Help: "Requests answered by the error handler",
	}, []string{"route"})

	SkillDispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "skill_dispatch_duration_seconds",
		Help:    "Time spent producing a response for one request",
		Buckets: prometheus.DefBuckets,
	})

	AppointmentOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skill_appointment_outcomes_total",
		Help: "MakeAppointment invocations by outcome",
	}, []string{"outcome"})
)
