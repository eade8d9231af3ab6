package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var messagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_messages_processed_total",
	Help: "Total messages evaluated by the rule engine.",
})

var messageProcessDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "warden_message_process_duration_seconds",
	Help:    "Time to fully process one message, enforcement included.",
	Buckets: prometheus.ExponentialBucketsRange(0.0005, 2, 10),
})

var staffBypassCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_staff_bypass_total",
	Help: "Messages skipped because the author holds a staff bypass.",
})

var violationCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_violations_total",
	Help: "Violations flagged, by rule type and severity.",
}, []string{"type", "severity"})

var enforcementCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_enforcement_actions_total",
	Help: "Enforcement actions applied, by action kind.",
}, []string{"action"})

var enforcementErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_enforcement_errors_total",
	Help: "Side effects that failed during enforcement, by stage.",
}, []string{"stage"})

var ruleErrorCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_rule_errors_total",
	Help: "Detector executions that returned an error.",
})

var configFallbackCount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_config_fallbacks_total",
	Help: "Guild config loads that fell back to the disabled policy.",
})
