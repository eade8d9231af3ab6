package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var gatewayFrames = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "warden_gateway_frames_total",
	Help: "Gateway frames received, by frame type.",
}, []string{"type"})

var gatewayReconnects = promauto.NewCounter(prometheus.CounterOpts{
	Name: "warden_gateway_reconnects_total",
	Help: "Gateway connection attempts after a failure or disconnect.",
})
