package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "discourse_client_requests_total",
	Help: "Number of API requests which received an HTTP response",
}, []string{"endpoint", "method", "status"})

var apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "discourse_client_request_duration_seconds",
	Help:    "Round trip time of API requests, including failed ones",
	Buckets: prometheus.DefBuckets,
}, []string{"endpoint", "method"})

var apiRequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "discourse_client_request_errors_total",
	Help: "Number of failed API requests, by failure kind",
}, []string{"endpoint", "kind"})

const (
	errKindTransport = "transport"
	errKindDecode    = "decode"
	errKindAPI       = "api"
	errKindHTTP      = "http"
)
