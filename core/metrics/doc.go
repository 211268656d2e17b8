// Package metrics defines the sink interface that receives one event per
// grading run, and a registry so sinks can be selected from configuration.
// Concrete sinks are registered by infra/metrics.
package metrics
