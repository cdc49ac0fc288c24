// Package otel provides an OpenTelemetry observer plugin for the scope
// library. It currently ships a no-op implementation that reserves the
// integration point without adding dependencies.
package otel
