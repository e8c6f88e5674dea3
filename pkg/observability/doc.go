/*
Package observability provides tools for monitoring machine runs.

Everything here is built on domain.LifecycleHooks: Metrics records Prometheus
counters and histograms, LogHooks writes structured audit lines, and Combine
fans a single set of hooks out to several observers.
*/
package observability
