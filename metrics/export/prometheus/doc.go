// Package prometheus renders goAccounts metrics in Prometheus text exposition
// format, without depending on a Prometheus client library.
//
// [NewPrometheusExporter] reads [goAccounts.Service.MetricsSnapshot] on each
// scrape; [PrometheusExporter.Handler] serves the rendered text over HTTP.
//
// # What this package must NOT do
//
//   - Register collectors globally.
//   - Mutate engine state.
package prometheus
