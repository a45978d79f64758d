// Package metrics records build metrics for crumbler runs.
//
// Components receive a Recorder through injection and default to NoopRecorder,
// so metrics never need nil checks at call sites. PrometheusRecorder backs the
// interface with client_golang collectors registered on a private registry,
// which WriteTextfile can dump in the node_exporter textfile format after a
// run.
package metrics
