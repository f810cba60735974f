// Package metrics exports economy activity as Prometheus metrics.
//
// Collector implements economy.Recorder. Pass it to a session with
// economy.WithRecorder and register it with a prometheus.Registerer:
//
//	c := metrics.NewCollector("wareflow")
//	if err := c.Register(reg); err != nil { ... }
//	s := economy.NewSession(cat, economy.WithRecorder(c))
//
// Every series carries a "kind" label (ware or worker).
package metrics
