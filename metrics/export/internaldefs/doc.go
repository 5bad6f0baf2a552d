// Package internaldefs exposes stable metric name definitions shared by
// exporter implementations.
//
// Counter and histogram definitions live here so every exporter publishes
// identical metric names and bucket boundaries. Changes to definitions in
// this package affect all exporters simultaneously.
package internaldefs
