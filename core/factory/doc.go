// Package factory provides a small generic registry used to instantiate modules
// from configuration. Modules are defined by a type string and a map of raw
// settings. Factories decode the settings into typed structs and return the
// concrete implementation.
//
// The metrics sinks are built this way:
//
//	sinks:
//	  - type: prometheus
//	    conf:
//	      textfile: /var/lib/node_exporter/markbook.prom
//	  - type: influx
//	    conf:
//	      url: http://localhost:8086
package factory
