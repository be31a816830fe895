// Package config provides the declarative surface of pipekit: process
// settings and YAML pipeline definitions.
//
// Settings (logging, OpenTelemetry export) load from an optional
// pipekit.yml, an optional .env file, and PIPEKIT_* environment
// variables, in increasing precedence:
//
//	settings, err := config.LoadSettings()
//	logger.Init(&settings.Logging)
//
// Pipeline definitions describe a complete chain as data:
//
//	name: scan-logs
//	sources:
//	  - type: dir
//	    options: {path: /var/log, keep: ["*.log"]}
//	transforms:
//	  - type: keep_matching
//	    options: {pattern: "ERROR"}
//	sinks:
//	  - type: file
//	    options: {path: report.txt}
//
// Load parses and validates the definition; Build resolves each entry
// through a factory registry into a runnable pipeline:
//
//	def, err := config.Load("scan.yaml")
//	p, err := config.Build(def, config.Builtins())
//	err = p.Run(ctx)
//
// Custom component types register factories on a Registry and work the
// same way.
package config
