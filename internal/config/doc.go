// Package config loads eimctl configuration from a TOML file.
//
// Every key is optional; a key that is absent keeps its default. Durations
// use Go syntax.
//
//	backend_url       = "ws://127.0.0.1:8088"
//	request_timeout   = "5s"
//	write_timeout     = "10s"
//	log_level         = "info"     # debug, info, warn, error
//	log_format        = "text"     # text, json
//	status_addr       = "127.0.0.1:9090"
//	metrics_namespace = "eim"
package config
