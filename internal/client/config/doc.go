// Package config loads runtime configuration for the jobtrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the cloud sync endpoint
//	-d string   path to the local SQLite database file
//	-i int      online status check interval (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "3s" or integer nanoseconds:
//
//	{
//	  "cloud_endpoint_addr": "http://127.0.0.1:8080",
//	  "database_path": "jobtrack.db",
//	  "online_check_interval": "3s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
