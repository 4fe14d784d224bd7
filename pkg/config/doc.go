// Package config provides configuration management for the lintsel
// application.
//
// It wraps other package configuration to provide a single API for
// loading, validating, and watching configuration files in YAML format.
package config
