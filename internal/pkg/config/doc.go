// Package config provides functionality for loading and managing
// application configuration.
//
// This package handles loading settings from YAML files, validating them,
// and making them accessible throughout the application. It also loads
// bootstrap plan manifests and carries the built-in lazyflow development
// plan used when no manifest is given.
package config
