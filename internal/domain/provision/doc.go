// Package provision defines the bootstrap plan model: the ordered steps
// that provision a lazyflow development environment (system packages,
// Python requirements, native-extension build scripts, environment
// exports, user config bootstrap and the test-suite invocation), together
// with the contracts for executing them.
package provision
