//go:build !debug
// +build !debug

package debug

// Debug reports whether the binary was built with the debug tag. Code paths
// guarded by it compile away in regular builds.
const Debug = false
