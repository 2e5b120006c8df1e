// Package security defines sandbox isolation settings shared by the engine
// and the privileged sandbox-init helper.
package security

// IsolationProfile describes namespace, seccomp and network settings applied
// to a sandboxed run.
type IsolationProfile struct {
	SeccompProfile string
	DisableNetwork bool
	EnableNS       bool
}
