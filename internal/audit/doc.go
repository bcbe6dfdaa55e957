// Package audit reports the secrets state of every project below a root
// directory.
//
// Directory looks at each non-hidden immediate subdirectory and records its
// sync state together with the format check of its plaintext file:
//
//	[
//	  {"dir": "api", "status": "SYNCED", "valid": true},
//	  {"dir": "worker", "status": "MISSING", "valid": true}
//	]
//
// A directory with neither a plaintext file nor an encrypted artifact is
// left out. SYNCED asserts presence only; contents are never compared.
//
// Encode renders a report as indented JSON, JSON Lines (one object per
// line, handy for piping into jq) or YAML.
package audit
