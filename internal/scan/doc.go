// Package scan runs one envoak operation in every managed subdirectory of a
// root directory.
//
// A subdirectory is a target when it directly contains the plaintext
// secrets file, the encrypted artifact, or a key marker file. Targets are
// visited in the lexical order of the directory listing.
//
// # Key Propagation
//
// When the caller has a key it is passed to every child. Otherwise the
// root's own .env is searched for a line starting with the key variable name
// (ENVOAK_KEY=, then the aliases) and that value is used. A key found either
// way is injected into each child's environment under the primary variable
// name. Finding no key is not an error: children may carry their own.
//
// # Failure Handling
//
// A child that exits non-zero, cannot be started, times out or is cancelled
// is recorded as a *ChildProcessError and counted; the scan always moves on
// to the next target. Run only returns an error when the root itself cannot
// be read. Result.OK reports whether every target succeeded.
//
// # Concurrency
//
// Targets run one at a time unless Request.Parallel is above one, in which
// case up to Parallel children run together. Result.Targets keeps discovery
// order either way. Once the context is done, targets that have not started
// are recorded as failed without being started.
package scan
