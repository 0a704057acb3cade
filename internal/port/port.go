// Package port derives stable dev server ports from worktree names.
//
// The derivation is a djb2-style rolling hash folded into a fixed
// 1000-port window, so a worktree name maps to the same port on every
// machine without state or coordination. Distinct names can collide;
// callers that care (wtp doctor) detect and report collisions, the
// derivation itself never avoids them.
package port

import "path/filepath"

// Port window for derived ports.
const (
	MinPort = 4000
	MaxPort = 4999
)

const (
	hashSeed = 5381
	hashMod  = 2147483647 // 2^31-1, keeps the rolling hash in int32 range
	window   = MaxPort - MinPort + 1
)

// ForName returns the port for a worktree name, always within
// [MinPort, MaxPort]. Hashing is byte-wise over the UTF-8 encoding and
// case-sensitive. The empty name yields the seed's port, 4381.
func ForName(name string) int {
	h := int64(hashSeed)
	for i := 0; i < len(name); i++ {
		h = (h*33 + int64(name[i])) % hashMod
	}
	return int(h%window) + MinPort
}

// ForWorktree returns the port for the worktree at path, derived from
// its basename. A worktree is identified by its directory name, not its
// branch, so moving a branch between directories changes the port.
func ForWorktree(path string) int {
	return ForName(filepath.Base(path))
}
