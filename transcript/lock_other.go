//go:build !unix

package transcript

import "os"

// Without flock, writes are serialized only within this process by Logger's mutex.

func lockFile(*os.File) error { return nil }

func unlockFile(*os.File) {}
