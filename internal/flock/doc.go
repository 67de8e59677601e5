// Package flock provides cross-platform file locking utilities.
//
// Configuration writes (config set, config init) and changelog updates take
// an exclusive lock on the target file so concurrent invocations cannot
// interleave a read-modify-write. Locks are non-blocking and work on both
// Unix and Windows systems.
//
// Usage:
//
//	file, _ := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
//	if err := flock.Exclusive(file.Fd()); err != nil {
//	    // Lock not acquired - file is in use
//	}
//	defer flock.Unlock(file.Fd())
package flock
