package fio

import (
	"github.com/gofrs/flock"
)

const lockSuffix = ".lock"

var _ FileLocker = (*flock.Flock)(nil)

// NewFlock returns the advisory lock guarding the data file at path,
// the lock lives next to it as <path>.lock
func NewFlock(path string) *flock.Flock {
	return flock.New(LockPath(path))
}

// LockPath is the lock file used for the data file at path
func LockPath(path string) string {
	return path + lockSuffix
}
