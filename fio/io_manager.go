package fio

// IOManager is the positional file access the store is built on,
// it can be custom in options
type IOManager interface {
	// ReadAt fills buf from offset, a short read is an error
	ReadAt(buf []byte, offset int64) (int, error)
	// WriteAt writes data at offset, growing the file if needed
	WriteAt(data []byte, offset int64) (int, error)
	// Size is the current file length in bytes
	Size() (int64, error)
	// Truncate cuts the file to size bytes
	Truncate(size int64) error
	Sync() error
	Close() error
}

type FileLocker interface {
	TryLock() (bool, error)
	Unlock() error
}
