package campdb

import (
	"fmt"
)

var (
	ErrStorageUnavailable = addPrefix("storage unavailable")
	ErrIndexOutOfRange    = addPrefix("index out of bounds")
	ErrDataFileCorrupted  = addPrefix("data file may be corrupted")
	ErrStoreInUse         = addPrefix("data file is using")
	ErrClosed             = addPrefix("store is closed")

	ErrExceedMaxBatchNum = addPrefix("exceed the max batch num")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("campdb err: %s", errStr)
}

func outOfRange(op string, index, count int) error {
	return fmt.Errorf("%w: %s index %d, record count %d", ErrIndexOutOfRange, op, index, count)
}
