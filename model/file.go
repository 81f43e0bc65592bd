package model

import (
	"fmt"
	"io"

	"github.com/cqkv/campdb/fio"
)

const (
	DataFileSuffix = ".db"
)

// DataFile is the single slot file of a store
type DataFile struct {
	Path      string
	IoManager fio.IOManager
}

func OpenDataFile(path string, ioManager fio.IOManager) *DataFile {
	return &DataFile{
		Path:      path,
		IoManager: ioManager,
	}
}

func (df *DataFile) Size() (int64, error) {
	return df.IoManager.Size()
}

func (df *DataFile) Sync() error {
	return df.IoManager.Sync()
}

func (df *DataFile) Close() error {
	return df.IoManager.Close()
}

// WriteSlot writes a whole slot at offset, a short write is an error
func (df *DataFile) WriteSlot(offset int64, data []byte) error {
	n, err := df.IoManager.WriteAt(data, offset)
	if err != nil {
		return err
	}
	if n != len(data) {
		return io.ErrShortWrite
	}
	return nil
}

// Truncate drops everything past size
func (df *DataFile) Truncate(size int64) error {
	return df.IoManager.Truncate(size)
}

// ReadSlot returns the size bytes stored at offset
func (df *DataFile) ReadSlot(offset, size int64) ([]byte, error) {
	buf := make([]byte, size)
	n, err := df.IoManager.ReadAt(buf, offset)
	if err != nil && !(err == io.EOF && int64(n) == size) {
		if err == io.EOF {
			return nil, fmt.Errorf("read %d of %d bytes at %d: %w", n, size, offset, io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	return buf, nil
}
