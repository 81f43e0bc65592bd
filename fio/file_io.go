package fio

import (
	"os"
)

// FileIO is the default implement for IOManager
type FileIO struct {
	fd *os.File
}

// OpenFileIO opens an existing file for reading and writing,
// it never creates the file
func OpenFileIO(path string) (*FileIO, error) {
	fd, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &FileIO{fd: fd}, nil
}

// CreateFile creates an empty file at path if there is none,
// existing data is left alone
func CreateFile(path string) error {
	fd, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return fd.Close()
}

func (fio *FileIO) ReadAt(buf []byte, offset int64) (int, error) {
	return fio.fd.ReadAt(buf, offset)
}

func (fio *FileIO) WriteAt(data []byte, offset int64) (int, error) {
	return fio.fd.WriteAt(data, offset)
}

func (fio *FileIO) Size() (int64, error) {
	stat, err := fio.fd.Stat()
	if err != nil {
		return 0, err
	}
	return stat.Size(), nil
}

func (fio *FileIO) Truncate(size int64) error {
	return fio.fd.Truncate(size)
}

func (fio *FileIO) Sync() error {
	return fio.fd.Sync()
}

func (fio *FileIO) Close() error {
	return fio.fd.Close()
}
