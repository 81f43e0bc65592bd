package model

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/cqkv/campdb/fio"
	"github.com/stretchr/testify/assert"
)

func openTestDataFile(t *testing.T) *DataFile {
	path := filepath.Join(t.TempDir(), "sites"+DataFileSuffix)
	err := fio.CreateFile(path)
	assert.Nil(t, err)

	ioManager, err := fio.OpenFileIO(path)
	assert.Nil(t, err)
	assert.NotNil(t, ioManager)

	dataFile := OpenDataFile(path, ioManager)
	t.Cleanup(func() {
		_ = dataFile.Close()
	})
	return dataFile
}

func TestOpenDataFile(t *testing.T) {
	dataFile := openTestDataFile(t)
	assert.NotNil(t, dataFile)

	size, err := dataFile.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), size)
}

func TestDataFile_WriteSlot(t *testing.T) {
	dataFile := openTestDataFile(t)

	err := dataFile.WriteSlot(0, []byte("aaa"))
	assert.Nil(t, err)
	err = dataFile.WriteSlot(3, []byte("bbb"))
	assert.Nil(t, err)
	err = dataFile.WriteSlot(6, []byte("ccc"))
	assert.Nil(t, err)

	size, err := dataFile.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(9), size)

	// overwrite in place
	err = dataFile.WriteSlot(3, []byte("BBB"))
	assert.Nil(t, err)
	size, err = dataFile.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(9), size)

	data, err := dataFile.ReadSlot(0, 9)
	assert.Nil(t, err)
	assert.Equal(t, "aaaBBBccc", string(data))
}

func TestDataFile_ReadSlot(t *testing.T) {
	dataFile := openTestDataFile(t)

	data := []byte{0, 0, 0, 123, 1, 130, 2, 4}
	err := dataFile.WriteSlot(0, data)
	assert.Nil(t, err)

	readData, err := dataFile.ReadSlot(0, 8)
	assert.Nil(t, err)
	assert.Equal(t, data, readData)

	readData, err = dataFile.ReadSlot(4, 4)
	assert.Nil(t, err)
	assert.Equal(t, data[4:], readData)

	_, err = dataFile.ReadSlot(4, 8)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestDataFile_Truncate(t *testing.T) {
	dataFile := openTestDataFile(t)

	err := dataFile.WriteSlot(0, []byte("aaabbb"))
	assert.Nil(t, err)

	err = dataFile.Truncate(3)
	assert.Nil(t, err)
	size, err := dataFile.Size()
	assert.Nil(t, err)
	assert.Equal(t, int64(3), size)
}

func TestDataFile_Sync(t *testing.T) {
	dataFile := openTestDataFile(t)

	err := dataFile.WriteSlot(0, []byte("aaa"))
	assert.Nil(t, err)

	err = dataFile.Sync()
	assert.Nil(t, err)
}
