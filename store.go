package campdb

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"

	"github.com/cqkv/campdb/fio"
	"github.com/cqkv/campdb/model"
)

// Store is a file of fixed-size record slots addressed by position.
// Slot i lives at byte offset i*SlotSize. The store keeps an independent
// read cursor and write cursor, both byte offsets into the file.
//
// A Store owns its file handle, it must only be used through the pointer
// returned by Open and is not safe for concurrent use.
type Store struct {
	noCopy noCopy

	path     string
	dataFile *model.DataFile
	fileLock fio.FileLocker
	slotSize int64

	readPos  int64
	writePos int64

	rnd    *rand.Rand
	closed bool

	options *options
}

// Open opens the store at path, creating an empty file if it can not be
// opened. Both cursors are left at the end of the file.
func Open(path string, ops ...Option) (*Store, error) {
	opts := defaultOptions()
	for _, op := range ops {
		op(opts)
	}

	ioManager, err := opts.ioManagerCreator(path)
	if err != nil {
		if err := fio.CreateFile(path); err != nil {
			return nil, fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, path, err)
		}
		ioManager, err = opts.ioManagerCreator(path)
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrStorageUnavailable, path, err)
		}
	}

	s := &Store{
		path:     path,
		dataFile: model.OpenDataFile(path, ioManager),
		slotSize: opts.codec.SlotSize(),
		options:  opts,
	}

	if err := s.init(); err != nil {
		_ = s.release()
		return nil, err
	}

	return s, nil
}

func (s *Store) init() error {
	if s.options.fileLock {
		lock := fio.NewFlock(s.path)
		ok, err := lock.TryLock()
		if err != nil {
			return fmt.Errorf("%w: lock %s: %v", ErrStorageUnavailable, s.path, err)
		}
		if !ok {
			return ErrStoreInUse
		}
		s.fileLock = lock
	}

	size, err := s.dataFile.Size()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if size%s.slotSize != 0 {
		return fmt.Errorf("%w: size %d is not a multiple of slot size %d", ErrDataFileCorrupted, size, s.slotSize)
	}

	src := s.options.randSource
	if src == nil {
		src = rand.NewSource(entropySeed())
	}
	s.rnd = rand.New(src)

	// append ready
	s.readPos = size
	s.writePos = size
	return nil
}

// entropySeed seeds the generator once per store from crypto/rand
func entropySeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// Path returns the data file path
func (s *Store) Path() string {
	return s.path
}

// RecordCount returns the number of whole records in the file,
// the cursors are not touched
func (s *Store) RecordCount() (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	size, err := s.dataFile.Size()
	if err != nil {
		return 0, err
	}
	return int(size / s.slotSize), nil
}

// CurrentIndex returns the index under the write cursor if forWrite,
// otherwise the index under the read cursor
func (s *Store) CurrentIndex(forWrite bool) int {
	if forWrite {
		return int(s.writePos / s.slotSize)
	}
	return int(s.readPos / s.slotSize)
}

// WriteNextSequential writes record at the write cursor and advances it
// by one slot. Only an existing slot or the slot right after the last
// one can be written.
func (s *Store) WriteNextSequential(record *model.Record) error {
	count, err := s.RecordCount()
	if err != nil {
		return err
	}
	index := s.CurrentIndex(true)
	if index < 0 || index > count {
		return outOfRange("write", index, count)
	}

	data, err := s.options.codec.MarshalRecord(record)
	if err != nil {
		return err
	}
	if int64(len(data)) != s.slotSize {
		return fmt.Errorf("codec returned %d bytes for a %d byte slot", len(data), s.slotSize)
	}

	if err := s.dataFile.WriteSlot(s.writePos, data); err != nil {
		// a failed append must not leave a partial trailing slot
		if index == count {
			if terr := s.dataFile.Truncate(s.writePos); terr != nil {
				return errors.Join(err, terr)
			}
		}
		return err
	}
	s.writePos += s.slotSize

	if s.options.syncWrites {
		return s.dataFile.Sync()
	}
	return nil
}

// GetNextSequential reads the record at the read cursor and advances it
// by one slot
func (s *Store) GetNextSequential() (*model.Record, error) {
	count, err := s.RecordCount()
	if err != nil {
		return nil, err
	}
	index := s.CurrentIndex(false)
	if index < 0 || index >= count {
		return nil, outOfRange("read", index, count)
	}

	data, err := s.dataFile.ReadSlot(s.readPos, s.slotSize)
	if err != nil {
		return nil, err
	}

	record := &model.Record{}
	if err := s.options.codec.UnmarshalRecord(data, record); err != nil {
		return nil, fmt.Errorf("slot %d: %w", index, err)
	}
	s.readPos += s.slotSize
	return record, nil
}

// GetAt reads the record at index, 0 <= index < RecordCount()
func (s *Store) GetAt(index int) (*model.Record, error) {
	ok, count, err := s.boundsCheck(index, false)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, outOfRange("read", index, count)
	}

	s.readPos = s.offset(index)
	return s.GetNextSequential()
}

// WriteAt writes record at index, 0 <= index <= RecordCount().
// index == RecordCount() appends.
func (s *Store) WriteAt(index int, record *model.Record) error {
	ok, count, err := s.boundsCheck(index, true)
	if err != nil {
		return err
	}
	if !ok {
		return outOfRange("write", index, count)
	}

	s.writePos = s.offset(index)
	return s.WriteNextSequential(record)
}

// MoveCursorsTo moves both cursors to index using the write bounds
func (s *Store) MoveCursorsTo(index int) error {
	ok, count, err := s.boundsCheck(index, true)
	if err != nil {
		return err
	}
	if !ok {
		return outOfRange("move", index, count)
	}

	s.readPos = s.offset(index)
	s.writePos = s.offset(index)
	return nil
}

// Swap exchanges the records at indexA and indexB.
// Both records are read before anything is written, but there is no
// rollback: if the second write fails the first one stays on disk.
func (s *Store) Swap(indexA, indexB int) error {
	recordA, err := s.GetAt(indexA)
	if err != nil {
		return err
	}
	recordB, err := s.GetAt(indexB)
	if err != nil {
		return err
	}

	if err := s.WriteAt(indexA, recordB); err != nil {
		return err
	}
	return s.WriteAt(indexB, recordA)
}

// GetRange returns the records from first up to, not including, last.
// last is a count style bound: GetRange(0, RecordCount()) reads them all.
//
// Unless WithStrictRange is set the up front check only rejects a range
// that is reversed with both ends out of bounds, anything else fails on
// the first unreadable slot.
func (s *Store) GetRange(first, last int) ([]*model.Record, error) {
	count, err := s.RecordCount()
	if err != nil {
		return nil, err
	}

	last--
	if s.options.strictRange {
		if first < 0 || first > last+1 || last+1 > count {
			return nil, fmt.Errorf("%w: range [%d, %d), record count %d", ErrIndexOutOfRange, first, last+1, count)
		}
	} else if first >= last && !readable(first, count) && !readable(last, count) {
		return nil, fmt.Errorf("%w: range [%d, %d), record count %d", ErrIndexOutOfRange, first, last+1, count)
	}

	n := last - first + 1
	if n < 0 {
		n = 0
	}
	if n > count {
		n = count
	}
	records := make([]*model.Record, 0, n)

	s.readPos = s.offset(first)
	for first <= last {
		record, err := s.GetNextSequential()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		first++
		s.readPos = s.offset(first)
	}

	return records, nil
}

// GetRandom returns the record at a uniformly chosen index
func (s *Store) GetRandom() (*model.Record, error) {
	count, err := s.RecordCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, outOfRange("random", 0, count)
	}
	return s.GetAt(s.rnd.Intn(count))
}

// BoundsCheck reports whether index is valid: [0, count] for writes,
// [0, count) for reads
func (s *Store) BoundsCheck(index int, forWrite bool) (bool, error) {
	ok, _, err := s.boundsCheck(index, forWrite)
	return ok, err
}

func (s *Store) boundsCheck(index int, forWrite bool) (bool, int, error) {
	count, err := s.RecordCount()
	if err != nil {
		return false, 0, err
	}
	if forWrite {
		return index >= 0 && index <= count, count, nil
	}
	return readable(index, count), count, nil
}

func readable(index, count int) bool {
	return index >= 0 && index < count
}

func (s *Store) offset(index int) int64 {
	return int64(index) * s.slotSize
}

// Sync flushes the data file
func (s *Store) Sync() error {
	if s.closed {
		return ErrClosed
	}
	return s.dataFile.Sync()
}

// Close syncs and closes the data file and releases the file lock.
// The data stays on disk.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	syncErr := s.dataFile.Sync()
	return errors.Join(syncErr, s.release())
}

func (s *Store) release() error {
	s.closed = true
	err := s.dataFile.Close()
	if s.fileLock != nil {
		err = errors.Join(err, s.fileLock.Unlock())
		s.fileLock = nil
	}
	return err
}

// noCopy is reported by go vet's copylocks check when a Store is copied
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
