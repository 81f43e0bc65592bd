package campdb

import (
	"fmt"
	"sort"

	"github.com/cqkv/campdb/model"
)

// WriteBatch stages slot writes and commits them together.
// Commit checks every index before the first write, so a bad index never
// leaves part of the batch on disk. There is no rollback for I/O errors.
type WriteBatch struct {
	store         *Store
	options       *writeBatchOptions
	pendingWrites map[int]*model.Record
}

func (s *Store) NewWriteBatch(options ...WriteBatchOption) *WriteBatch {
	opts := defaultWriteBatchOptions()

	for _, opt := range options {
		opt(opts)
	}

	return &WriteBatch{
		store:         s,
		options:       opts,
		pendingWrites: make(map[int]*model.Record),
	}
}

// Put stages record for index, a later Put to the same index wins
func (wb *WriteBatch) Put(index int, record *model.Record) error {
	if index < 0 {
		return fmt.Errorf("%w: batch index %d", ErrIndexOutOfRange, index)
	}

	if _, ok := wb.pendingWrites[index]; !ok && len(wb.pendingWrites) == wb.options.maxBatchNum {
		return ErrExceedMaxBatchNum
	}

	// keep a copy so the caller can reuse record
	staged := *record
	wb.pendingWrites[index] = &staged
	return nil
}

// Len is the number of staged writes
func (wb *WriteBatch) Len() int {
	return len(wb.pendingWrites)
}

// Discard drops every staged write
func (wb *WriteBatch) Discard() {
	wb.pendingWrites = make(map[int]*model.Record)
}

// Commit writes the staged records in ascending index order. Indices may
// grow the file only contiguously: with count records the batch may
// touch count, then count+1 and so on.
func (wb *WriteBatch) Commit() error {
	if len(wb.pendingWrites) == 0 {
		return nil
	}

	indices := make([]int, 0, len(wb.pendingWrites))
	for index := range wb.pendingWrites {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	count, err := wb.store.RecordCount()
	if err != nil {
		return err
	}
	next := count
	for _, index := range indices {
		if index > next {
			return outOfRange("batch", index, count)
		}
		if index == next {
			next++
		}
	}

	for _, index := range indices {
		if err := wb.store.WriteAt(index, wb.pendingWrites[index]); err != nil {
			return err
		}
	}

	if wb.options.syncOnCommit {
		if err := wb.store.Sync(); err != nil {
			return err
		}
	}

	wb.Discard()
	return nil
}

// SwapBatch exchanges two records through a write batch
func (s *Store) SwapBatch(indexA, indexB int) error {
	recordA, err := s.GetAt(indexA)
	if err != nil {
		return err
	}
	recordB, err := s.GetAt(indexB)
	if err != nil {
		return err
	}

	wb := s.NewWriteBatch(WithSyncOnCommit(s.options.syncWrites))
	if err := wb.Put(indexA, recordB); err != nil {
		return err
	}
	if err := wb.Put(indexB, recordA); err != nil {
		return err
	}
	return wb.Commit()
}
