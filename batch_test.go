package campdb

import (
	"errors"
	"testing"

	"github.com/cqkv/campdb/model"
	"github.com/stretchr/testify/assert"
)

func TestWriteBatch(t *testing.T) {
	s, _ := openTestStore(t)
	fillStore(t, s, 3)

	wb := s.NewWriteBatch()
	assert.NotNil(t, wb)

	// do not commit
	err := wb.Put(1, site(10))
	assert.Nil(t, err)
	err = wb.Put(3, site(30))
	assert.Nil(t, err)
	assert.Equal(t, 2, wb.Len())

	record, err := s.GetAt(1)
	assert.Nil(t, err)
	assert.Equal(t, site(1), record)
	count, _ := s.RecordCount()
	assert.Equal(t, 3, count)

	// commit
	err = wb.Commit()
	assert.Nil(t, err)
	assert.Equal(t, 0, wb.Len())

	record, err = s.GetAt(1)
	assert.Nil(t, err)
	assert.Equal(t, site(10), record)
	record, err = s.GetAt(3)
	assert.Nil(t, err)
	assert.Equal(t, site(30), record)
}

func TestWriteBatch_ContiguousGrowth(t *testing.T) {
	s, _ := openTestStore(t)
	fillStore(t, s, 2)

	wb := s.NewWriteBatch(WithSyncOnCommit(false))
	for _, index := range []int{4, 2, 3} {
		assert.Nil(t, wb.Put(index, site(index)))
	}
	assert.Nil(t, wb.Commit())

	count, _ := s.RecordCount()
	assert.Equal(t, 5, count)
	records, err := s.Records()
	assert.Nil(t, err)
	for i, record := range records {
		assert.Equal(t, site(i), record)
	}
}

func TestWriteBatch_RejectsBeforeWriting(t *testing.T) {
	s, _ := openTestStore(t)
	fillStore(t, s, 3)

	wb := s.NewWriteBatch()
	assert.Nil(t, wb.Put(0, site(100)))
	assert.Nil(t, wb.Put(5, site(500)))

	err := wb.Commit()
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))

	// slot 0 was not touched
	record, err := s.GetAt(0)
	assert.Nil(t, err)
	assert.Equal(t, site(0), record)

	err = wb.Put(-1, site(0))
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Equal(t, "campdb err: index out of bounds: batch index -1", err.Error())
}

func TestWriteBatch_MaxBatchNum(t *testing.T) {
	s, _ := openTestStore(t)

	wb := s.NewWriteBatch(WithMaxBatchNum(2))
	assert.Nil(t, wb.Put(0, site(0)))
	assert.Nil(t, wb.Put(1, site(1)))
	// overwriting a staged index does not count
	assert.Nil(t, wb.Put(1, site(11)))
	assert.Equal(t, ErrExceedMaxBatchNum, wb.Put(2, site(2)))

	wb.Discard()
	assert.Equal(t, 0, wb.Len())
	assert.Nil(t, wb.Commit())
}

func TestWriteBatch_CopiesRecord(t *testing.T) {
	s, _ := openTestStore(t)

	r := model.NewRecord(1, "tent", false, 5)
	wb := s.NewWriteBatch()
	assert.Nil(t, wb.Put(0, r))
	r.Number = 99
	assert.Nil(t, wb.Commit())

	record, err := s.GetAt(0)
	assert.Nil(t, err)
	assert.Equal(t, int32(1), record.Number)
}

func TestStore_SwapBatch(t *testing.T) {
	s, _ := openTestStore(t)
	fillStore(t, s, 6)

	assert.Nil(t, s.SwapBatch(0, 5))
	first, _ := s.GetAt(0)
	last, _ := s.GetAt(5)
	assert.Equal(t, site(5), first)
	assert.Equal(t, site(0), last)

	assert.Nil(t, s.SwapBatch(2, 2))
	same, _ := s.GetAt(2)
	assert.Equal(t, site(2), same)

	err := s.SwapBatch(0, 6)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}
