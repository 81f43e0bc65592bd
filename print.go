package campdb

import (
	"fmt"
	"io"

	"github.com/cqkv/campdb/model"
)

// Records returns every record in index order
func (s *Store) Records() ([]*model.Record, error) {
	count, err := s.RecordCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return []*model.Record{}, nil
	}
	return s.GetRange(0, count)
}

// PrintRecord writes the record at index to w in the listing format
func (s *Store) PrintRecord(index int, w io.Writer) error {
	record, err := s.GetAt(index)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, record.String())
	return err
}

// ListRecords writes every record to w, one per line.
// The read cursor is rewound to the first record afterwards.
func (s *Store) ListRecords(w io.Writer) error {
	count, err := s.RecordCount()
	if err != nil {
		return err
	}

	s.readPos = 0
	defer func() {
		s.readPos = 0
	}()

	for i := 0; i < count; i++ {
		record, err := s.GetNextSequential()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, record); err != nil {
			return err
		}
	}
	return nil
}
