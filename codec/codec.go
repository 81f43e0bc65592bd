package codec

import "github.com/cqkv/campdb/model"

type Codec interface {
	// SlotSize is the constant encoded size of every record
	SlotSize() int64

	// MarshalRecord return exactly SlotSize bytes
	MarshalRecord(*model.Record) ([]byte, error)

	UnmarshalRecord([]byte, *model.Record) error
}
