package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/cqkv/campdb/model"
	"github.com/cqkv/campdb/utils"
)

var (
	ErrShortSlot          = addPrefix("slot is too short")
	ErrSlotCorrupted      = addPrefix("slot checksum mismatch")
	ErrUnsupportedVersion = addPrefix("unsupported slot version")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("campdb codec err: %s", errStr)
}

const (
	SlotVersion = 1

	versionOff  = 0
	electricOff = 1
	numberOff   = 4
	rateOff     = 8
	descOff     = 16
	crcOff      = descOff + model.DescSize

	// SlotSize is the size of a v1 slot
	SlotSize = crcOff + 4
)

type CodecImpl struct{}

func NewCodecImpl() *CodecImpl {
	return &CodecImpl{}
}

/*
default codec, little endian, 148 bytes per slot:
	version(1) | hasElectric(1) | reserved(2) | number(4) | rate(8) | description(128) | crc(4)
	description is NUL padded and always NUL terminated
	crc covers every byte before it
*/

func (cl *CodecImpl) SlotSize() int64 {
	return SlotSize
}

// MarshalRecord return the slot data
func (cl *CodecImpl) MarshalRecord(record *model.Record) ([]byte, error) {
	data := make([]byte, SlotSize)

	data[versionOff] = SlotVersion
	if record.HasElectric {
		data[electricOff] = 1
	}

	binary.LittleEndian.PutUint32(data[numberOff:], uint32(record.Number))
	binary.LittleEndian.PutUint64(data[rateOff:], math.Float64bits(record.Rate))

	// copy carefully, the last byte of the field stays NUL
	copy(data[descOff:crcOff-1], model.TruncateDescription(record.Description))

	binary.LittleEndian.PutUint32(data[crcOff:], utils.Checksum(data[:crcOff]))
	return data, nil
}

func (cl *CodecImpl) UnmarshalRecord(data []byte, record *model.Record) error {
	if len(data) < SlotSize {
		return ErrShortSlot
	}

	crc := binary.LittleEndian.Uint32(data[crcOff:])
	if !utils.VerifyChecksum(data[:crcOff], crc) {
		return ErrSlotCorrupted
	}

	if data[versionOff] != SlotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[versionOff])
	}

	desc := data[descOff:crcOff]
	if i := bytes.IndexByte(desc, 0); i >= 0 {
		desc = desc[:i]
	}

	record.Number = int32(binary.LittleEndian.Uint32(data[numberOff:]))
	record.HasElectric = data[electricOff] == 1
	record.Rate = math.Float64frombits(binary.LittleEndian.Uint64(data[rateOff:]))
	record.Description = string(desc)
	return nil
}
