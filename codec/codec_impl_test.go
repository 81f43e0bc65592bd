package codec

import (
	"encoding/binary"
	"errors"
	"strings"
	"testing"

	"github.com/cqkv/campdb/model"
	"github.com/cqkv/campdb/utils"
	"github.com/stretchr/testify/assert"
)

func newCodecImpl() *CodecImpl {
	return NewCodecImpl()
}

func TestCodecImpl_SlotSize(t *testing.T) {
	cl := newCodecImpl()
	assert.Equal(t, int64(148), cl.SlotSize())

	var _ Codec = cl
}

func TestCodecImpl_MarshalRecord(t *testing.T) {
	cl := newCodecImpl()
	record := model.NewRecord(-3, "tent", true, 12.5)

	data, err := cl.MarshalRecord(record)
	assert.Nil(t, err)
	assert.Equal(t, SlotSize, len(data))

	assert.Equal(t, byte(SlotVersion), data[0])
	assert.Equal(t, byte(1), data[1])
	assert.Equal(t, []byte{0, 0}, data[2:4])
	assert.Equal(t, int32(-3), int32(binary.LittleEndian.Uint32(data[4:8])))
	assert.Equal(t, "tent", string(data[16:20]))
	assert.Equal(t, byte(0), data[20])

	crc := binary.LittleEndian.Uint32(data[144:])
	assert.Equal(t, utils.Checksum(data[:144]), crc)

	// every record has the same encoded size
	other, err := cl.MarshalRecord(model.NewRecord(1, strings.Repeat("z", 500), false, 0))
	assert.Nil(t, err)
	assert.Equal(t, len(data), len(other))
	assert.Equal(t, byte(0), other[143])
}

func TestCodecImpl_UnmarshalRecord(t *testing.T) {
	cl := newCodecImpl()
	want := model.NewRecord(42, "cabin, riverfront", true, 99.99)

	data, err := cl.MarshalRecord(want)
	assert.Nil(t, err)

	got := &model.Record{}
	err = cl.UnmarshalRecord(data, got)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
}

func TestCodecImpl_UnmarshalRecord_Errors(t *testing.T) {
	cl := newCodecImpl()
	data, err := cl.MarshalRecord(model.NewRecord(1, "tent", false, 1))
	assert.Nil(t, err)

	err = cl.UnmarshalRecord(data[:10], &model.Record{})
	assert.Equal(t, ErrShortSlot, err)

	corrupted := append([]byte(nil), data...)
	corrupted[20] = 'x'
	err = cl.UnmarshalRecord(corrupted, &model.Record{})
	assert.Equal(t, ErrSlotCorrupted, err)

	future := append([]byte(nil), data...)
	future[0] = 2
	binary.LittleEndian.PutUint32(future[144:], utils.Checksum(future[:144]))
	err = cl.UnmarshalRecord(future, &model.Record{})
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))
}
