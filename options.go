package campdb

import (
	"math/rand"

	"github.com/cqkv/campdb/codec"
	"github.com/cqkv/campdb/fio"
)

type options struct {
	ioManagerCreator func(path string) (fio.IOManager, error)
	codec            codec.Codec

	randSource rand.Source

	// sync the data file after every slot write
	syncWrites bool
	// GetRange rejects any range not inside [0, count]
	strictRange bool
	// take <path>.lock while the store is open
	fileLock bool
}

type Option func(*options)

var defaultIOManagerCreator = func(path string) (fio.IOManager, error) {
	return fio.OpenFileIO(path)
}

func defaultOptions() *options {
	return &options{
		ioManagerCreator: defaultIOManagerCreator,
		codec:            codec.NewCodecImpl(),
		fileLock:         true,
	}
}

// WithIOManagerCreator replaces the way an existing data file is opened,
// the creator must fail when the file does not exist
func WithIOManagerCreator(fn func(path string) (fio.IOManager, error)) Option {
	return func(o *options) {
		o.ioManagerCreator = fn
	}
}

func WithCodec(codec codec.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithSeed makes GetRandom reproducible
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.randSource = rand.NewSource(seed)
	}
}

func WithRandSource(src rand.Source) Option {
	return func(o *options) {
		o.randSource = src
	}
}

func WithSyncWrites(sync bool) Option {
	return func(o *options) {
		o.syncWrites = sync
	}
}

func WithStrictRange(strict bool) Option {
	return func(o *options) {
		o.strictRange = strict
	}
}

func WithFileLock(lock bool) Option {
	return func(o *options) {
		o.fileLock = lock
	}
}

type writeBatchOptions struct {
	maxBatchNum int
	// sync once after the whole batch is written
	syncOnCommit bool
}

type WriteBatchOption func(*writeBatchOptions)

func defaultWriteBatchOptions() *writeBatchOptions {
	return &writeBatchOptions{
		maxBatchNum:  10000,
		syncOnCommit: true,
	}
}

func WithMaxBatchNum(num int) WriteBatchOption {
	return func(o *writeBatchOptions) {
		o.maxBatchNum = num
	}
}

func WithSyncOnCommit(sync bool) WriteBatchOption {
	return func(o *writeBatchOptions) {
		o.syncOnCommit = sync
	}
}
