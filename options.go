package embergo

import (
	"time"

	"github.com/hupe1980/embergo/codec"
	"github.com/hupe1980/embergo/internal/fs"
	"github.com/hupe1980/embergo/pathindex"
	"github.com/hupe1980/embergo/unembed"
)

// Options configure a Store.
type Options struct {
	// Codec encodes and decodes artifact payloads. Defaults to plain JSON;
	// see codec.ByName for the compressed variants.
	Codec codec.Codec

	// Index is the storage substrate. Defaults to the filesystem backend
	// rooted at the store's root directory.
	Index pathindex.Index

	// Logger receives structured operation logs. Defaults to a silent
	// logger.
	Logger *Logger

	// Unembedder resolves target-level sample sets back to problem
	// variables. Defaults to unembed.MajorityVote.
	Unembedder unembed.Func

	// Now supplies timestamps for merged sample-set names. Overridable for
	// tests.
	Now func() time.Time

	// FS is the filesystem used for the alias table and the default index.
	FS fs.FileSystem
}

// WithCodec sets the artifact codec.
func WithCodec(c codec.Codec) func(o *Options) {
	return func(o *Options) {
		o.Codec = c
	}
}

// WithIndex sets the storage substrate.
func WithIndex(idx pathindex.Index) func(o *Options) {
	return func(o *Options) {
		o.Index = idx
	}
}

// WithLogger sets the logger.
func WithLogger(l *Logger) func(o *Options) {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUnembedder sets the chain-resolution strategy.
func WithUnembedder(fn unembed.Func) func(o *Options) {
	return func(o *Options) {
		o.Unembedder = fn
	}
}

// WithClock sets the timestamp source.
func WithClock(now func() time.Time) func(o *Options) {
	return func(o *Options) {
		o.Now = now
	}
}

// WithFileSystem sets the filesystem abstraction.
func WithFileSystem(fsys fs.FileSystem) func(o *Options) {
	return func(o *Options) {
		o.FS = fsys
	}
}
