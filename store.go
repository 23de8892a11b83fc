package embergo

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hupe1980/embergo/alias"
	"github.com/hupe1980/embergo/codec"
	"github.com/hupe1980/embergo/fingerprint"
	"github.com/hupe1980/embergo/internal/fs"
	"github.com/hupe1980/embergo/pathindex"
	"github.com/hupe1980/embergo/unembed"
)

// aliasFile is the alias document at the store root. It is always plain
// JSON so it stays inspectable regardless of the artifact codec.
const aliasFile = "aliases.json"

// Store is the experiment-artifact store. It persists problems,
// embeddings, and sample sets under structural fingerprints, with
// human-chosen aliases and tag-based sub-namespacing.
//
// A Store is safe for concurrent use within one process. Multiple
// processes may share a root directory; artifact writes are atomic per
// entry, but concurrent sample-set merges across processes are
// last-rename-wins (see PutSampleSet).
type Store struct {
	index      pathindex.Index
	codec      codec.Codec
	logger     *Logger
	aliases    *alias.Table
	engine     *fingerprint.Engine
	unembedder unembed.Func
	now        func() time.Time

	// merges serializes in-process writers per sample-set location.
	merges keyedMutex
}

// Open opens (or initializes) a store rooted at dir.
func Open(dir string, optFns ...func(o *Options)) (*Store, error) {
	opts := Options{
		Codec:      codec.Default,
		Logger:     NoopLogger(),
		Unembedder: unembed.MajorityVote,
		Now:        time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = fs.Default
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("embergo: create root %s: %w", dir, err)
	}

	aliases, err := alias.Load(fsys, codec.JSON{}, filepath.Join(dir, aliasFile))
	if err != nil {
		return nil, err
	}

	index := opts.Index
	if index == nil {
		index, err = pathindex.NewFS(dir, fsys)
		if err != nil {
			return nil, err
		}
	}

	return &Store{
		index:      index,
		codec:      opts.Codec,
		logger:     opts.Logger,
		aliases:    aliases,
		engine:     fingerprint.NewEngine(aliases),
		unembedder: opts.Unembedder,
		now:        opts.Now,
	}, nil
}

// Close flushes the alias table and releases index resources.
func (s *Store) Close() error {
	if err := s.aliases.Flush(); err != nil {
		return err
	}
	return s.index.Close()
}

// SetProblemAlias binds a name to a problem fingerprint.
func (s *Store) SetProblemAlias(name, fp string) error {
	return s.aliases.Register(alias.KindProblem, name, fp)
}

// SetSourceAlias binds a name to a source-graph fingerprint.
func (s *Store) SetSourceAlias(name, fp string) error {
	return s.aliases.Register(alias.KindSource, name, fp)
}

// SetTargetAlias binds a name to a target-graph fingerprint.
func (s *Store) SetTargetAlias(name, fp string) error {
	return s.aliases.Register(alias.KindTarget, name, fp)
}

// SetEmbeddingAlias binds a name to an embedding fingerprint.
func (s *Store) SetEmbeddingAlias(name, fp string) error {
	return s.aliases.Register(alias.KindEmbedding, name, fp)
}

// keyedMutex hands out one mutex per string key, releasing entries once
// their last holder unlocks.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

// lock blocks until the key's mutex is held and returns its unlock func.
func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*lockEntry)
	}
	entry, ok := k.locks[key]
	if !ok {
		entry = &lockEntry{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()
		k.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
