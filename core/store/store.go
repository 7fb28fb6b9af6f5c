package store

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"dex-wiki/core/models"
	"dex-wiki/core/rwlock"
	"dex-wiki/core/slug"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cacheKey identifies one cached record. Subfolder is only set for creatures.
type cacheKey struct {
	Kind      models.Kind
	ID        string
	Subfolder string
}

func (k cacheKey) String() string {
	if k.Subfolder == "" {
		return string(k.Kind) + "/" + k.ID
	}
	return string(k.Kind) + "/" + k.Subfolder + "/" + k.ID
}

// Store loads records from the data root and keeps them in one LRU cache
// shared by every record kind. It is safe for concurrent use.
type Store struct {
	logger  *zap.Logger
	metrics *Metrics
	workers int

	dirMu   sync.RWMutex
	dataDir string

	// lock guards cache, subfolders, maxSize and the save sequence. Readers
	// additionally take lruMu around cache.Get, which reorders the recency
	// list.
	lock       *rwlock.RWLock
	lruMu      sync.Mutex
	cache      *simplelru.LRU[cacheKey, models.Record]
	subfolders map[string]string
	maxSize    int
	// saveSeq counts Saves; savedAt holds the sequence of each key's last
	// Save so a preload batch read earlier can tell its copy is stale.
	saveSeq uint64
	savedAt map[cacheKey]uint64

	hits      atomic.Uint64
	misses    atomic.Uint64
	diskReads atomic.Uint64

	// fileMu serializes writes to the data root.
	fileMu sync.Mutex
	loads  singleflight.Group
}

// Option configures a Store.
type Option func(*Store)

// WithMetrics reports cache activity to m.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// New creates a store rooted at cfg.Dir.
func New(cfg Config, logger *zap.Logger, opts ...Option) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	size := cfg.MaxCacheSize
	if size == 0 {
		size = DefaultMaxCacheSize
	}
	if size < 0 {
		return nil, fmt.Errorf("max cache size must be positive, got %d", size)
	}

	s := &Store{
		logger:     logger,
		workers:    cfg.PreloadWorkers,
		dataDir:    cfg.Dir,
		lock:       rwlock.New(),
		subfolders: make(map[string]string),
		maxSize:    size,
		savedAt:    make(map[cacheKey]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}

	cache, err := s.newCache(size)
	if err != nil {
		return nil, err
	}
	s.cache = cache
	return s, nil
}

func (s *Store) newCache(size int) (*simplelru.LRU[cacheKey, models.Record], error) {
	return simplelru.NewLRU(size, func(key cacheKey, _ models.Record) {
		s.metrics.evicted()
		s.logger.Debug("Evicted record from cache", zap.Stringer("key", key))
	})
}

// DataDir returns the current data root.
func (s *Store) DataDir() string {
	s.dirMu.RLock()
	defer s.dirMu.RUnlock()
	return s.dataDir
}

// SetDataDir points the store at a new data root and clears the cache.
func (s *Store) SetDataDir(dir string) {
	s.dirMu.Lock()
	s.dataDir = dir
	s.dirMu.Unlock()

	s.ClearCache()
	s.logger.Info("Data directory changed", zap.String("dir", dir))
}

// Load returns the record of the given kind and id. Ids are normalized, so
// "Mr. Mime" and "mr-mime" resolve to the same record. subfolder is only
// meaningful for creatures; when empty the last known subfolder is tried
// first, then every subfolder in order.
//
// Missing and malformed files are logged and reported as not found.
func (s *Store) Load(kind models.Kind, id, subfolder string) (models.Record, bool) {
	id = slug.Normalize(id)
	if id == "" {
		return nil, false
	}
	if kind != models.KindCreature {
		return s.loadKey(cacheKey{Kind: kind, ID: id})
	}
	if subfolder != "" {
		return s.loadKey(cacheKey{Kind: kind, ID: id, Subfolder: subfolder})
	}
	return s.loadCreature(id)
}

// Creature loads a creature.
func (s *Store) Creature(id, subfolder string) (*models.Creature, bool) {
	return loadAs[*models.Creature](s, models.KindCreature, id, subfolder)
}

// Move loads a move.
func (s *Store) Move(id string) (*models.Move, bool) {
	return loadAs[*models.Move](s, models.KindMove, id, "")
}

// Ability loads an ability.
func (s *Store) Ability(id string) (*models.Ability, bool) {
	return loadAs[*models.Ability](s, models.KindAbility, id, "")
}

// Item loads an item.
func (s *Store) Item(id string) (*models.Item, bool) {
	return loadAs[*models.Item](s, models.KindItem, id, "")
}

func loadAs[T models.Record](s *Store, kind models.Kind, id, subfolder string) (T, bool) {
	var zero T
	rec, ok := s.Load(kind, id, subfolder)
	if !ok {
		return zero, false
	}
	typed, ok := rec.(T)
	if !ok {
		panic(&TypeMismatchError{Kind: kind, ID: id, Got: rec.Kind()})
	}
	return typed, true
}

func (s *Store) loadCreature(id string) (models.Record, bool) {
	var known string
	s.lock.WithRead(func() {
		known = s.subfolders[id]
	})

	if known != "" {
		if rec, ok := s.loadKey(cacheKey{Kind: models.KindCreature, ID: id, Subfolder: known}); ok {
			return rec, true
		}
	}

	for _, sf := range models.CreatureSubfolders {
		if sf == known {
			continue
		}
		if rec, ok := s.loadKey(cacheKey{Kind: models.KindCreature, ID: id, Subfolder: sf}); ok {
			return rec, true
		}
	}

	s.logger.Warn("Creature not found in any subfolder", zap.String("id", id))
	return nil, false
}

func (s *Store) loadKey(key cacheKey) (models.Record, bool) {
	if rec, ok := s.lookup(key); ok {
		s.hits.Add(1)
		s.metrics.hit()
		return rec, true
	}
	s.misses.Add(1)
	s.metrics.miss()

	// Concurrent misses for one key share a single disk read.
	v, err, _ := s.loads.Do(key.String(), func() (any, error) {
		if rec, ok := s.lookup(key); ok {
			return rec, nil
		}
		return s.readRecord(key)
	})
	if err != nil {
		s.logLoadError(key, err)
		return nil, false
	}

	return s.insert(key, v.(models.Record)), true
}

func (s *Store) logLoadError(key cacheKey, err error) {
	if errors.Is(err, ErrNotFound) {
		s.logger.Debug("Record not found", zap.Stringer("key", key))
		return
	}
	s.metrics.decodeFailed()
	s.logger.Error("Failed to load record", zap.Stringer("key", key), zap.Error(err))
}

// lookup checks the cache under the read lock and promotes a hit.
func (s *Store) lookup(key cacheKey) (rec models.Record, ok bool) {
	s.lock.WithRead(func() {
		s.lruMu.Lock()
		rec, ok = s.cache.Get(key)
		s.lruMu.Unlock()
	})
	if ok {
		checkKind(key, rec)
	}
	return rec, ok
}

// insert adds rec unless another caller got there first, in which case the
// cached record wins and is returned.
func (s *Store) insert(key cacheKey, rec models.Record) models.Record {
	s.lock.WithWrite(func() {
		if existing, ok := s.cache.Get(key); ok {
			rec = existing
		} else {
			s.cache.Add(key, rec)
		}
		if key.Kind == models.KindCreature && key.Subfolder != "" {
			s.subfolders[key.ID] = key.Subfolder
		}
		s.metrics.size(s.cache.Len())
	})
	checkKind(key, rec)
	return rec
}

// put stores rec unconditionally, replacing any cached value.
func (s *Store) put(key cacheKey, rec models.Record) {
	s.lock.WithWrite(func() {
		s.saveSeq++
		s.savedAt[key] = s.saveSeq
		s.cache.Add(key, rec)
		if key.Kind == models.KindCreature && key.Subfolder != "" {
			s.subfolders[key.ID] = key.Subfolder
		}
		s.metrics.size(s.cache.Len())
	})
}

// saveSequence returns the number of Saves so far.
func (s *Store) saveSequence() uint64 {
	var n uint64
	s.lock.WithRead(func() {
		n = s.saveSeq
	})
	return n
}

func checkKind(key cacheKey, rec models.Record) {
	if rec.Kind() != key.Kind {
		panic(&TypeMismatchError{Kind: key.Kind, ID: key.ID, Got: rec.Kind()})
	}
}

// ClearCache drops every cached record, forgets known subfolders and resets
// the hit and miss counters.
func (s *Store) ClearCache() {
	var dropped int
	s.lock.WithWrite(func() {
		dropped = s.cache.Len()
		// A fresh cache rather than Purge, so clearing does not count as
		// evictions.
		cache, err := s.newCache(s.maxSize)
		if err != nil {
			s.cache.Purge()
		} else {
			s.cache = cache
		}
		s.subfolders = make(map[string]string)
		s.hits.Store(0)
		s.misses.Store(0)
		s.metrics.size(0)
	})
	s.logger.Info("Cleared record cache", zap.Int("dropped", dropped))
}

// SetMaxCacheSize changes the cache bound. Shrinking evicts least recently
// used records immediately.
func (s *Store) SetMaxCacheSize(n int) error {
	if n <= 0 {
		return fmt.Errorf("max cache size must be positive, got %d", n)
	}
	var evicted int
	s.lock.WithWrite(func() {
		evicted = s.cache.Resize(n)
		s.maxSize = n
		s.metrics.size(s.cache.Len())
	})
	s.logger.Info("Cache size changed", zap.Int("max_size", n), zap.Int("evicted", evicted))
	return nil
}

// CacheSize returns the number of cached records.
func (s *Store) CacheSize() int {
	var n int
	s.lock.WithRead(func() {
		n = s.cache.Len()
	})
	return n
}

// DiskReads returns how many record files have been read from disk.
func (s *Store) DiskReads() uint64 {
	return s.diskReads.Load()
}

// Stats is a point-in-time snapshot of cache usage.
type Stats struct {
	Sizes         map[models.Kind]int `json:"sizes"`
	TotalSize     int                 `json:"total_size"`
	MaxSize       int                 `json:"max_size"`
	Hits          uint64              `json:"hits"`
	Misses        uint64              `json:"misses"`
	TotalRequests uint64              `json:"total_requests"`
	// HitRate is a percentage in [0, 100].
	HitRate float64 `json:"hit_rate"`
}

// Stats returns a snapshot of cache sizes and hit counters.
func (s *Store) Stats() Stats {
	st := Stats{Sizes: make(map[models.Kind]int, len(models.Kinds))}
	for _, k := range models.Kinds {
		st.Sizes[k] = 0
	}

	s.lock.WithRead(func() {
		s.lruMu.Lock()
		keys := s.cache.Keys()
		s.lruMu.Unlock()
		for _, k := range keys {
			st.Sizes[k.Kind]++
		}
		st.TotalSize = len(keys)
		st.MaxSize = s.maxSize
	})

	st.Hits = s.hits.Load()
	st.Misses = s.misses.Load()
	st.TotalRequests = st.Hits + st.Misses
	if st.TotalRequests > 0 {
		st.HitRate = float64(st.Hits) / float64(st.TotalRequests) * 100
	}
	return st
}
