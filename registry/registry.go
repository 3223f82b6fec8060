package registry

import (
	"hash/fnv"
	"sort"
	"sync"

	"github.com/valyala/fastjson"

	"github.com/castorhq/castor/infer"
	"github.com/castorhq/castor/jsonschema"
	"github.com/castorhq/castor/merge"
)

const numShards = 16

// Registry maps a source key to the schema merged from every sample observed
// for that key so far. Keys are sharded over a fixed lock table so that
// observations for the same key serialize while different keys proceed in
// parallel.
type Registry struct {
	shards [numShards]shard
}

type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	schema  jsonschema.Schema
	samples int
}

func New() *Registry {
	r := &Registry{}
	for i := range r.shards {
		r.shards[i].entries = make(map[string]*entry)
	}
	return r
}

func (r *Registry) shardFor(key string) *shard {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &r.shards[h.Sum32()%numShards]
}

// ObserveBytes parses one sampled body and folds it into the entry for key.
// A parse failure leaves the entry untouched.
func (r *Registry) ObserveBytes(key string, b []byte) (jsonschema.Schema, error) {
	v, err := fastjson.ParseBytes(b)
	if err != nil {
		parseFailuresTotal.Inc()
		return nil, err
	}
	return r.ObserveValue(key, v), nil
}

// ObserveValue folds one sample into the entry for key and returns the new
// current schema. Building the sample node happens outside the lock; only
// the merge and store serialize per shard.
func (r *Registry) ObserveValue(key string, v *fastjson.Value) jsonschema.Schema {
	sample := infer.ParseSampleValue(v)

	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
		trackedSources.Inc()
	}
	e.schema = merge.Schema(e.schema, sample)
	e.samples++
	observationsTotal.Inc()
	return e.schema
}

// Current returns the merged schema for key, or false when the key has never
// been observed.
func (r *Registry) Current(key string) (jsonschema.Schema, bool) {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.schema, true
}

// Samples returns how many observations key has absorbed.
func (r *Registry) Samples(key string) int {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return 0
	}
	return e.samples
}

// Reset drops all history for key. Resetting an unknown key is a no-op.
func (r *Registry) Reset(key string) {
	s := r.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; ok {
		delete(s.entries, key)
		trackedSources.Dec()
	}
}

// Keys returns every tracked source key, sorted.
func (r *Registry) Keys() []string {
	var keys []string
	for i := range r.shards {
		s := &r.shards[i]
		s.mu.Lock()
		for k := range s.entries {
			keys = append(keys, k)
		}
		s.mu.Unlock()
	}
	sort.Strings(keys)
	return keys
}
