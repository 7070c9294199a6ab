// fingerprint.go — deterministic 64-bit error fingerprints for xgx-rail.
//
// The fingerprint is an FNV-1a digest over a configurable projection of a
// ComposableError, intended for grouping and deduplication:
//
//   tags     all tags across all Group contexts, sorted ascending,
//            each hashed as "tag:" + tag
//   code     when set, hashed as "code:" + 4 little-endian bytes
//   message  the core's display form, hashed as "msg:" + bytes
//   metadata (opt-in) key/value pairs, sorted ascending by key,
//            each hashed as "meta:" + key + "=" + value
//
// Sorting makes fingerprints independent of insertion order. FNV-1a is used
// deliberately for its determinism and lack of randomized seeding: hashes are
// stable across runs and hosts. It is not collision-resistant and is not
// meant to be.
package xgxrail

import (
	"encoding/binary"
	"hash/fnv"
	"slices"
	"strconv"
)

// FingerprintConfig selects which parts of the error feed the digest.
// The zero value includes nothing; use DefaultFingerprintConfig or the
// builder on ComposableError.
type FingerprintConfig struct {
	IncludeTags     bool
	IncludeCode     bool
	IncludeMessage  bool
	IncludeMetadata bool

	// IncludeMetadataKeys, when non-empty, restricts metadata hashing to
	// these keys. ExcludeMetadataKeys removes keys after the allow-list is
	// applied. Both only matter when IncludeMetadata is set.
	IncludeMetadataKeys []string
	ExcludeMetadataKeys []string
}

// DefaultFingerprintConfig is the projection used by Fingerprint():
// tags + code + core message, no metadata.
func DefaultFingerprintConfig() FingerprintConfig {
	return FingerprintConfig{IncludeTags: true, IncludeCode: true, IncludeMessage: true}
}

// Fingerprint computes the default 64-bit digest.
func (e *ComposableError) Fingerprint() uint64 {
	return e.FingerprintWith(DefaultFingerprintConfig())
}

// FingerprintHex returns Fingerprint() as 16 lowercase hex characters.
func (e *ComposableError) FingerprintHex() string {
	return fingerprintHex(e.Fingerprint())
}

// FingerprintWith computes the digest under an explicit configuration.
func (e *ComposableError) FingerprintWith(cfg FingerprintConfig) uint64 {
	h := fnv.New64a()

	if cfg.IncludeTags {
		var tags []string
		for _, ctx := range e.stack {
			tags = append(tags, ctx.tags...)
		}
		slices.Sort(tags)
		for _, t := range tags {
			_, _ = h.Write([]byte("tag:"))
			_, _ = h.Write([]byte(t))
		}
	}

	if cfg.IncludeCode && e.hasCode {
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], e.code)
		_, _ = h.Write([]byte("code:"))
		_, _ = h.Write(buf[:])
	}

	if cfg.IncludeMessage {
		_, _ = h.Write([]byte("msg:"))
		_, _ = h.Write([]byte(e.coreDisplay()))
	}

	if cfg.IncludeMetadata {
		var pairs []MetaPair
		for _, ctx := range e.stack {
			for _, kv := range ctx.meta {
				if !cfg.metadataKeyIncluded(kv.Key) {
					continue
				}
				pairs = append(pairs, kv)
			}
		}
		slices.SortFunc(pairs, func(a, b MetaPair) int {
			if a.Key != b.Key {
				if a.Key < b.Key {
					return -1
				}
				return 1
			}
			if a.Value < b.Value {
				return -1
			} else if a.Value > b.Value {
				return 1
			}
			return 0
		})
		for _, kv := range pairs {
			_, _ = h.Write([]byte("meta:"))
			_, _ = h.Write([]byte(kv.Key))
			_, _ = h.Write([]byte("="))
			_, _ = h.Write([]byte(kv.Value))
		}
	}

	return h.Sum64()
}

func (cfg FingerprintConfig) metadataKeyIncluded(key string) bool {
	if len(cfg.IncludeMetadataKeys) > 0 && !slices.Contains(cfg.IncludeMetadataKeys, key) {
		return false
	}
	return !slices.Contains(cfg.ExcludeMetadataKeys, key)
}

// -----------------------------------------------------------------------------
// Builder
// -----------------------------------------------------------------------------

// FingerprintBuilder configures a fingerprint fluently. Obtain via
// (*ComposableError).FingerprintConfig(); terminate with Compute() or Hex().
type FingerprintBuilder struct {
	err *ComposableError
	cfg FingerprintConfig
}

// FingerprintConfig starts a fingerprint builder seeded with the default
// projection.
func (e *ComposableError) FingerprintConfig() *FingerprintBuilder {
	return &FingerprintBuilder{err: e, cfg: DefaultFingerprintConfig()}
}

// WithMetadata includes sorted metadata pairs in the digest.
func (b *FingerprintBuilder) WithMetadata() *FingerprintBuilder {
	b.cfg.IncludeMetadata = true
	return b
}

// WithoutTags drops tags from the projection.
func (b *FingerprintBuilder) WithoutTags() *FingerprintBuilder {
	b.cfg.IncludeTags = false
	return b
}

// WithoutCode drops the code from the projection.
func (b *FingerprintBuilder) WithoutCode() *FingerprintBuilder {
	b.cfg.IncludeCode = false
	return b
}

// WithoutMessage drops the core display form from the projection.
func (b *FingerprintBuilder) WithoutMessage() *FingerprintBuilder {
	b.cfg.IncludeMessage = false
	return b
}

// IncludeKeys restricts metadata hashing to the given keys (implies
// WithMetadata).
func (b *FingerprintBuilder) IncludeKeys(keys ...string) *FingerprintBuilder {
	b.cfg.IncludeMetadata = true
	b.cfg.IncludeMetadataKeys = append(b.cfg.IncludeMetadataKeys, keys...)
	return b
}

// ExcludeKeys removes the given metadata keys from hashing (implies
// WithMetadata).
func (b *FingerprintBuilder) ExcludeKeys(keys ...string) *FingerprintBuilder {
	b.cfg.IncludeMetadata = true
	b.cfg.ExcludeMetadataKeys = append(b.cfg.ExcludeMetadataKeys, keys...)
	return b
}

// Compute runs the digest with the accumulated configuration.
func (b *FingerprintBuilder) Compute() uint64 {
	return b.err.FingerprintWith(b.cfg)
}

// Hex is Compute() as 16 lowercase hex characters.
func (b *FingerprintBuilder) Hex() string {
	return fingerprintHex(b.Compute())
}

func fingerprintHex(v uint64) string {
	s := strconv.FormatUint(v, 16)
	if len(s) < 16 {
		s = "0000000000000000"[:16-len(s)] + s
	}
	return s
}
