package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer builds cache keys for the pipeline stages.
type Keyer interface {
	// PointsKey is the key of a generated point cloud.
	PointsKey(opts PointsKeyOpts) string

	// ArtifactKey is the key of a rendered artifact of the given points.
	ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string
}

// PointsKeyOpts identifies a generation run.
type PointsKeyOpts struct {
	Game         string `json:"game"`
	ControlsHash string `json:"controls_hash"`
	Points       int    `json:"points"`
	Seed         uint64 `json:"seed"`
}

// ArtifactKeyOpts identifies a rendering of a point cloud.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Radius     float64 `json:"radius"`
	Background string  `json:"background"`
	Targets    bool    `json:"targets"`
}

// DefaultKeyer hashes options into namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// PointsKey implements Keyer.
func (DefaultKeyer) PointsKey(opts PointsKeyOpts) string {
	return digestKey("points", opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string {
	return digestKey("artifact:"+opts.Format, pointsHash, opts)
}

// digestKey is namespace followed by the digest of the JSON array of parts.
// Parts are option structs and hashes, which always encode.
func digestKey(namespace string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return namespace + ":" + Hash(data)
}

// Hash is the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON is the Hash of v's JSON encoding.
func HashJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}

// ScopedKeyer prefixes every key of an inner Keyer so that deployments or
// engine versions sharing one Redis never read each other's entries.
type ScopedKeyer struct {
	Keyer
	prefix string
}

// NewScopedKeyer prefixes inner's keys. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	return ScopedKeyer{Keyer: inner, prefix: prefix}
}

func (k ScopedKeyer) PointsKey(opts PointsKeyOpts) string {
	return k.prefix + k.Keyer.PointsKey(opts)
}

func (k ScopedKeyer) ArtifactKey(pointsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.Keyer.ArtifactKey(pointsHash, opts)
}
