package domain

type LoadStatus string

const (
	// LoadOK means the collection was present and decoded.
	LoadOK LoadStatus = "ok"
	// LoadAbsent means nothing has been stored yet.
	LoadAbsent LoadStatus = "absent"
	// LoadRecovered means stored content failed to decode and was replaced by an empty collection.
	LoadRecovered LoadStatus = "recovered"
	// LoadUnavailable means the backend read failed.
	LoadUnavailable LoadStatus = "unavailable"
)

// Snapshot is a freshly decoded copy of a persisted collection.
type Snapshot[T any] struct {
	Items  []T
	Status LoadStatus
}
