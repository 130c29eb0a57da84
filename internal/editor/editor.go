// Package editor holds the in-memory scene state behind the authoring UI:
// the ordered scene object collection, the asset registry and the
// synchronization engine that keeps a remote store of record eventually
// consistent with optimistic local mutations.
//
// All mutation enters through the Engine (single-writer rule); the UI and
// the compiler only ever read snapshots.
package editor

import (
	"context"
	"errors"

	"arstudio/internal/models"
)

var (
	// ErrNotFound is returned for mutations addressing an id that is not
	// in local state. No network round-trip is made.
	ErrNotFound = errors.New("editor: object not found")

	// ErrDuplicateID is returned when a create reuses an existing id.
	ErrDuplicateID = errors.New("editor: duplicate object id")

	// ErrNoProject is returned for scene mutations before a project is open.
	ErrNoProject = errors.New("editor: no project open")
)

// SyncState tags each optimistically mutated entity with where it stands
// against the store of record.
type SyncState int

const (
	StateLocal   SyncState = iota // exists locally, persistence not yet issued
	StateSyncing                  // persistence request in flight
	StateSynced                   // store of record confirmed
	StateFailed                   // persistence failed; kept for manual retry
)

func (s SyncState) String() string {
	switch s {
	case StateLocal:
		return "local"
	case StateSyncing:
		return "syncing"
	case StateSynced:
		return "synced"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RawFile is an ingested file before any remote persistence: name, MIME
// type and content as captured from the picker.
type RawFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// RemoteStore is the store of record the engine writes behind. The REST
// client in internal/client implements it; tests substitute fakes.
type RemoteStore interface {
	FetchProject(ctx context.Context, id string) (models.Project, []models.SceneObject, error)
	UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error)

	CreateObject(ctx context.Context, projectID string, obj models.SceneObject) (models.SceneObject, error)
	UpdateObject(ctx context.Context, id string, patch models.SceneObjectPatch) error
	DeleteObject(ctx context.Context, id string) error

	UploadAsset(ctx context.Context, file RawFile) (models.Asset, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
}
