package editor

import (
	"context"
	"fmt"
	"iter"
	"log"
	"sync"
	"time"

	"arstudio/internal/models"
)

// Registry is the editor-side catalog of uploaded media. Ingest returns a
// usable asset synchronously under an interim local id and url; the
// background upload swaps in the server-confirmed record in place once
// persistence completes.
type Registry struct {
	mu      sync.Mutex
	store   RemoteStore
	timeout time.Duration
	wg      sync.WaitGroup

	assets []models.Asset // most recently ingested first
	states map[string]SyncState
}

func NewRegistry(store RemoteStore) *Registry {
	return &Registry{
		store:   store,
		timeout: defaultSyncTimeout,
		states:  make(map[string]SyncState),
	}
}

// Load replaces the catalog with the authoritative asset list.
func (r *Registry) Load(ctx context.Context) error {
	assets, err := r.store.ListAssets(ctx)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = assets
	r.states = make(map[string]SyncState, len(assets))
	for i := range assets {
		r.states[assets[i].ID] = StateSynced
	}
	return nil
}

// Ingest classifies the file, registers it under an interim local id and
// object url, and uploads it in the background. The returned asset is
// usable immediately.
func (r *Registry) Ingest(file RawFile) models.Asset {
	localID := newLocalID()
	asset := models.Asset{
		ID:           localID,
		Name:         file.Name,
		Kind:         models.ClassifyAssetKind(file.ContentType, file.Name),
		URL:          fmt.Sprintf("local://%s/%s", localID, file.Name),
		ThumbnailURL: fmt.Sprintf("local://%s/%s", localID, file.Name),
		SizeLabel:    models.FormatSizeLabel(int64(len(file.Data))),
	}

	r.mu.Lock()
	r.assets = append([]models.Asset{asset}, r.assets...)
	r.states[localID] = StateSyncing
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.persistUpload(ctx, localID, file)
	}()
	return asset
}

func (r *Registry) persistUpload(ctx context.Context, localID string, file RawFile) {
	confirmed, err := r.store.UploadAsset(ctx, file)

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(localID)
	if err != nil {
		if i >= 0 {
			r.states[localID] = StateFailed
		}
		log.Printf("editor: upload of %s failed: %v", file.Name, err)
		return
	}
	if i < 0 {
		return
	}
	// interim id/url replaced in place, keyed off the local id
	r.assets[i] = confirmed
	delete(r.states, localID)
	r.states[confirmed.ID] = StateSynced
}

// List yields the catalog most recently ingested first, optionally
// filtered by kind (empty kind means all). The sequence is lazy over a
// snapshot taken at call time and can be ranged more than once.
func (r *Registry) List(kind models.AssetKind) iter.Seq[models.Asset] {
	r.mu.Lock()
	snapshot := make([]models.Asset, len(r.assets))
	copy(snapshot, r.assets)
	r.mu.Unlock()

	return func(yield func(models.Asset) bool) {
		for _, a := range snapshot {
			if kind != "" && a.Kind != kind {
				continue
			}
			if !yield(a) {
				return
			}
		}
	}
}

// Lookup returns one asset by id.
func (r *Registry) Lookup(id string) (models.Asset, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := r.indexOf(id); i >= 0 {
		return r.assets[i], true
	}
	return models.Asset{}, false
}

// State reports an asset's sync standing.
func (r *Registry) State(id string) (SyncState, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.states[id]
	return s, ok
}

// Snapshot returns the catalog keyed by id, for the compiler.
func (r *Registry) Snapshot() map[string]models.Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]models.Asset, len(r.assets))
	for i := range r.assets {
		out[r.assets[i].ID] = r.assets[i]
	}
	return out
}

// Flush waits for in-flight uploads.
func (r *Registry) Flush() {
	r.wg.Wait()
}

func (r *Registry) indexOf(id string) int {
	for i := range r.assets {
		if r.assets[i].ID == id {
			return i
		}
	}
	return -1
}
