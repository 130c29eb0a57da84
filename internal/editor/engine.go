package editor

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"arstudio/internal/compiler"
	"arstudio/internal/models"
)

// defaultSyncTimeout bounds every background persistence request so an
// unresolved request degrades to Failed instead of pending forever.
const defaultSyncTimeout = 15 * time.Second

// objectSync tracks one object's standing against the store of record.
type objectSync struct {
	state SyncState
	// queued coalesces updates issued while the create is still in
	// flight; it is flushed under the server id once the create acks.
	queued *models.SceneObjectPatch
	// deleted marks an object removed locally before its create acked.
	deleted bool
}

// Engine owns the in-memory scene snapshot and reconciles optimistic
// local mutations with the remote store of record. Mutations apply
// locally first, in issue order, and persist in the background;
// acknowledgement handlers key off the locally issued id, never off
// arrival order.
type Engine struct {
	mu       sync.Mutex
	store    RemoteStore
	registry *Registry
	timeout  time.Duration
	wg       sync.WaitGroup

	project  *models.Project
	objects  []models.SceneObject
	syncs    map[string]*objectSync
	selected string
}

func NewEngine(store RemoteStore) *Engine {
	return &Engine{
		store:    store,
		registry: NewRegistry(store),
		timeout:  defaultSyncTimeout,
		syncs:    make(map[string]*objectSync),
	}
}

// Registry returns the asset registry sharing this engine's store.
func (e *Engine) Registry() *Registry { return e.registry }

// OpenProject fetches the authoritative project and object list and
// replaces local state wholesale. Switching projects is a full reset,
// never a merge with prior local state.
func (e *Engine) OpenProject(ctx context.Context, id string) error {
	project, objects, err := e.store.FetchProject(ctx, id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = &project
	e.objects = objects
	e.selected = ""
	e.syncs = make(map[string]*objectSync, len(objects))
	for i := range objects {
		e.syncs[objects[i].ID] = &objectSync{state: StateSynced}
	}
	return nil
}

// Project returns a copy of the open project, or nil.
func (e *Engine) Project() *models.Project {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.project == nil {
		return nil
	}
	p := *e.project
	return &p
}

// Objects returns the scene objects in creation order.
func (e *Engine) Objects() []models.SceneObject {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]models.SceneObject, len(e.objects))
	copy(out, e.objects)
	return out
}

// Object returns one object by id.
func (e *Engine) Object(id string) (models.SceneObject, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOf(id); i >= 0 {
		return e.objects[i], true
	}
	return models.SceneObject{}, false
}

// SelectedID returns the currently selected object id, or "".
func (e *Engine) SelectedID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selected
}

// Select changes the selection. Selection is pure UI state and is never
// persisted; an empty id clears it.
func (e *Engine) Select(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if id == "" || e.indexOf(id) >= 0 {
		e.selected = id
	}
}

// ObjectState reports an object's sync standing.
func (e *Engine) ObjectState(id string) (SyncState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.syncs[id]
	if !ok {
		return 0, false
	}
	return s.state, true
}

// AddObject inserts the object into local state immediately and persists
// it in the background. An empty id gets a locally generated one; a
// reused id fails with ErrDuplicateID. The new object becomes selected.
func (e *Engine) AddObject(obj models.SceneObject) (string, error) {
	if err := obj.Validate(); err != nil {
		return "", err
	}

	e.mu.Lock()
	if e.project == nil {
		e.mu.Unlock()
		return "", ErrNoProject
	}
	if obj.ID == "" {
		obj.ID = newLocalID()
	}
	if e.indexOf(obj.ID) >= 0 {
		e.mu.Unlock()
		return "", ErrDuplicateID
	}
	obj.ProjectID = e.project.ID
	e.objects = append(e.objects, obj)
	e.selected = obj.ID
	e.syncs[obj.ID] = &objectSync{state: StateSyncing}
	localID := obj.ID
	snapshot := obj
	e.mu.Unlock()

	e.spawn(func(ctx context.Context) { e.persistCreate(ctx, localID, snapshot) })
	return localID, nil
}

// UpdateObject merges the patch into local state first, then fires the
// persistence request. Updates are not serialized against each other;
// the store of record resolves races last-write-wins.
func (e *Engine) UpdateObject(id string, patch models.SceneObjectPatch) error {
	e.mu.Lock()
	i := e.indexOf(id)
	if i < 0 {
		e.mu.Unlock()
		return ErrNotFound
	}
	patch.Apply(&e.objects[i])

	if entry, ok := e.syncs[id]; ok && isLocalID(id) {
		// create not confirmed yet; coalesce and flush after the ack
		entry.queued = mergePatches(entry.queued, &patch)
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	e.spawn(func(ctx context.Context) { e.persistUpdate(ctx, id, patch) })
	return nil
}

// DeleteObject removes the object locally at once and fires a best-effort
// remote delete. Deleting an absent id is a no-op.
func (e *Engine) DeleteObject(id string) {
	e.mu.Lock()
	i := e.indexOf(id)
	if i < 0 {
		e.mu.Unlock()
		return
	}
	e.objects = append(e.objects[:i], e.objects[i+1:]...)
	if e.selected == id {
		e.selected = ""
	}
	if entry, ok := e.syncs[id]; ok && isLocalID(id) {
		if entry.state == StateSyncing {
			// the create is still in flight; the ack handler issues the
			// remote delete once the server id is known
			entry.deleted = true
		} else {
			delete(e.syncs, id)
		}
		e.mu.Unlock()
		return
	}
	delete(e.syncs, id)
	e.mu.Unlock()

	e.spawn(func(ctx context.Context) { e.persistDelete(ctx, id) })
}

// RetryCreate re-issues a failed create. The object stays under its local
// id until the store of record confirms.
func (e *Engine) RetryCreate(id string) error {
	e.mu.Lock()
	entry, ok := e.syncs[id]
	i := e.indexOf(id)
	if !ok || i < 0 || entry.state != StateFailed || !isLocalID(id) {
		e.mu.Unlock()
		return ErrNotFound
	}
	entry.state = StateSyncing
	snapshot := e.objects[i]
	e.mu.Unlock()

	e.spawn(func(ctx context.Context) { e.persistCreate(ctx, id, snapshot) })
	return nil
}

// UpdateProjectSettings merges the patch into the open project and
// persists it in the background.
func (e *Engine) UpdateProjectSettings(patch models.ProjectPatch) error {
	e.mu.Lock()
	if e.project == nil {
		e.mu.Unlock()
		return ErrNoProject
	}
	patch.Apply(e.project)
	id := e.project.ID
	e.mu.Unlock()

	e.spawn(func(ctx context.Context) {
		if _, err := e.store.UpdateProject(ctx, id, patch); err != nil {
			log.Printf("editor: project %s settings sync failed: %v", id, err)
		}
	})
	return nil
}

// Publish commits name, slug and visibility and transitions the project
// to PUBLISHED.
func (e *Engine) Publish(name, slug string, visibility models.ProjectVisibility) error {
	status := models.StatusPublished
	return e.UpdateProjectSettings(models.ProjectPatch{
		Name:       &name,
		Slug:       &slug,
		Visibility: &visibility,
		Status:     &status,
	})
}

// Compile renders the current snapshot to markup. Read-only: the engine
// state is copied under the lock and never touched by the compiler.
func (e *Engine) Compile() (string, []compiler.Warning, error) {
	e.mu.Lock()
	if e.project == nil {
		e.mu.Unlock()
		return "", nil, ErrNoProject
	}
	project := *e.project
	objects := make([]models.SceneObject, len(e.objects))
	copy(objects, e.objects)
	e.mu.Unlock()

	markup, warnings := compiler.Compile(&project, objects, e.registry.Snapshot())
	return markup, warnings, nil
}

// Flush waits for all in-flight persistence requests. Test and shutdown
// hook; the UI never needs it.
func (e *Engine) Flush() {
	e.wg.Wait()
	e.registry.Flush()
}

func (e *Engine) indexOf(id string) int {
	for i := range e.objects {
		if e.objects[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) spawn(fn func(ctx context.Context)) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		defer cancel()
		fn(ctx)
	}()
}

func (e *Engine) persistCreate(ctx context.Context, localID string, obj models.SceneObject) {
	confirmed, err := e.store.CreateObject(ctx, obj.ProjectID, obj)

	e.mu.Lock()
	entry, ok := e.syncs[localID]
	if err != nil {
		// the failure must terminate somewhere visible: the object stays
		// in local state marked failed until retried or deleted
		if ok && !entry.deleted {
			entry.state = StateFailed
		} else {
			delete(e.syncs, localID)
		}
		e.mu.Unlock()
		log.Printf("editor: create of %s failed: %v", localID, err)
		return
	}
	if !ok {
		e.mu.Unlock()
		return
	}
	if entry.deleted {
		// deleted locally while the create was in flight; clean up the
		// server copy that just came into existence
		delete(e.syncs, localID)
		e.mu.Unlock()
		e.spawn(func(ctx context.Context) { e.persistDelete(ctx, confirmed.ID) })
		return
	}

	// Single transition keyed off the locally issued id: adopt the
	// server-confirmed copy in place, then replay edits issued while the
	// create was in flight so no local mutation is lost or reordered.
	i := e.indexOf(localID)
	if i < 0 {
		delete(e.syncs, localID)
		e.mu.Unlock()
		return
	}
	queued := entry.queued
	queued.Apply(&confirmed)
	e.objects[i] = confirmed
	if e.selected == localID {
		e.selected = confirmed.ID
	}
	delete(e.syncs, localID)
	e.syncs[confirmed.ID] = &objectSync{state: StateSynced}
	serverID := confirmed.ID
	e.mu.Unlock()

	if queued != nil {
		e.spawn(func(ctx context.Context) { e.persistUpdate(ctx, serverID, *queued) })
	}
}

func (e *Engine) persistUpdate(ctx context.Context, id string, patch models.SceneObjectPatch) {
	if err := e.store.UpdateObject(ctx, id, patch); err != nil {
		e.mu.Lock()
		if entry, ok := e.syncs[id]; ok {
			entry.state = StateFailed
		}
		e.mu.Unlock()
		log.Printf("editor: update of %s failed: %v", id, err)
		return
	}
	e.mu.Lock()
	if entry, ok := e.syncs[id]; ok && entry.state != StateFailed {
		entry.state = StateSynced
	}
	e.mu.Unlock()
}

func (e *Engine) persistDelete(ctx context.Context, id string) {
	// fire and forget: the object is already gone locally and is never
	// resurrected on failure
	if err := e.store.DeleteObject(ctx, id); err != nil {
		log.Printf("editor: remote delete of %s failed: %v", id, err)
	}
}

func newLocalID() string {
	return "local-" + uuid.NewString()
}

func isLocalID(id string) bool {
	return strings.HasPrefix(id, "local-")
}

// mergePatches overlays b on a, merging the one-level-down nested patches
// so coalesced updates keep partial-merge semantics.
func mergePatches(a, b *models.SceneObjectPatch) *models.SceneObjectPatch {
	if a == nil {
		merged := *b
		return &merged
	}
	out := *a
	if b.Name != nil {
		out.Name = b.Name
	}
	if b.Content != nil {
		out.Content = b.Content
	}
	if b.FontSize != nil {
		out.FontSize = b.FontSize
	}
	if b.Color != nil {
		out.Color = b.Color
	}
	if b.Visible != nil {
		out.Visible = b.Visible
	}
	if b.AssetID != nil {
		out.AssetID = b.AssetID
	}
	out.Position = mergeVector(a.Position, b.Position)
	out.Rotation = mergeVector(a.Rotation, b.Rotation)
	out.Scale = mergeVector(a.Scale, b.Scale)
	out.VideoProps = mergeVideo(a.VideoProps, b.VideoProps)
	out.AudioProps = mergeAudio(a.AudioProps, b.AudioProps)
	return &out
}

func mergeVector(a, b *models.Vector3Patch) *models.Vector3Patch {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	if b.X != nil {
		out.X = b.X
	}
	if b.Y != nil {
		out.Y = b.Y
	}
	if b.Z != nil {
		out.Z = b.Z
	}
	return &out
}

func mergeVideo(a, b *models.VideoPropsPatch) *models.VideoPropsPatch {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	if b.Loop != nil {
		out.Loop = b.Loop
	}
	if b.Autoplay != nil {
		out.Autoplay = b.Autoplay
	}
	if b.ChromaKey != nil {
		out.ChromaKey = b.ChromaKey
	}
	if b.ChromaColor != nil {
		out.ChromaColor = b.ChromaColor
	}
	if b.Threshold != nil {
		out.Threshold = b.Threshold
	}
	return &out
}

func mergeAudio(a, b *models.AudioPropsPatch) *models.AudioPropsPatch {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	out := *a
	if b.Loop != nil {
		out.Loop = b.Loop
	}
	if b.Autoplay != nil {
		out.Autoplay = b.Autoplay
	}
	if b.Volume != nil {
		out.Volume = b.Volume
	}
	return &out
}
