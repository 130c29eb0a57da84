package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arstudio/internal/models"
)

// fakeStore is an in-memory store of record. Gates let tests hold an
// acknowledgement open while more mutations are issued.
type fakeStore struct {
	mu sync.Mutex

	project models.Project
	objects []models.SceneObject
	assets  []models.Asset

	failCreate bool
	failUpdate bool
	failUpload bool

	createGate chan struct{}

	created []models.SceneObject
	updated map[string][]models.SceneObjectPatch
	deleted []string
	nextID  int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		project: models.NewDraftProject("p1", "u1", "untitled-1"),
		updated: make(map[string][]models.SceneObjectPatch),
	}
}

func (f *fakeStore) FetchProject(ctx context.Context, id string) (models.Project, []models.SceneObject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	objects := make([]models.SceneObject, len(f.objects))
	copy(objects, f.objects)
	return f.project, objects, nil
}

func (f *fakeStore) UpdateProject(ctx context.Context, id string, patch models.ProjectPatch) (models.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patch.Apply(&f.project)
	return f.project, nil
}

func (f *fakeStore) CreateObject(ctx context.Context, projectID string, obj models.SceneObject) (models.SceneObject, error) {
	if f.createGate != nil {
		<-f.createGate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return models.SceneObject{}, errors.New("remote store unavailable")
	}
	f.nextID++
	obj.ID = fmt.Sprintf("srv-%d", f.nextID)
	f.created = append(f.created, obj)
	return obj, nil
}

func (f *fakeStore) UpdateObject(ctx context.Context, id string, patch models.SceneObjectPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		return errors.New("remote store unavailable")
	}
	f.updated[id] = append(f.updated[id], patch)
	return nil
}

func (f *fakeStore) DeleteObject(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) UploadAsset(ctx context.Context, file RawFile) (models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpload {
		return models.Asset{}, errors.New("remote store unavailable")
	}
	f.nextID++
	asset := models.Asset{
		ID:   fmt.Sprintf("srv-a-%d", f.nextID),
		Name: file.Name,
		Kind: models.ClassifyAssetKind(file.ContentType, file.Name),
		URL:  "https://cdn.example.com/" + file.Name,
	}
	f.assets = append([]models.Asset{asset}, f.assets...)
	return asset, nil
}

func (f *fakeStore) ListAssets(ctx context.Context) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	assets := make([]models.Asset, len(f.assets))
	copy(assets, f.assets)
	return assets, nil
}

func openEngine(t *testing.T, store *fakeStore) *Engine {
	t.Helper()
	e := NewEngine(store)
	require.NoError(t, e.OpenProject(context.Background(), "p1"))
	return e
}

func newCube() models.SceneObject {
	obj := models.NewSceneObject("", "Cube", models.KindPrimitive)
	obj.PrimitiveType = models.PrimitiveCube
	return obj
}

func TestOpenProjectReplacesStateWholesale(t *testing.T) {
	store := newFakeStore()
	store.objects = []models.SceneObject{
		func() models.SceneObject {
			o := models.NewSceneObject("srv-9", "Base Cube", models.KindPrimitive)
			o.PrimitiveType = models.PrimitiveCube
			return o
		}(),
	}

	e := openEngine(t, store)
	e.Select("srv-9")
	require.Equal(t, "srv-9", e.SelectedID())

	// reopening resets everything, no merge with prior local state
	require.NoError(t, e.OpenProject(context.Background(), "p1"))
	assert.Empty(t, e.SelectedID())
	require.Len(t, e.Objects(), 1)
	state, ok := e.ObjectState("srv-9")
	require.True(t, ok)
	assert.Equal(t, StateSynced, state)
}

func TestAddObjectOptimisticCreate(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)

	id, err := e.AddObject(newCube())
	require.NoError(t, err)
	assert.True(t, isLocalID(id))

	// visible and selected immediately, before any ack
	obj, ok := e.Object(id)
	require.True(t, ok)
	assert.Equal(t, "Cube", obj.Name)
	assert.Equal(t, id, e.SelectedID())

	e.Flush()

	// the local id was swapped for the server id in one transition
	objects := e.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, "srv-1", objects[0].ID)
	assert.Equal(t, "srv-1", e.SelectedID())
	_, ok = e.ObjectState(id)
	assert.False(t, ok)
	state, ok := e.ObjectState("srv-1")
	require.True(t, ok)
	assert.Equal(t, StateSynced, state)
}

func TestAddObjectFailureKeepsPendingFailed(t *testing.T) {
	store := newFakeStore()
	store.failCreate = true
	e := openEngine(t, store)

	id, err := e.AddObject(newCube())
	require.NoError(t, err)
	e.Flush()

	// never duplicated, never silently removed
	objects := e.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, id, objects[0].ID)
	state, ok := e.ObjectState(id)
	require.True(t, ok)
	assert.Equal(t, StateFailed, state)
}

func TestRetryCreateAfterFailure(t *testing.T) {
	store := newFakeStore()
	store.failCreate = true
	e := openEngine(t, store)

	id, _ := e.AddObject(newCube())
	e.Flush()

	store.mu.Lock()
	store.failCreate = false
	store.mu.Unlock()

	require.NoError(t, e.RetryCreate(id))
	e.Flush()

	objects := e.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, "srv-1", objects[0].ID)
}

func TestUpdateObjectPartialMerge(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)
	_, _ = e.AddObject(newCube())
	e.Flush()

	y := 2.0
	require.NoError(t, e.UpdateObject("srv-1", models.SceneObjectPatch{
		Position: &models.Vector3Patch{Y: &y},
	}))

	obj, _ := e.Object("srv-1")
	assert.Equal(t, models.Vector3{X: 0, Y: 2, Z: 0}, obj.Position)
	e.Flush()

	require.Len(t, store.updated["srv-1"], 1)
}

func TestUpdateObjectNotFound(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)
	err := e.UpdateObject("nope", models.SceneObjectPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateFailureMarksFailedButKeepsLocalState(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)
	_, _ = e.AddObject(newCube())
	e.Flush()

	store.mu.Lock()
	store.failUpdate = true
	store.mu.Unlock()

	name := "Renamed"
	require.NoError(t, e.UpdateObject("srv-1", models.SceneObjectPatch{Name: &name}))
	e.Flush()

	// local mutation survives; the failure only degrades the sync tag
	obj, _ := e.Object("srv-1")
	assert.Equal(t, "Renamed", obj.Name)
	state, _ := e.ObjectState("srv-1")
	assert.Equal(t, StateFailed, state)
}

func TestUpdateWhileCreateInFlightIsCoalesced(t *testing.T) {
	store := newFakeStore()
	store.createGate = make(chan struct{})
	e := openEngine(t, store)

	id, _ := e.AddObject(newCube())

	color := "#123456"
	y := 3.0
	require.NoError(t, e.UpdateObject(id, models.SceneObjectPatch{Color: &color}))
	require.NoError(t, e.UpdateObject(id, models.SceneObjectPatch{Position: &models.Vector3Patch{Y: &y}}))

	// both edits landed locally at once
	obj, _ := e.Object(id)
	assert.Equal(t, "#123456", obj.Color)
	assert.Equal(t, 3.0, obj.Position.Y)

	close(store.createGate)
	e.Flush()

	// edits survive the id swap and reach the server under the new id
	obj, ok := e.Object("srv-1")
	require.True(t, ok)
	assert.Equal(t, "#123456", obj.Color)
	assert.Equal(t, 3.0, obj.Position.Y)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.updated["srv-1"], 1)
	flushed := store.updated["srv-1"][0]
	require.NotNil(t, flushed.Color)
	assert.Equal(t, "#123456", *flushed.Color)
	require.NotNil(t, flushed.Position)
	require.NotNil(t, flushed.Position.Y)
	assert.Equal(t, 3.0, *flushed.Position.Y)
}

func TestDeleteObjectIdempotent(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)
	_, _ = e.AddObject(newCube())
	e.Flush()

	e.Select("srv-1")
	e.DeleteObject("srv-1")
	assert.Empty(t, e.Objects())
	assert.Empty(t, e.SelectedID())

	// a second delete is a no-op, not an error
	e.DeleteObject("srv-1")
	e.Flush()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"srv-1"}, store.deleted)
}

func TestDeleteBeforeCreateAckCleansUpServerCopy(t *testing.T) {
	store := newFakeStore()
	store.createGate = make(chan struct{})
	e := openEngine(t, store)

	id, _ := e.AddObject(newCube())
	e.DeleteObject(id)
	assert.Empty(t, e.Objects())

	close(store.createGate)
	e.Flush()

	assert.Empty(t, e.Objects())
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, []string{"srv-1"}, store.deleted)
}

func TestAddObjectDuplicateID(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)

	obj := newCube()
	obj.ID = "local-fixed"
	_, err := e.AddObject(obj)
	require.NoError(t, err)
	_, err = e.AddObject(obj)
	assert.ErrorIs(t, err, ErrDuplicateID)
	e.Flush()
}

func TestAddObjectValidatesBeforeTouchingState(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)

	broken := models.NewSceneObject("", "Broken", models.KindPrimitive)
	_, err := e.AddObject(broken)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, e.Objects())
}

func TestSelectUnknownIDIgnored(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)
	id, _ := e.AddObject(newCube())
	require.Equal(t, id, e.SelectedID())

	e.Select("nope")
	assert.Equal(t, id, e.SelectedID())
	e.Select("")
	assert.Empty(t, e.SelectedID())
	e.Flush()
}

func TestPublishTransitionsProject(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)

	require.NoError(t, e.Publish("Sneaker Drop", "sneaker-drop", models.VisibilityPublic))
	p := e.Project()
	require.NotNil(t, p)
	assert.Equal(t, models.StatusPublished, p.Status)
	assert.Equal(t, "sneaker-drop", p.Slug)
	e.Flush()

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, models.StatusPublished, store.project.Status)
}

func TestEngineCompile(t *testing.T) {
	store := newFakeStore()
	e := openEngine(t, store)
	_, _ = e.AddObject(newCube())
	e.Flush()

	markup, warnings, err := e.Compile()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Contains(t, markup, `geometry="primitive: cube"`)

	again, _, err := e.Compile()
	require.NoError(t, err)
	assert.Equal(t, markup, again)
}
