package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"arstudio/internal/compiler"
	"arstudio/internal/events"
	"arstudio/internal/metrics"
	"arstudio/internal/models"
	"arstudio/internal/repository"
)

// ErrNotViewable is returned when a slug does not resolve to a published,
// non-private experience.
var ErrNotViewable = errors.New("experience is not published")

// ProjectService manages projects and produces their compiled markup.
type ProjectService struct {
	projects *repository.ProjectRepository
	assets   *repository.AssetRepository
	cache    *MarkupCache
	metrics  *metrics.Metrics
	events   *events.Publisher
}

func NewProjectService(
	projects *repository.ProjectRepository,
	assets *repository.AssetRepository,
	cache *MarkupCache,
	m *metrics.Metrics,
	publisher *events.Publisher,
) *ProjectService {
	return &ProjectService{
		projects: projects,
		assets:   assets,
		cache:    cache,
		metrics:  m,
		events:   publisher,
	}
}

// CreateDraft creates the untitled private draft a new project starts as.
func (s *ProjectService) CreateDraft(userID string) (*models.Project, error) {
	slug := fmt.Sprintf("untitled-%d", time.Now().UnixMilli())
	project := models.NewDraftProject(uuid.NewString(), userID, slug)
	if err := s.projects.Create(&project); err != nil {
		return nil, errors.Wrap(err, "failed to create project")
	}
	return &project, nil
}

func (s *ProjectService) Get(id string) (*models.Project, error) {
	return s.projects.GetByID(id)
}

// GetWithObjects returns the project and its scene objects in creation
// order, the authoritative list a scene-open fetches.
func (s *ProjectService) GetWithObjects(id string) (*models.Project, error) {
	return s.projects.GetWithObjects(id)
}

func (s *ProjectService) ListByUser(userID string) ([]models.Project, error) {
	return s.projects.ListByUser(userID)
}

// Update applies a partial settings update. A transition to PUBLISHED
// announces the publish and drops any cached markup for the slug.
func (s *ProjectService) Update(id string, patch models.ProjectPatch) (*models.Project, error) {
	project, err := s.projects.GetByID(id)
	if err != nil {
		return nil, err
	}
	wasPublished := project.Status == models.StatusPublished
	oldSlug := project.Slug

	patch.Apply(project)
	if err := s.projects.Update(project); err != nil {
		return nil, errors.Wrap(err, "failed to update project")
	}

	s.cache.Invalidate(oldSlug)
	s.cache.Invalidate(project.Slug)

	if !wasPublished && project.Status == models.StatusPublished {
		s.events.ProjectPublished(events.ProjectPublished{
			ProjectID:   project.ID,
			Slug:        project.Slug,
			Visibility:  string(project.Visibility),
			PublishedAt: time.Now(),
		})
	}
	return project, nil
}

// ExportMarkup compiles the project's current scene for preview/export.
func (s *ProjectService) ExportMarkup(id string) (string, []compiler.Warning, error) {
	project, err := s.projects.GetWithObjects(id)
	if err != nil {
		return "", nil, err
	}
	snapshot, err := s.assetSnapshot(project.SceneObjects)
	if err != nil {
		return "", nil, err
	}
	markup, warnings := compiler.Compile(project, project.SceneObjects, snapshot)
	s.metrics.RecordCompile("export", len(warnings))
	return markup, warnings, nil
}

// PublishedMarkup serves the compiled document for a published slug,
// bumping the view counter. Private experiences are not viewable.
func (s *ProjectService) PublishedMarkup(slug string) (string, error) {
	if markup, ok := s.cache.Get(slug); ok {
		s.metrics.RecordCacheHit()
		s.metrics.RecordPublishedView(slug)
		if err := s.projects.IncrementViewsBySlug(slug); err != nil {
			log.Printf("Failed to increment views for %s: %v", slug, err)
		}
		return markup, nil
	}
	s.metrics.RecordCacheMiss()

	project, err := s.projects.GetBySlug(slug)
	if err != nil {
		return "", err
	}
	if project.Status != models.StatusPublished || project.Visibility == models.VisibilityPrivate {
		return "", ErrNotViewable
	}
	full, err := s.projects.GetWithObjects(project.ID)
	if err != nil {
		return "", err
	}
	snapshot, err := s.assetSnapshot(full.SceneObjects)
	if err != nil {
		return "", err
	}
	markup, warnings := compiler.Compile(full, full.SceneObjects, snapshot)
	s.metrics.RecordCompile("view", len(warnings))
	s.cache.Set(slug, markup)

	if err := s.projects.IncrementViews(project.ID); err == nil {
		s.metrics.RecordPublishedView(slug)
	}
	return markup, nil
}

// NearbyPublished lists published geo experiences within radiusMeters.
func (s *ProjectService) NearbyPublished(lat, lng, radiusMeters float64) ([]models.Project, error) {
	return s.projects.FindPublishedGeoWithinRadius(lat, lng, radiusMeters)
}

// assetSnapshot resolves the asset records referenced by the scene. A
// missing referent simply stays absent; the compiler downgrades it to a
// skip-with-warning.
func (s *ProjectService) assetSnapshot(objects []models.SceneObject) (map[string]models.Asset, error) {
	var ids []string
	seen := make(map[string]bool)
	for i := range objects {
		if id := objects[i].AssetID; id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	assets, err := s.assets.ListByIDs(ids)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load assets")
	}
	snapshot := make(map[string]models.Asset, len(assets))
	for _, a := range assets {
		snapshot[a.ID] = a
	}
	return snapshot, nil
}
