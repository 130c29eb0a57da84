package services

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"arstudio/internal/models"
	"arstudio/internal/repository"
)

// SceneObjectService manages the objects within a project's scene.
type SceneObjectService struct {
	objects  *repository.SceneObjectRepository
	projects *repository.ProjectRepository
	cache    *MarkupCache
}

func NewSceneObjectService(
	objects *repository.SceneObjectRepository,
	projects *repository.ProjectRepository,
	cache *MarkupCache,
) *SceneObjectService {
	return &SceneObjectService{objects: objects, projects: projects, cache: cache}
}

// Create stores a new scene object under the given project. The client
// may send a provisional id; the server always assigns the canonical one
// and returns the confirmed record.
func (s *SceneObjectService) Create(projectID string, obj models.SceneObject) (*models.SceneObject, error) {
	project, err := s.projects.GetByID(projectID)
	if err != nil {
		return nil, err
	}

	obj.ID = uuid.NewString()
	obj.ProjectID = project.ID
	if err := obj.Validate(); err != nil {
		return nil, err
	}
	if err := s.objects.Create(&obj); err != nil {
		return nil, errors.Wrap(err, "failed to create scene object")
	}
	s.cache.Invalidate(project.Slug)
	return &obj, nil
}

// Update applies a partial update to an object and returns the result.
func (s *SceneObjectService) Update(id string, patch models.SceneObjectPatch) (*models.SceneObject, error) {
	obj, err := s.objects.GetByID(id)
	if err != nil {
		return nil, err
	}
	patch.Apply(obj)
	if err := obj.Validate(); err != nil {
		return nil, err
	}
	if err := s.objects.Update(obj); err != nil {
		return nil, errors.Wrap(err, "failed to update scene object")
	}
	s.invalidateProjectMarkup(obj.ProjectID)
	return obj, nil
}

// Delete removes an object. Deleting an unknown id is not an error.
func (s *SceneObjectService) Delete(id string) error {
	obj, err := s.objects.GetByID(id)
	if err != nil {
		return nil
	}
	if err := s.objects.Delete(id); err != nil {
		return errors.Wrap(err, "failed to delete scene object")
	}
	s.invalidateProjectMarkup(obj.ProjectID)
	return nil
}

func (s *SceneObjectService) invalidateProjectMarkup(projectID string) {
	if project, err := s.projects.GetByID(projectID); err == nil {
		s.cache.Invalidate(project.Slug)
	}
}
