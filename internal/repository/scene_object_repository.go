package repository

import (
	"gorm.io/gorm"

	"arstudio/internal/models"
)

// SceneObjectRepository provides database access to scene objects.
type SceneObjectRepository struct {
	db *gorm.DB
}

func NewSceneObjectRepository(db *gorm.DB) *SceneObjectRepository {
	return &SceneObjectRepository{db: db}
}

func (r *SceneObjectRepository) Create(obj *models.SceneObject) error {
	return r.db.Create(obj).Error
}

func (r *SceneObjectRepository) GetByID(id string) (*models.SceneObject, error) {
	var obj models.SceneObject
	err := r.db.First(&obj, "id = ?", id).Error
	return &obj, err
}

func (r *SceneObjectRepository) ListByProject(projectID string) ([]models.SceneObject, error) {
	var objects []models.SceneObject
	err := r.db.Where("project_id = ?", projectID).Order("created_at ASC").Find(&objects).Error
	return objects, err
}

func (r *SceneObjectRepository) Update(obj *models.SceneObject) error {
	return r.db.Save(obj).Error
}

// Delete removes an object. GORM reports no error for an absent id, which
// keeps deletes idempotent end to end.
func (r *SceneObjectRepository) Delete(id string) error {
	return r.db.Delete(&models.SceneObject{}, "id = ?", id).Error
}
