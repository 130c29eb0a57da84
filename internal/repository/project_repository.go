package repository

import (
	"gorm.io/gorm"

	"arstudio/internal/models"
	"arstudio/internal/utils"
)

// ProjectRepository provides database access to projects.
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	return &project, err
}

// GetWithObjects loads a project together with its scene objects in
// creation order. Creation order is the display z-order and the compile
// order.
func (r *ProjectRepository) GetWithObjects(id string) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("SceneObjects", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).First(&project, "id = ?", id).Error
	return &project, err
}

func (r *ProjectRepository) GetBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "slug = ?", slug).Error
	return &project, err
}

// ListByUser returns the user's projects most recently updated first.
func (r *ProjectRepository) ListByUser(userID string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

func (r *ProjectRepository) Delete(id string) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// IncrementViews bumps the view counter without touching updated_at.
func (r *ProjectRepository) IncrementViews(id string) error {
	return r.db.Model(&models.Project{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (r *ProjectRepository) IncrementViewsBySlug(slug string) error {
	return r.db.Model(&models.Project{}).Where("slug = ?", slug).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// FindPublishedGeoWithinRadius returns published geo experiences within
// radiusMeters of the given point. A bounding box narrows the candidate
// set in SQL; the exact Haversine check runs in Go.
func (r *ProjectRepository) FindPublishedGeoWithinRadius(lat, lng, radiusMeters float64) ([]models.Project, error) {
	minLat, maxLat, minLng, maxLng := utils.CalculateBoundingBox(lat, lng, radiusMeters)

	var candidates []models.Project
	err := r.db.
		Where("status = ? AND experience_type = ?", models.StatusPublished, models.ExperienceGeo).
		Where("geo_lat IS NOT NULL AND geo_lng IS NOT NULL").
		Where("geo_lat BETWEEN ? AND ?", minLat, maxLat).
		Where("geo_lng BETWEEN ? AND ?", minLng, maxLng).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	var within []models.Project
	for _, p := range candidates {
		if p.GeoLocation == nil {
			continue
		}
		if utils.HaversineDistance(lat, lng, p.GeoLocation.Lat, p.GeoLocation.Lng) <= radiusMeters {
			within = append(within, p)
		}
	}
	return within, nil
}
