package models

import (
	"time"
)

type ProjectStatus string

const (
	StatusDraft     ProjectStatus = "DRAFT"
	StatusPublished ProjectStatus = "PUBLISHED"
	StatusArchived  ProjectStatus = "ARCHIVED"
)

type ProjectVisibility string

const (
	VisibilityPublic   ProjectVisibility = "PUBLIC"
	VisibilityPrivate  ProjectVisibility = "PRIVATE"
	VisibilityUnlisted ProjectVisibility = "UNLISTED"
)

// ExperienceType is the tracking mode an AR session uses.
type ExperienceType string

const (
	ExperiencePlane ExperienceType = "PLANE" // world tracking
	ExperienceImage ExperienceType = "IMAGE" // image target
	ExperienceFace  ExperienceType = "FACE"  // face tracking
	ExperienceGeo   ExperienceType = "GEO"   // geo location
)

type GeoLocation struct {
	Lat float64 `json:"lat" gorm:"type:decimal(10,6)"`
	Lng float64 `json:"lng" gorm:"type:decimal(10,6)"`
}

// Project is the top-level container for one AR experience. TargetImageURL
// is meaningful only for IMAGE experiences and GeoLocation only for GEO
// ones; switching experience type leaves the now-dormant field in place so
// nothing is lost when the user switches back.
type Project struct {
	ID             string            `json:"id" gorm:"type:uuid;primaryKey"`
	UserID         string            `json:"userId,omitempty" gorm:"type:uuid;index"`
	Name           string            `json:"name" gorm:"not null"`
	Slug           string            `json:"slug" gorm:"uniqueIndex;not null"`
	Thumbnail      string            `json:"thumbnail"`
	Status         ProjectStatus     `json:"status" gorm:"not null"`
	Visibility     ProjectVisibility `json:"visibility" gorm:"not null"`
	ExperienceType ExperienceType    `json:"experienceType" gorm:"not null"`
	TargetImageURL string            `json:"targetImage,omitempty"`
	GeoLocation    *GeoLocation      `json:"geoLocation,omitempty" gorm:"embedded;embedded_prefix:geo_"`
	Views          int64             `json:"views"`
	CreatedAt      time.Time         `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt      time.Time         `json:"updatedAt" gorm:"autoUpdateTime"`

	SceneObjects []SceneObject `json:"sceneObjects,omitempty" gorm:"foreignKey:ProjectID"`
}

// NewDraftProject returns the untitled private draft every project starts
// life as.
func NewDraftProject(id, userID, slug string) Project {
	return Project{
		ID:             id,
		UserID:         userID,
		Name:           "Untitled Project",
		Slug:           slug,
		Status:         StatusDraft,
		Visibility:     VisibilityPrivate,
		ExperienceType: ExperiencePlane,
	}
}

// ProjectPatch is a partial update of project settings. A publish commits
// name, slug and visibility alongside the status transition.
type ProjectPatch struct {
	Name           *string            `json:"name,omitempty"`
	Slug           *string            `json:"slug,omitempty"`
	Thumbnail      *string            `json:"thumbnail,omitempty"`
	Status         *ProjectStatus     `json:"status,omitempty"`
	Visibility     *ProjectVisibility `json:"visibility,omitempty"`
	ExperienceType *ExperienceType    `json:"experienceType,omitempty"`
	TargetImageURL *string            `json:"targetImage,omitempty"`
	GeoLocation    *GeoLocation       `json:"geoLocation,omitempty"`
}

// Apply merges the patch into p. The dormant target fields are only ever
// overwritten, never cleared by an experience-type switch.
func (patch *ProjectPatch) Apply(p *Project) {
	if patch == nil {
		return
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Thumbnail != nil {
		p.Thumbnail = *patch.Thumbnail
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Visibility != nil {
		p.Visibility = *patch.Visibility
	}
	if patch.ExperienceType != nil {
		p.ExperienceType = *patch.ExperienceType
	}
	if patch.TargetImageURL != nil {
		p.TargetImageURL = *patch.TargetImageURL
	}
	if patch.GeoLocation != nil {
		loc := *patch.GeoLocation
		p.GeoLocation = &loc
	}
}
