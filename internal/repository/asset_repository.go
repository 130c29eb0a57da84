package repository

import (
	"gorm.io/gorm"

	"arstudio/internal/models"
)

// AssetRepository provides database access to asset metadata.
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

func (r *AssetRepository) Create(asset *models.Asset) error {
	return r.db.Create(asset).Error
}

func (r *AssetRepository) GetByID(id string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.First(&asset, "id = ?", id).Error
	return &asset, err
}

// List returns assets most recently ingested first.
func (r *AssetRepository) List() ([]models.Asset, error) {
	var assets []models.Asset
	err := r.db.Order("created_at DESC").Find(&assets).Error
	return assets, err
}

// ListByIDs returns the subset of assets that exist, keyed lookups for
// the compiler snapshot.
func (r *AssetRepository) ListByIDs(ids []string) ([]models.Asset, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var assets []models.Asset
	err := r.db.Where("id IN ?", ids).Find(&assets).Error
	return assets, err
}

func (r *AssetRepository) Delete(id string) error {
	return r.db.Delete(&models.Asset{}, "id = ?", id).Error
}
