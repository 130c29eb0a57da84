package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"arstudio/internal/services"
)

const AssetNotFoundError = "asset not found"

// AssetHandler defines handlers for the asset library.
type AssetHandler struct {
	Service *services.AssetService
}

func NewAssetHandler(service *services.AssetService) *AssetHandler {
	return &AssetHandler{Service: service}
}

// ListAssets handles GET /assets.
// @Summary List uploaded assets
// @Description Gets all assets, most recently uploaded first
// @Tags assets
// @Produce json
// @Success 200 {array} models.Asset "List of assets"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /assets [get]
func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	assets, err := h.Service.List()
	if err != nil {
		log.Printf("Error listing assets: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(assets)
}

// UploadAsset handles POST /assets with a multipart upload.
// @Summary Upload an asset
// @Description Uploads a media file. Archives are unpacked and non-GLB models converted before storage.
// @Tags assets
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Media file"
// @Success 201 {object} models.Asset "Created asset"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /assets [post]
func (h *AssetHandler) UploadAsset(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "failed to read file: " + err.Error(),
		})
	}
	log.Printf("Processing asset upload: %s (%d bytes)", fileHeader.Filename, fileHeader.Size)

	asset, err := h.Service.Ingest(fileHeader)
	if err != nil {
		log.Printf("Asset upload failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Successfully created asset: ID=%s, Kind=%s", asset.ID, asset.Kind)
	return c.Status(fiber.StatusCreated).JSON(asset)
}

// DeleteAsset handles DELETE /assets/:id.
// @Summary Delete an asset
// @Description Removes an asset and its stored file. Objects still referencing it are skipped at compile time.
// @Tags assets
// @Param id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]interface{} "Asset not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Params("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": AssetNotFoundError,
			})
		}
		log.Printf("Error deleting asset %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
