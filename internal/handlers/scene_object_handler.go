package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"arstudio/internal/models"
	"arstudio/internal/services"
)

const SceneObjectNotFoundError = "scene object not found"

// SceneObjectHandler defines handlers for the objects within a scene.
type SceneObjectHandler struct {
	Service *services.SceneObjectService
}

func NewSceneObjectHandler(service *services.SceneObjectService) *SceneObjectHandler {
	return &SceneObjectHandler{Service: service}
}

// CreateObject handles POST /projects/:id/objects. The server assigns
// the canonical id and returns the confirmed record.
// @Summary Add an object to a scene
// @Description Creates a scene object under a project and returns the confirmed record with its server-assigned id
// @Tags objects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param object body models.SceneObject true "Scene object"
// @Success 201 {object} models.SceneObject "Created object"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/objects [post]
func (h *SceneObjectHandler) CreateObject(c *fiber.Ctx) error {
	var obj models.SceneObject
	if err := c.BodyParser(&obj); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}

	created, err := h.Service.Create(c.Params("id"), obj)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": vErr.Error(),
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": ProjectNotFoundError,
			})
		}
		log.Printf("Error creating scene object: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Created scene object %s in project %s", created.ID, created.ProjectID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateObject handles PUT /objects/:id with a partial update.
// @Summary Update a scene object
// @Description Applies a partial update; nested transform and media structs merge field by field
// @Tags objects
// @Accept json
// @Produce json
// @Param id path string true "Object ID"
// @Param patch body models.SceneObjectPatch true "Fields to update"
// @Success 200 {object} models.SceneObject "Updated object"
// @Failure 400 {object} map[string]interface{} "Validation failed"
// @Failure 404 {object} map[string]interface{} "Object not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /objects/{id} [put]
func (h *SceneObjectHandler) UpdateObject(c *fiber.Ctx) error {
	var patch models.SceneObjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}

	updated, err := h.Service.Update(c.Params("id"), patch)
	if err != nil {
		var vErr *models.ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": true, "message": vErr.Error(),
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": SceneObjectNotFoundError,
			})
		}
		log.Printf("Error updating scene object %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(updated)
}

// DeleteObject handles DELETE /objects/:id. Deleting an id that is
// already gone still succeeds.
// @Summary Delete a scene object
// @Description Removes a scene object; deleting an unknown id is a no-op
// @Tags objects
// @Param id path string true "Object ID"
// @Success 204 "No Content"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /objects/{id} [delete]
func (h *SceneObjectHandler) DeleteObject(c *fiber.Ctx) error {
	if err := h.Service.Delete(c.Params("id")); err != nil {
		log.Printf("Error deleting scene object %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
