package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"arstudio/internal/models"
	"arstudio/internal/services"
)

const ProjectNotFoundError = "project not found"

// ProjectHandler defines handlers for project resources and the public
// viewer.
type ProjectHandler struct {
	Service       *services.ProjectService
	DefaultRadius float64
}

func NewProjectHandler(service *services.ProjectService, defaultRadius float64) *ProjectHandler {
	return &ProjectHandler{Service: service, DefaultRadius: defaultRadius}
}

// ListProjects handles GET /projects.
// @Summary List the caller's projects
// @Description Gets all projects owned by the authenticated user, most recently updated first
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project "List of projects"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) ListProjects(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	projects, err := h.Service.ListByUser(userID)
	if err != nil {
		log.Printf("Error listing projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(projects)
}

// CreateProject handles POST /projects.
// @Summary Create a draft project
// @Description Creates a new untitled private draft for the authenticated user
// @Tags projects
// @Produce json
// @Success 201 {object} models.Project "Created draft"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	project, err := h.Service.CreateDraft(userID)
	if err != nil {
		log.Printf("Error creating project: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Created project %s for user %s", project.ID, userID)
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GetProject handles GET /projects/:id, returning the project together
// with its scene objects in creation order.
// @Summary Get a project with its scene
// @Description Gets a project and its scene objects in creation order
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} models.Project "Project with scene objects"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	project, err := h.Service.GetWithObjects(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": ProjectNotFoundError,
			})
		}
		log.Printf("Error fetching project %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(project)
}

// UpdateProject handles PUT /projects/:id with a partial settings update.
// @Summary Update project settings
// @Description Applies a partial update to project settings; absent fields are left unchanged
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param patch body models.ProjectPatch true "Fields to update"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	var patch models.ProjectPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "invalid request body",
		})
	}

	project, err := h.Service.Update(c.Params("id"), patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": ProjectNotFoundError,
			})
		}
		log.Printf("Error updating project %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	log.Printf("Updated project %s", project.ID)
	return c.JSON(project)
}

// ExportMarkup handles GET /projects/:id/export, compiling the scene to
// its standalone HTML document.
// @Summary Export compiled markup
// @Description Compiles the project's scene to a standalone HTML document
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{} "Markup and compile warnings"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/{id}/export [get]
func (h *ProjectHandler) ExportMarkup(c *fiber.Ctx) error {
	markup, warnings, err := h.Service.ExportMarkup(c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": ProjectNotFoundError,
			})
		}
		log.Printf("Error exporting project %s: %v", c.Params("id"), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"markup": markup, "warnings": warnings})
}

// NearbyProjects handles GET /projects/nearby for geo experiences.
// @Summary Find published geo experiences nearby
// @Description Lists published location-based experiences within a radius of a point
// @Tags projects
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param radius query number false "Radius in meters"
// @Success 200 {array} models.Project "Nearby experiences"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Security BearerAuth
// @Router /projects/nearby [get]
func (h *ProjectHandler) NearbyProjects(c *fiber.Ctx) error {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": true, "message": "lat and lng query parameters are required",
		})
	}
	radius := h.DefaultRadius
	if r, err := strconv.ParseFloat(c.Query("radius"), 64); err == nil && r > 0 {
		radius = r
	}

	projects, err := h.Service.NearbyPublished(lat, lng, radius)
	if err != nil {
		log.Printf("Error finding nearby projects: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	return c.JSON(projects)
}

// ViewPublished handles GET /v/:slug, the public viewer. It serves the
// compiled HTML document and counts the view.
// @Summary View a published experience
// @Description Serves the compiled HTML document for a published slug
// @Tags viewer
// @Produce html
// @Param slug path string true "Experience slug"
// @Success 200 {string} string "Compiled HTML document"
// @Failure 404 {object} map[string]interface{} "Experience not found"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /v/{slug} [get]
func (h *ProjectHandler) ViewPublished(c *fiber.Ctx) error {
	slug := c.Params("slug")
	markup, err := h.Service.PublishedMarkup(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, services.ErrNotViewable) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": true, "message": "experience not found",
			})
		}
		log.Printf("Error serving published experience %s: %v", slug, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": true, "message": err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(markup)
}
