package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"userextra/internal/model"
	"userextra/internal/service"
)

// APIPrefix is the collection path of the REST resource.
const APIPrefix = "/api/user-extras"

// RegisterRoutes attaches the health probes and the user extra REST resource to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.UserExtraService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group(APIPrefix)
	api.Get("/", ListUserExtras(svc))
	api.Post("/", CreateUserExtra(svc))
	api.Get("/:id", GetUserExtra(svc))
	api.Put("/:id", UpdateUserExtra(svc))
	api.Patch("/:id", PartialUpdateUserExtra(svc))
	api.Delete("/:id", DeleteUserExtra(svc))
	api.Post("/:id/images", UploadImages(svc))
	api.Get("/:id/images/:side", GetImage(svc))
}

// HealthCheck checks DB connectivity only.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListUserExtras godoc
// @Summary List user extras
// @Param page query int false "zero-based page, used with size"
// @Param size query int false "page size; all records when absent"
// @Success 200 {array} model.UserExtra
// @Router /api/user-extras [get]
func ListUserExtras(svc service.UserExtraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		size, err := queryInt(c, "size")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}
		page, err := queryInt(c, "page")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		if size > 0 && page > math.MaxInt/size {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page out of range")
		}

		items, err := svc.List(c.UserContext(), size, page*size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(items)
	}
}

// CreateUserExtra godoc
// @Summary Create a user extra
// @Param body body model.UserExtra true "record without id"
// @Success 201 {object} model.UserExtra
// @Router /api/user-extras [post]
func CreateUserExtra(svc service.UserExtraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.UserExtra
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		out, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		c.Location(fmt.Sprintf("%s/%s", APIPrefix, out.IDString()))
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// GetUserExtra godoc
// @Summary Get a user extra
// @Param id path int true "record id"
// @Success 200 {object} model.UserExtra
// @Router /api/user-extras/{id} [get]
func GetUserExtra(svc service.UserExtraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		out, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// UpdateUserExtra godoc
// @Summary Replace a user extra
// @Param id path int true "record id"
// @Param body body model.UserExtra true "full record"
// @Success 200 {object} model.UserExtra
// @Router /api/user-extras/{id} [put]
func UpdateUserExtra(svc service.UserExtraService) fiber.Handler {
	return updateHandler(svc.Update)
}

// PartialUpdateUserExtra godoc
// @Summary Update the non-null fields of a user extra
// @Accept json
// @Param id path int true "record id"
// @Param body body model.UserExtra true "partial record"
// @Success 200 {object} model.UserExtra
// @Router /api/user-extras/{id} [patch]
func PartialUpdateUserExtra(svc service.UserExtraService) fiber.Handler {
	return updateHandler(svc.PartialUpdate)
}

type updateFunc func(ctx context.Context, id int64, e *model.UserExtra) (*model.UserExtra, error)

func updateHandler(update updateFunc) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in model.UserExtra
		if err := json.Unmarshal(c.Body(), &in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		out, err := update(c.UserContext(), id, &in)
		if err != nil {
			// Updating an unknown id is a client error, not a missing resource.
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusBadRequest, "ID_NOT_FOUND", "entity not found")
			}
			return writeServiceError(c, err)
		}
		return c.JSON(out)
	}
}

// DeleteUserExtra godoc
// @Summary Delete a user extra and its images
// @Param id path int true "record id"
// @Success 204
// @Router /api/user-extras/{id} [delete]
func DeleteUserExtra(svc service.UserExtraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadImages godoc
// @Summary Upload the front and back images of a user extra
// @Accept multipart/form-data
// @Param id path int true "record id"
// @Param frontImage formData file true "front image"
// @Param backImage formData file true "back image"
// @Success 200 {object} model.UserExtra
// @Router /api/user-extras/{id}/images [post]
func UploadImages(svc service.UserExtraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		frontFH, err := c.FormFile("frontImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "frontImage is required")
		}
		backFH, err := c.FormFile("backImage")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "backImage is required")
		}

		front, err := frontFH.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer front.Close()
		back, err := backFH.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer back.Close()

		out, err := svc.UploadImages(c.UserContext(), id,
			service.ImageUpload{Reader: front, Filename: frontFH.Filename, ContentType: frontFH.Header.Get("Content-Type"), Size: frontFH.Size},
			service.ImageUpload{Reader: back, Filename: backFH.Filename, ContentType: backFH.Header.Get("Content-Type"), Size: backFH.Size},
		)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeServiceError(c, err)
			}
			return writeError(c, fiber.StatusExpectationFailed, "UPLOAD_FAILED",
				fmt.Sprintf("Could not upload the file: %s!", frontFH.Filename))
		}
		return c.JSON(out)
	}
}

// GetImage godoc
// @Summary Redirect to a presigned download URL of an image
// @Param id path int true "record id"
// @Param side path string true "front or back"
// @Success 307
// @Router /api/user-extras/{id}/images/{side} [get]
func GetImage(svc service.UserExtraService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := pathID(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		side, err := service.ParseImageSide(c.Params("side"))
		if err != nil {
			return writeServiceError(c, err)
		}
		u, err := svc.ImageURL(c.UserContext(), id, side)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Redirect(u, fiber.StatusTemporaryRedirect)
	}
}

func pathID(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

// queryInt reads a non-negative integer query parameter; absent means 0.
func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
