package storage

import (
	"github.com/chic-commerce/storefront-api/internal/apperror"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	store  *Local
	logger *zap.Logger
}

func NewHandler(store *Local, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterAdminRoutes(r fiber.Router) {
	r.Post("/uploads/:bucket", h.upload)
}

// RegisterStatic serves stored files publicly.
func (h *Handler) RegisterStatic(app *fiber.App) {
	app.Static(PublicPrefix, h.store.Dir)
}

func (h *Handler) upload(c *fiber.Ctx) error {
	bucket := c.Params("bucket")
	if !Buckets[bucket] {
		return apperror.Respond(c, &apperror.NotFound{Resource: "bucket", ID: bucket})
	}

	file, err := c.FormFile("file")
	if err != nil {
		return apperror.Respond(c, &apperror.Validation{
			Message: "الملف مطلوب",
			Fields:  map[string]string{"file": "الملف مطلوب"},
		})
	}
	ext, ok := Extension(file.Filename)
	if !ok {
		return apperror.Respond(c, &apperror.Validation{
			Message: "نوع الملف غير مدعوم",
			Fields:  map[string]string{"file": "يسمح فقط بملفات الصور"},
		})
	}

	name := uuid.NewString() + ext
	dest, err := h.store.Path(bucket, name)
	if err != nil {
		return apperror.Respond(c, err)
	}
	if err := c.SaveFile(file, dest); err != nil {
		return apperror.Respond(c, err)
	}

	h.logger.Info("file uploaded", zap.String("bucket", bucket), zap.String("name", name), zap.Int64("size", file.Size))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": h.store.URL(bucket, name)})
}
