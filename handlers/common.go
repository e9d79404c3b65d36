package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"bak-counter/apperrors"
)

// respondError maps service errors onto the HTTP surface: taxonomy errors
// keep their status and message, everything else becomes an opaque 500.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
	}
	log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// openUpload reads a multipart upload fully into memory and returns its
// declared content type.
func openUpload(fileHeader *multipart.FileHeader) ([]byte, string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, "", apperrors.Validation("could not read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", apperrors.Validation("could not read uploaded file")
	}
	return data, fileHeader.Header.Get("Content-Type"), nil
}
