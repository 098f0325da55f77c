package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"docvault/internal/service"
)

// CreateDownloadLink issues a time-boxed single-use download link for an
// existing document.
func CreateDownloadLink(svc service.DownloadTokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		link, err := svc.Issue(c.UserContext(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(link)
	}
}

// DownloadByToken redeems a download token and streams the document bytes.
// Each token works exactly once.
func DownloadByToken(svc service.DownloadTokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Consume(c.UserContext(), c.Params("token"))
		if err != nil {
			return respondError(c, err)
		}

		c.Set(fiber.HeaderContentType, "application/pdf")
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", res.Document.OriginalName))
		return c.Status(fiber.StatusOK).Send(res.Content)
	}
}
