package handlers

import (
	"errors"
	"strconv"

	"giftcerts/internal/apperr"
	"giftcerts/internal/query"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// queryParams extracts the raw query multimap from the request. Repeated
// keys keep all their values, which the listing engine needs for the tag
// filter.
func queryParams(c *fiber.Ctx) query.Params {
	params := query.Params{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		params[k] = append(params[k], string(value))
	})
	return params
}

// parseID parses a route parameter as a positive int64, failing with the
// entity-appropriate code before any lookup is attempted.
func parseID(c *fiber.Ctx, name string, code apperr.Code) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.NewValidation(code, c.Params(name))
	}
	return id, nil
}

var duplicatedCodes = []apperr.Code{
	apperr.CodeDuplicatedCertificateName,
	apperr.CodeDuplicatedTagName,
	apperr.CodeDuplicatedUserName,
}

// writeError maps the error taxonomy to HTTP statuses: validation errors to
// 400 (409 when the violation is a duplicated name), not-found to 404,
// anything else to 500.
func writeError(c *fiber.Ctx, err error) error {
	var validationErr *apperr.ValidationError
	if errors.As(err, &validationErr) {
		status := fiber.StatusBadRequest
		for _, code := range duplicatedCodes {
			if validationErr.Has(code) {
				status = fiber.StatusConflict
				break
			}
		}
		return c.Status(status).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  validationErr.Details,
		})
	}

	var notFound *apperr.NotFoundError
	if errors.As(err, &notFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": notFound.Error(),
		})
	}

	logrus.Errorf("request failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}
