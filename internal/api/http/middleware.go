package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/pytracker/tracker-service/internal/observability"
	apperrors "github.com/pytracker/tracker-service/pkg/util/errorutil"
)

// RegisterMiddlewares attaches the global chain. Recovery sits outermost so
// a panic anywhere below still produces the standard error envelope.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	app.Use(recoverMiddleware(logger))
	if timeout > 0 {
		app.Use(requestTimeout(timeout))
	}
	app.Use(errorMapper(logger, metrics))
	app.Use(observability.RequestLogger(logger, metrics))
}

func recoverMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var err error
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("panic recovered",
						zap.Any("panic", r),
						zap.String("path", c.Path()),
						zap.ByteString("stack", debug.Stack()))
					err = writeError(c, apperrors.ToDomainError(apperrors.NewInternalError(nil)))
				}
			}()
			err = c.Next()
		}()
		return err
	}
}

func requestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorMapper turns errors returned by handlers into the JSON error
// envelope. Handlers return domain errors; anything else is treated as
// internal.
func errorMapper(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		domainErr := apperrors.ToDomainError(err)
		metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
		if domainErr.HTTPStatus >= 500 {
			logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
		}
		return writeError(c, domainErr)
	}
}

// writeError renders the envelope shared by the mapper and the recoverer.
func writeError(c *fiber.Ctx, domainErr *apperrors.DomainError) error {
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	c.Status(domainErr.HTTPStatus)
	return c.JSON(fiber.Map{"error": body})
}
