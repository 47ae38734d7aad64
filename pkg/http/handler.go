package http

import "github.com/labstack/echo/v4"

// Handler registers application routes on the Echo instance.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}
