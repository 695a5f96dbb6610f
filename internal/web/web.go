// Package web serves the server-rendered user extra screens.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"userextra/internal/client"
	"userextra/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

// StoreFactory builds the state container for one request.
type StoreFactory func() view.Store

type Handler struct {
	stores StoreFactory
	paths  view.Paths
	tmpl   *template.Template
	log    zerolog.Logger
}

// New builds the screens. Every request gets its own store from stores, so
// one visitor's fetches never show up on another visitor's page.
func New(stores StoreFactory, p view.Paths, log zerolog.Logger) (*Handler, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Handler{stores: stores, paths: p, tmpl: tmpl, log: log}, nil
}

// Register mounts the screens under the base path. Anything else under the
// base path renders the not-found page through the error boundary.
func (h *Handler) Register(r fiber.Router) {
	g := r.Group(h.paths.Base, h.ErrorBoundary())

	g.Get("/", h.list)
	g.Post("/refresh", h.refresh)
	g.Get("/new", h.editForm)
	g.Post("/new", h.submit)
	g.Get("/:id<int>", h.detail)
	g.Get("/:id<int>/edit", h.editForm)
	g.Post("/:id<int>/edit", h.submit)
	g.Get("/:id<int>/delete", h.deleteForm)
	g.Post("/:id<int>/delete", h.confirmDelete)
	g.All("/*", func(*fiber.Ctx) error { return fiber.ErrNotFound })
}

type layout struct {
	Title string
	Home  string
	Page  any
}

type errorPage struct {
	Heading string
	Message string
}

func (h *Handler) list(c *fiber.Ctx) error {
	v := view.NewListView(h.stores(), h.paths, queryOf(c))
	v.Activate(c.UserContext())
	page := v.Page()
	return h.render(c, fiber.StatusOK, "list", page.Heading, page)
}

func (h *Handler) refresh(c *fiber.Ctx) error {
	v := view.NewListView(h.stores(), h.paths, queryOf(c))
	v.Refresh(c.UserContext())
	page := v.Page()
	return h.render(c, fiber.StatusOK, "list", page.Heading, page)
}

func (h *Handler) detail(c *fiber.Ctx) error {
	v := view.NewDetailView(h.stores(), h.paths, c.Params("id"))
	v.Activate(c.UserContext())
	page := v.Page()

	status := fiber.StatusOK
	if page.Err != nil {
		status = statusOf(page.Err)
	}
	return h.render(c, status, "detail", page.Heading, page)
}

func (h *Handler) editForm(c *fiber.Ctx) error {
	v := view.NewUpdateView(h.stores(), h.paths, c.Params("id"))
	v.Activate(c.UserContext())
	page := v.Page()
	return h.render(c, fiber.StatusOK, "update", page.Heading, page)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	v := view.NewUpdateView(h.stores(), h.paths, c.Params("id"))
	form := view.Form{
		FrontImage: c.FormValue("frontImage"),
		BackImage:  c.FormValue("backImage"),
		UserID:     c.FormValue("userId"),
	}
	if v.Submit(c.UserContext(), form) {
		return c.Redirect(v.DoneHref(), fiber.StatusSeeOther)
	}

	page := v.Page()
	status := fiber.StatusBadRequest
	if err := v.Err(); err != nil && !errors.Is(err, view.ErrInvalidUserID) {
		status = statusOf(err)
	}
	return h.render(c, status, "update", page.Heading, page)
}

func (h *Handler) deleteForm(c *fiber.Ctx) error {
	v := view.NewDeleteView(h.stores(), h.paths, c.Params("id"))
	v.Activate(c.UserContext())
	page := v.Page()
	return h.render(c, fiber.StatusOK, "delete", page.Heading, page)
}

func (h *Handler) confirmDelete(c *fiber.Ctx) error {
	v := view.NewDeleteView(h.stores(), h.paths, c.Params("id"))
	if v.Confirm(c.UserContext()) {
		return c.Redirect(v.DoneHref(), fiber.StatusSeeOther)
	}
	page := v.Page()
	return h.render(c, statusOf(v.Err()), "delete", page.Heading, page)
}

// ErrorBoundary renders handler errors and panics as an HTML error page.
func (h *Handler) ErrorBoundary() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				h.log.Error().
					Str("event", "panic_recovered").
					Str("path", c.Path()).
					Interface("panic", r).
					Msg("view panicked")
				err = h.renderError(c, fiber.StatusInternalServerError)
			}
		}()

		if err := c.Next(); err != nil {
			status := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				h.log.Error().Err(err).Str("path", c.Path()).Msg("view failed")
			}
			return h.renderError(c, status)
		}
		return nil
	}
}

func (h *Handler) renderError(c *fiber.Ctx, status int) error {
	page := errorPage{Heading: "Error", Message: "Something went wrong."}
	if status == fiber.StatusNotFound {
		page = errorPage{Heading: "Page not found", Message: "The page you requested does not exist."}
	}
	if err := h.render(c, status, "error", page.Heading, page); err != nil {
		return c.Status(status).SendString(page.Message)
	}
	return nil
}

func (h *Handler) render(c *fiber.Ctx, status int, name, title string, page any) error {
	var buf bytes.Buffer
	data := layout{Title: title, Home: h.paths.List(), Page: page}
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func queryOf(c *fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}

// statusOf maps a remote failure to the status of the page showing it.
func statusOf(err error) int {
	var se *client.StatusError
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500:
		return se.StatusCode
	default:
		return fiber.StatusBadGateway
	}
}
