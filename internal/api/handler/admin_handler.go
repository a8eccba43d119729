package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codabean/storefront/internal/api/metrics"
	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
	"github.com/codabean/storefront/internal/core/service"
)

// AdminHandler exposes the catalog editors held in each admin's visitor
// state. Every route must sit behind middleware.Guard(true).
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// List godoc
//
//	@Summary	Load a catalog list
//	@Tags		admin
//	@Produce	json
//	@Param		kind	path		string	true	"products or events"
//	@Success	200		{object}	service.EditorView[domain.Product]
//	@Failure	400		{object}	errorResponse
//	@Failure	502		{object}	errorResponse
//	@Router		/api/admin/{kind} [get]
func (h *AdminHandler) List(c echo.Context) error {
	v, kind, err := adminTarget(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	switch kind {
	case domain.KindProduct:
		view, err := v.Products.Refresh(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view)
	default:
		view, err := v.Events.Refresh(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, view)
	}
}

// Sort godoc
//
//	@Summary		Sort a catalog list
//	@Description	Sorting the same column twice flips ascending to descending.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			kind	path		string		true	"products or events"
//	@Param			body	body		sortRequest	true	"Column"
//	@Success		200		{object}	service.EditorView[domain.Product]
//	@Router			/api/admin/{kind}/sort [post]
func (h *AdminHandler) Sort(c echo.Context) error {
	v, kind, err := adminTarget(c)
	if err != nil {
		return err
	}

	var req sortRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if kind == domain.KindProduct {
		return c.JSON(http.StatusOK, v.Products.SortBy(req.Column))
	}
	return c.JSON(http.StatusOK, v.Events.SortBy(req.Column))
}

// Filter godoc
//
//	@Summary	Filter a catalog list
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		kind	path		string			true	"products or events"
//	@Param		body	body		filterRequest	true	"Search text"
//	@Success	200		{object}	service.EditorView[domain.Product]
//	@Router		/api/admin/{kind}/filter [post]
func (h *AdminHandler) Filter(c echo.Context) error {
	v, kind, err := adminTarget(c)
	if err != nil {
		return err
	}

	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if kind == domain.KindProduct {
		return c.JSON(http.StatusOK, v.Products.SetFilter(req.Query))
	}
	return c.JSON(http.StatusOK, v.Events.SetFilter(req.Query))
}

// Save godoc
//
//	@Summary		Create or update a catalog entry
//	@Description	The kind field selects which of product or event is read. An id of 0 creates.
//	@Tags			admin
//	@Accept			json
//	@Produce		json
//	@Param			body	body		domain.CatalogEntry	true	"Tagged entry"
//	@Success		200		{object}	service.EditorView[domain.Product]
//	@Failure		400		{object}	errorResponse
//	@Failure		422		{object}	validationErrorResponse
//	@Failure		502		{object}	errorResponse
//	@Router			/api/admin/catalog [post]
func (h *AdminHandler) Save(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var entry domain.CatalogEntry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	kind, err := domain.ParseEntityKind(string(entry.Kind))
	if err != nil {
		return err
	}
	entry.Kind = kind

	entity, err := entry.Entity()
	if err != nil {
		return err
	}

	switch e := entity.(type) {
	case domain.Product:
		return saveEntity(c, v.Products, kind, e, nil)
	case domain.Event:
		return saveEntity(c, v.Events, kind, e, nil)
	}
	return domain.ErrUnknownEntityKind
}

// SaveProduct godoc
//
//	@Summary		Create or update a product with an image
//	@Description	Multipart form with a productDto JSON part and an optional imageFile part.
//	@Tags			admin
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			productDto	formData	string	true	"Product JSON"
//	@Param			imageFile	formData	file	false	"Product image"
//	@Success		200			{object}	service.EditorView[domain.Product]
//	@Failure		400			{object}	errorResponse
//	@Failure		422			{object}	validationErrorResponse
//	@Failure		502			{object}	errorResponse
//	@Router			/api/admin/products [post]
func (h *AdminHandler) SaveProduct(c echo.Context) error {
	v, err := ctxVisitor(c)
	if err != nil {
		return err
	}

	var p domain.Product
	if err := json.Unmarshal([]byte(c.FormValue("productDto")), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid productDto")
	}

	var image *ports.ImageUpload
	fh, err := c.FormFile("imageFile")
	switch {
	case err == nil:
		f, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "unreadable imageFile")
		}
		defer f.Close()
		image = &ports.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Body:        f,
		}
	case !errors.Is(err, http.ErrMissingFile):
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}

	return saveEntity(c, v.Products, domain.KindProduct, p, image)
}

// Delete godoc
//
//	@Summary	Delete a catalog entry
//	@Tags		admin
//	@Produce	json
//	@Param		kind	path		string	true	"products or events"
//	@Param		id		path		int		true	"Entry ID"
//	@Success	200		{object}	service.EditorView[domain.Product]
//	@Failure	400		{object}	errorResponse
//	@Failure	502		{object}	errorResponse
//	@Router		/api/admin/{kind}/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	v, kind, err := adminTarget(c)
	if err != nil {
		return err
	}
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if kind == domain.KindProduct {
		return deleteEntity(c, v.Products, kind, id)
	}
	return deleteEntity(c, v.Events, kind, id)
}

// adminTarget resolves the visitor and the :kind path parameter.
func adminTarget(c echo.Context) (*service.Visitor, domain.EntityKind, error) {
	v, err := ctxVisitor(c)
	if err != nil {
		return nil, "", err
	}
	kind, err := domain.ParseEntityKind(c.Param("kind"))
	if err != nil {
		return nil, "", err
	}
	return v, kind, nil
}

func saveEntity[T domain.CatalogEntity](c echo.Context, ed *service.Editor[T], kind domain.EntityKind, entity T, image *ports.ImageUpload) error {
	if err := c.Validate(entity); err != nil {
		return err
	}

	view, err := ed.Save(c.Request().Context(), entity, image)
	recordAdmin(kind, "save", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func deleteEntity[T domain.CatalogEntity](c echo.Context, ed *service.Editor[T], kind domain.EntityKind, id int64) error {
	view, err := ed.Delete(c.Request().Context(), id)
	recordAdmin(kind, "delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

func recordAdmin(kind domain.EntityKind, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	metrics.AdminMutationsTotal.WithLabelValues(string(kind), op, result).Inc()
}
