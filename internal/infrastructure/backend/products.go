package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"

	"github.com/codabean/storefront/internal/core/domain"
	"github.com/codabean/storefront/internal/core/ports"
)

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := c.do(ctx, request{op: "list_products", method: http.MethodGet, path: "/products"}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var out *domain.Product
	if err := c.do(ctx, request{op: "get_product", method: http.MethodGet, path: idPath("/products/product/", id)}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("get_product %d: %w", id, errNilResponse)
	}
	return out, nil
}

// SaveProduct posts the product as a multipart form: a JSON "productDto" part
// and an optional "imageFile" part. ID 0 creates, anything else edits.
func (c *Client) SaveProduct(ctx context.Context, p domain.Product, image *ports.ImageUpload) (string, error) {
	body, contentType, err := productForm(p, image)
	if err != nil {
		return "", err
	}

	path, op := "/products/edit-product", "edit_product"
	if p.ID == 0 {
		path, op = "/products/new-product", "new_product"
	}

	var msg string
	err = c.do(ctx, request{op: op, method: http.MethodPost, path: path, body: body, contentType: contentType}, &msg)
	return msg, err
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) (string, error) {
	var msg string
	err := c.do(ctx, request{op: "delete_product", method: http.MethodDelete, path: idPath("/products/delete-product/", id)}, &msg)
	return msg, err
}

// ProductImageURL returns the public URL of a stored product image.
func (c *Client) ProductImageURL(imageURL string) string {
	return c.url("/images/product-image/" + url.PathEscape(imageURL))
}

func productForm(p domain.Product, image *ports.ImageUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="productDto"`)
	header.Set("Content-Type", "application/json")
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("product form: %w", err)
	}
	if err := json.NewEncoder(part).Encode(p); err != nil {
		return nil, "", fmt.Errorf("product form: encode product: %w", err)
	}

	if image != nil && image.Body != nil {
		contentType := image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="imageFile"; filename=%q`, image.Filename))
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("product form: %w", err)
		}
		if _, err := io.Copy(part, image.Body); err != nil {
			return nil, "", fmt.Errorf("product form: copy image: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("product form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
