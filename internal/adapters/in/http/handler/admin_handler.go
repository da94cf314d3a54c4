// internal/adapters/in/http/handler/admin_handler.go
package handler

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
)

// ImageUploader is the outbound port the upload route needs.
type ImageUploader interface {
	Upload(ctx context.Context, fileName, contentType string, data []byte) (string, error)
}

// AdminHandler serves the management console behind UserAuth + AdminOnly:
// - GET    /admin/dashboard
// - GET    /admin/orders
// - PUT    /admin/orders/{id}/status
// - GET    /admin/products
// - POST   /admin/products
// - PUT    /admin/products/{id}
// - DELETE /admin/products/{id}
// - POST   /admin/upload (multipart image upload)
type AdminHandler struct {
	Admin    *usecase.AdminUsecase
	Products *usecase.ProductUsecase
	Uploader ImageUploader
}

func NewAdminHandler(admin *usecase.AdminUsecase, products *usecase.ProductUsecase, uploader ImageUploader) http.Handler {
	return &AdminHandler{Admin: admin, Products: products, Uploader: uploader}
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.Admin == nil || h.Products == nil {
		writeErr(w, http.StatusInternalServerError, "admin handler is not configured")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case path == "/admin/dashboard" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, h.Admin.Dashboard(r.Context()))

	case path == "/admin/orders" && r.Method == http.MethodGet:
		h.listOrders(w, r)

	case strings.HasPrefix(path, "/admin/orders/") && strings.HasSuffix(path, "/status") && r.Method == http.MethodPut:
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/admin/orders/"), "/status")
		h.updateOrderStatus(w, r, strings.Trim(id, "/"))

	case path == "/admin/products" && r.Method == http.MethodGet:
		h.listProducts(w, r)

	case path == "/admin/products" && r.Method == http.MethodPost:
		h.createProduct(w, r)

	case strings.HasPrefix(path, "/admin/products/") && r.Method == http.MethodPut:
		h.updateProduct(w, r, strings.TrimPrefix(path, "/admin/products/"))

	case strings.HasPrefix(path, "/admin/products/") && r.Method == http.MethodDelete:
		h.deleteProduct(w, r, strings.TrimPrefix(path, "/admin/products/"))

	case path == "/admin/upload" && r.Method == http.MethodPost:
		h.upload(w, r)

	case strings.HasPrefix(path, "/admin"):
		methodNotAllowed(w)

	default:
		notFound(w)
	}
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Admin.ListOrders(r.Context())
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": emptyIfNil(orders)})
}

func (h *AdminHandler) updateOrderStatus(w http.ResponseWriter, r *http.Request, id string) {
	var req struct {
		Status string `json:"status"`
	}
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	o, err := h.Admin.UpdateOrderStatus(r.Context(), id, req.Status)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": o})
}

func (h *AdminHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": emptyIfNil(products)})
}

func (h *AdminHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req usecase.CreateProductInput
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.Products.Create(r.Context(), req)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"product": p})
}

type productPatchRequest struct {
	Name        *string                 `json:"name"`
	Description *string                 `json:"description"`
	Price       *float64                `json:"price"`
	Category    *string                 `json:"category"`
	Images      *[]string               `json:"images"`
	Sizes       *[]productdom.SizeStock `json:"sizes"`
}

func (h *AdminHandler) updateProduct(w http.ResponseWriter, r *http.Request, id string) {
	var req productPatchRequest
	if err := readJSON(r, &req); err != nil {
		badRequest(w, "invalid json body")
		return
	}

	p, err := h.Products.Update(r.Context(), id, productdom.Patch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Images:      req.Images,
		Sizes:       req.Sizes,
	})
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"product": p})
}

func (h *AdminHandler) deleteProduct(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.Products.Delete(r.Context(), id); err != nil {
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// maxUploadBytes bounds product image uploads (10MB).
const maxUploadBytes = 10 << 20

func (h *AdminHandler) upload(w http.ResponseWriter, r *http.Request) {
	if h.Uploader == nil {
		writeErr(w, http.StatusServiceUnavailable, "image upload is not configured")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		badRequest(w, "invalid multipart body")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		badRequest(w, "image file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "read upload failed")
		return
	}

	url, err := h.Uploader.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
