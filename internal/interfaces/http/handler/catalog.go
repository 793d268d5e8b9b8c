package handler

import (
	"io"

	catalogapp "github.com/gestor-erp/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves products, services and packages
type CatalogHandler struct {
	BaseHandler
	products *catalogapp.ProductService
	services *catalogapp.ServiceService
	packages *catalogapp.PackageService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products *catalogapp.ProductService, services *catalogapp.ServiceService, packages *catalogapp.PackageService) *CatalogHandler {
	return &CatalogHandler{products: products, services: services, packages: packages}
}

// RegisterRoutes mounts the catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.CreateProduct)
	products.GET("", h.ListProducts)
	products.GET("/search", h.SearchProducts)
	products.GET("/below-minimum", h.ListBelowMinimum)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.POST("/:id/image", h.UploadProductImage)
	products.DELETE("/:id", h.DeleteProduct)

	services := rg.Group("/services")
	services.POST("", h.CreateService)
	services.GET("", h.ListServices)
	services.GET("/:id", h.GetService)
	services.PUT("/:id", h.UpdateService)
	services.DELETE("/:id", h.DeleteService)

	packages := rg.Group("/packages")
	packages.POST("", h.CreatePackage)
	packages.GET("", h.ListPackages)
	packages.GET("/:id", h.GetPackage)
	packages.PUT("/:id", h.UpdatePackage)
	packages.DELETE("/:id", h.DeletePackage)
}

// CreateProduct adds a product to the catalog
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	product, err := h.products.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// ListProducts lists products with pagination
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.products.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// SearchProducts does a typeahead lookup by name
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	results, err := h.products.Search(c.Request.Context(), companyID(c), c.Query("q"), 10)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// ListBelowMinimum lists products whose stock fell under the minimum
func (h *CatalogHandler) ListBelowMinimum(c *gin.Context) {
	results, err := h.products.ListBelowMinimum(c.Request.Context(), companyID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// GetProduct returns one product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	product, err := h.products.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdateProduct updates a product
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	product, err := h.products.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UploadProductImage stores the product photo
func (h *CatalogHandler) UploadProductImage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file field")
		return
	}
	src, err := file.Open()
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		h.BadRequest(c, "Cannot read uploaded file")
		return
	}

	product, err := h.products.UploadImage(c.Request.Context(), companyID(c), id, file.Filename, data, file.Header.Get("Content-Type"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// DeleteProduct removes a product
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid product id")
		return
	}
	if err := h.products.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreateService adds a service to the catalog
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req catalogapp.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	service, err := h.services.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, service)
}

// ListServices lists services with pagination
func (h *CatalogHandler) ListServices(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.services.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetService returns one service
func (h *CatalogHandler) GetService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid service id")
		return
	}
	service, err := h.services.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, service)
}

// UpdateService updates a service
func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid service id")
		return
	}
	var req catalogapp.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	service, err := h.services.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, service)
}

// DeleteService removes a service; services referenced by orders can only
// be deactivated
func (h *CatalogHandler) DeleteService(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid service id")
		return
	}
	if err := h.services.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CreatePackage adds a bundle of products and services
func (h *CatalogHandler) CreatePackage(c *gin.Context) {
	var req catalogapp.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	pkg, err := h.packages.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, pkg)
}

// ListPackages lists packages with pagination
func (h *CatalogHandler) ListPackages(c *gin.Context) {
	filter, err := bindList(c)
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	page, err := h.packages.List(c.Request.Context(), companyID(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// GetPackage returns one package
func (h *CatalogHandler) GetPackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid package id")
		return
	}
	pkg, err := h.packages.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// UpdatePackage updates a package
func (h *CatalogHandler) UpdatePackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid package id")
		return
	}
	var req catalogapp.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	pkg, err := h.packages.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pkg)
}

// DeletePackage removes a package
func (h *CatalogHandler) DeletePackage(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.BadRequest(c, "Invalid package id")
		return
	}
	if err := h.packages.Delete(c.Request.Context(), companyID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
