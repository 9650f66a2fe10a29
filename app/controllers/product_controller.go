package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/repositories"
	"github.com/shashiranjanraj/storefront/pkg/apperr"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

type ProductController struct {
	products *repositories.ProductRepository
}

func NewProductController(products *repositories.ProductRepository) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.products.GetAll(r.Context())
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, products)
}

func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productId")
	if err != nil {
		response.Error(w, err)
		return
	}

	product, err := c.products.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	if product == nil {
		response.Error(w, apperr.NewNotFound("Product not found"))
		return
	}
	response.OK(w, product)
}

func (c *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.CreateProductInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	product, err := c.products.Create(r.Context(), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.Created(w, product)
}

func (c *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productId")
	if err != nil {
		response.Error(w, err)
		return
	}

	var input models.UpdateProductInput
	if err := decode(r, &input); err != nil {
		response.Error(w, err)
		return
	}

	product, err := c.products.Update(r.Context(), id, input)
	if err != nil {
		response.Error(w, err)
		return
	}
	if product == nil {
		response.Error(w, apperr.NewNotFound("Product not found"))
		return
	}
	response.OK(w, product)
}

func (c *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "productId")
	if err != nil {
		response.Error(w, err)
		return
	}

	deleted, err := c.products.Delete(r.Context(), id)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.OK(w, deleted)
}
