package router

import (
	"github.com/gin-gonic/gin"

	"communite/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, storefront *handler.StorefrontHandler) {
	api := r.Group("/api")
	{
		api.GET("/categories", storefront.ListCategories)
		api.GET("/categories/:category/subcategories", storefront.ListSubcategories)
		api.GET("/categories/:category/subcategories/:subcategory/products", storefront.ListProducts)

		api.GET("/cart", storefront.GetCart)
		api.POST("/cart/items", storefront.AddItem)
		api.PATCH("/cart/items/:id", storefront.UpdateItem)
		api.DELETE("/cart/items/:id", storefront.RemoveItem)
		api.DELETE("/cart", storefront.ClearCart)

		api.POST("/checkout/start", storefront.StartCheckout)
		api.POST("/checkout/lookup", storefront.LookupCustomer)
		api.POST("/checkout/submit", storefront.SubmitOrder)
	}
}
