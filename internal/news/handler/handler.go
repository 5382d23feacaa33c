package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/internal/news/repository"
	"github.com/templatehub/backend/internal/news/service"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
)

// RegisterRoutes mounts the news REST surface on the given group
// (expected to be /api/news).
func RegisterRoutes(rg *gin.RouterGroup, svc *service.Service) {
	rg.GET("", func(c *gin.Context) {
		f := repository.Filter{
			Category: c.Query("category"),
			Author:   c.Query("author"),
			Query:    c.Query("q"),
		}
		page, err := svc.FindAll(c.Request.Context(), f, pageOptions(c))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	rg.POST("", func(c *gin.Context) {
		var in validation.NewsInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid news payload", nil))
			return
		}
		created, err := svc.Create(c.Request.Context(), &in)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, created)
	})

	rg.GET("/:id", func(c *gin.Context) {
		a, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, a)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		var in validation.NewsUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid news payload", nil))
			return
		}
		updated, err := svc.Update(c.Request.Context(), c.Param("id"), &in)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, updated)
	})

	rg.DELETE("/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			c.Error(err)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func pageOptions(c *gin.Context) pagination.Options {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}
