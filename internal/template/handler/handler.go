package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/internal/template/repository"
	"github.com/templatehub/backend/internal/template/service"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
)

// RegisterRoutes mounts the template REST surface on the given group
// (expected to be /api/templates). Controllers only translate between HTTP
// and the service; errors flow to the terminal error handler.
func RegisterRoutes(rg *gin.RouterGroup, svc *service.Service) {
	rg.GET("", func(c *gin.Context) {
		f := repository.Filter{
			Type:      c.Query("type"),
			CreatedBy: c.Query("createdBy"),
			Tag:       c.Query("tag"),
			Query:     c.Query("q"),
		}
		if v := c.Query("isPublic"); v != "" {
			b, err := strconv.ParseBool(v)
			if err == nil {
				f.IsPublic = &b
			}
		}
		page, err := svc.FindAll(c.Request.Context(), f, pageOptions(c))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	rg.GET("/public", func(c *gin.Context) {
		page, err := svc.FindPublic(c.Request.Context(), pageOptions(c))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	rg.POST("", func(c *gin.Context) {
		var in validation.TemplateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid template payload", nil))
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
		t, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, t)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		var in validation.TemplateUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid template payload", nil))
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
