package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/templatehub/backend/internal/project/repository"
	"github.com/templatehub/backend/internal/project/service"
	"github.com/templatehub/backend/internal/validation"
	"github.com/templatehub/backend/pkg/apperr"
	"github.com/templatehub/backend/pkg/pagination"
)

// RegisterRoutes mounts the project REST surface on the given group
// (expected to be /api/projects).
func RegisterRoutes(rg *gin.RouterGroup, svc *service.Service) {
	rg.GET("", func(c *gin.Context) {
		f := repository.Filter{
			Status: c.Query("status"),
			Owner:  c.Query("owner"),
			Tag:    c.Query("tag"),
			Query:  c.Query("q"),
		}
		page, err := svc.FindAll(c.Request.Context(), f, pageOptions(c))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	rg.GET("/active", func(c *gin.Context) {
		page, err := svc.FindActive(c.Request.Context(), pageOptions(c))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, page)
	})

	rg.POST("", func(c *gin.Context) {
		var in validation.ProjectInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid project payload", nil))
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
		p, err := svc.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusOK, p)
	})

	rg.PUT("/:id", func(c *gin.Context) {
		var in validation.ProjectUpdate
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid project payload", nil))
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

	rg.POST("/:id/tasks", func(c *gin.Context) {
		var in validation.TaskInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.Error(apperr.Validation("Invalid task payload", nil))
			return
		}
		updated, err := svc.AddTask(c.Request.Context(), c.Param("id"), &in)
		if err != nil {
			c.Error(err)
			return
		}
		c.JSON(http.StatusCreated, updated)
	})
}

func pageOptions(c *gin.Context) pagination.Options {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}
