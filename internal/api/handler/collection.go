package handler

import (
	"errors"
	"net/http"
	"parking_app/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CollectionHandler struct {
	store  repository.DocumentStore
	logger *zap.Logger
}

func NewCollectionHandler(store repository.DocumentStore, logger *zap.Logger) *CollectionHandler {
	return &CollectionHandler{store: store, logger: logger}
}

// GET /:collection
func (h *CollectionHandler) List(c *gin.Context) {
	docs, err := h.store.List(c.Request.Context(), c.Param("collection"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// GET /:collection/:id
func (h *CollectionHandler) Get(c *gin.Context) {
	doc, err := h.store.Get(c.Request.Context(), c.Param("collection"), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// POST /:collection
func (h *CollectionHandler) Create(c *gin.Context) {
	var doc repository.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	created, err := h.store.Create(c.Request.Context(), c.Param("collection"), doc)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /:collection/:id
func (h *CollectionHandler) Replace(c *gin.Context) {
	var doc repository.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.store.Replace(c.Request.Context(), c.Param("collection"), c.Param("id"), doc)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PATCH /:collection/:id
func (h *CollectionHandler) Merge(c *gin.Context) {
	var patch repository.Document
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.store.Merge(c.Request.Context(), c.Param("collection"), c.Param("id"), patch)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /:collection/:id
func (h *CollectionHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("collection"), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

// GET /db
func (h *CollectionHandler) Dump(c *gin.Context) {
	out := make(map[string][]repository.Document)
	for _, name := range h.store.Collections() {
		docs, err := h.store.List(c.Request.Context(), name)
		if err != nil {
			h.fail(c, err)
			return
		}
		out[name] = docs
	}
	c.JSON(http.StatusOK, out)
}

func (h *CollectionHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrUnknownCollection), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrDuplicateEntry):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("store operation failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "store operation failed", "details": err.Error()})
	}
}
