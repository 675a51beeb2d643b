package handlers

import (
	"errors"
	"net/http"
	"strings"

	"SiteWatch/internal/domain"
	"SiteWatch/internal/storage"
	"SiteWatch/pkg/validator"

	"github.com/gin-gonic/gin"
)

// ListSites возвращает список сайтов с последними статусами
func (h *Handlers) ListSites(c *gin.Context) {
	sites, err := h.sites.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list sites", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse("list_failed", "Failed to list sites"))
		return
	}

	snapshot, err := h.statuses.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load statuses", "error", err)
		snapshot = domain.Snapshot{}
	}

	type siteWithStatus struct {
		domain.Site
		Status domain.Status `json:"status"`
	}

	out := make([]siteWithStatus, 0, len(sites))
	for _, site := range sites {
		out = append(out, siteWithStatus{
			Site:   site,
			Status: snapshot.Get(site.URL),
		})
	}

	c.JSON(http.StatusOK, SuccessResponse("sites_list", gin.H{
		"sites": out,
		"count": len(out),
	}))
}

// CreateSite добавляет новый сайт в список
func (h *Handlers) CreateSite(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
		URL  string `json:"url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "URL is required"))
		return
	}

	// Validation tolerates surrounding whitespace, so the stored URL must
	// be the trimmed form or later probes would parse it as a bare path.
	req.URL = strings.TrimSpace(req.URL)
	if !validator.ValidateSiteURL(req.URL) {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_url", "URL must be a fully-qualified http or https address"))
		return
	}

	site := domain.NewSite(req.Name, req.URL)
	if err := h.sites.Create(c.Request.Context(), &site); err != nil {
		if errors.Is(err, storage.ErrDuplicateSite) {
			c.JSON(http.StatusConflict, ErrorResponse("duplicate_site", "A site with this URL already exists"))
			return
		}
		h.logger.Error("failed to create site", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse("create_failed", "Failed to create site"))
		return
	}

	// Advisory only: an unresolvable hostname is surfaced to the user but
	// never blocks insertion.
	resolves := h.resolver.Resolves(c.Request.Context(), site.Hostname())

	h.logger.Info("site created", "url", site.URL, "name", site.Name, "resolves", resolves)
	c.JSON(http.StatusCreated, SuccessResponse("site_created", gin.H{
		"site":     site,
		"resolves": resolves,
	}))
}

// DeleteSite удаляет сайт и чистит denylist
func (h *Handlers) DeleteSite(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "URL is required"))
		return
	}
	req.URL = strings.TrimSpace(req.URL)

	site, err := h.sites.GetByURL(c.Request.Context(), req.URL)
	if err != nil {
		h.logger.Error("failed to look up site", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse("delete_failed", "Failed to delete site"))
		return
	}
	if site == nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "Site not found"))
		return
	}

	if err := h.sites.Delete(c.Request.Context(), req.URL); err != nil {
		h.logger.Error("failed to delete site", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse("delete_failed", "Failed to delete site"))
		return
	}

	// Unconditional prune: in practice one site per hostname.
	h.denylist.Remove(c.Request.Context(), site.Hostname())

	h.logger.Info("site deleted", "url", req.URL)
	c.JSON(http.StatusOK, SuccessResponse("site_deleted", nil))
}
