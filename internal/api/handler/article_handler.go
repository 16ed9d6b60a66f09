package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/newsphere/content-service/internal/api/metrics"
	"github.com/newsphere/content-service/internal/core/ports"
)

// ArticleHandler handles HTTP requests for article operations.
type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

// List handles GET /articles — the public listing of approved articles.
//
// @Summary      List approved articles
// @Tags         articles
// @Produce      json
// @Param        publisher  query     string  false  "Exact publisher name"
// @Param        tags       query     string  false  "Comma-separated tags, any-of match"
// @Param        title      query     string  false  "Case-insensitive title substring"
// @Success      200        {array}   articleResponse
// @Failure      500        {object}  errorResponse
// @Router       /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	input := ports.SearchArticlesInput{
		Publisher:  c.QueryParam("publisher"),
		TitleQuery: c.QueryParam("title"),
	}
	if tags := c.QueryParam("tags"); tags != "" {
		input.Tags = strings.Split(tags, ",")
	}

	articles, err := h.service.ListApproved(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Trending handles GET /articles/trending — top articles by view count.
//
// @Summary      List trending articles
// @Tags         articles
// @Produce      json
// @Success      200  {array}   articleResponse
// @Failure      500  {object}  errorResponse
// @Router       /articles/trending [get]
func (h *ArticleHandler) Trending(c echo.Context) error {
	articles, err := h.service.Trending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Get handles GET /articles/:id.
//
// @Summary      Get an article by id
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  articleResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Get(c echo.Context) error {
	article, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// RecordView handles POST /articles/:id/view. Not gated by moderation status.
//
// @Summary      Record an article view
// @Tags         articles
// @Produce      json
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id}/view [post]
func (h *ArticleHandler) RecordView(c echo.Context) error {
	if err := h.service.RecordView(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.ArticleViewsTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "view recorded"})
}

// Submit handles POST /v1/articles.
//
// @Summary      Submit an article for review
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      submitArticleRequest  true  "Article details"
// @Success      201   {object}  articleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/articles [post]
func (h *ArticleHandler) Submit(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req submitArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Submit(c.Request().Context(), principal, ports.SubmitArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Publisher:   req.Publisher,
		Tags:        req.Tags,
		Image:       req.Image,
		IsPremium:   req.IsPremium,
		AuthorName:  req.AuthorName,
		AuthorImage: req.AuthorImage,
	})
	if err != nil {
		return err
	}

	metrics.ArticlesSubmittedTotal.WithLabelValues(boolLabel(article.IsPremium)).Inc()
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Edit handles PUT /v1/articles/:id. Owner or admin; the article returns to
// pending for re-review.
//
// @Summary      Edit an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Article id"
// @Param        body  body      editArticleRequest  true  "Updated content"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/articles/{id} [put]
func (h *ArticleHandler) Edit(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req editArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.Edit(c.Request().Context(), principal, c.Param("id"), ports.EditArticleInput{
		Title:       req.Title,
		Description: req.Description,
		Publisher:   req.Publisher,
		Tags:        req.Tags,
		Image:       req.Image,
		IsPremium:   req.IsPremium,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "article updated"})
}

// Delete handles DELETE /v1/articles/:id.
//
// @Summary      Delete an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "article deleted"})
}

// Mine handles GET /v1/articles/mine — the caller's articles in any status.
//
// @Summary      List own articles
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   articleResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/articles/mine [get]
func (h *ArticleHandler) Mine(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	articles, err := h.service.ListByOwner(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Pending handles GET /v1/admin/articles — the moderation queue.
//
// @Summary      List pending articles
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   articleResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/articles [get]
func (h *ArticleHandler) Pending(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	articles, err := h.service.ListPending(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toArticleListResponse(articles))
}

// Approve handles POST /v1/admin/articles/:id/approve. Idempotent: approving
// an already-approved article succeeds without effect.
//
// @Summary      Approve a pending article
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Article id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/admin/articles/{id}/approve [post]
func (h *ArticleHandler) Approve(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Approve(c.Request().Context(), principal, c.Param("id")); err != nil {
		return err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues("approved").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "article approved"})
}

// Decline handles POST /v1/admin/articles/:id/decline. A non-empty reason is
// mandatory.
//
// @Summary      Decline a pending article
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Article id"
// @Param        body  body      declineArticleRequest  true  "Decline reason"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/articles/{id}/decline [post]
func (h *ArticleHandler) Decline(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req declineArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.Decline(c.Request().Context(), principal, c.Param("id"), req.Reason); err != nil {
		return err
	}

	metrics.ModerationDecisionsTotal.WithLabelValues("declined").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "article declined"})
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
