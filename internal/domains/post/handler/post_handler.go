package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"blog-api/internal/domains/post/model"
	"blog-api/internal/domains/post/service"
	"blog-api/internal/shared/middleware"
	"blog-api/internal/shared/response"
)

// PostHandler translates HTTP requests into blog post operations.
// It is stateless; every request stands alone.
type PostHandler struct {
	service service.ServiceInterface
}

func NewPostHandler(svc service.ServiceInterface) *PostHandler {
	return &PostHandler{service: svc}
}

// RegisterRoutes mounts the /posts resource on the given group
func (h *PostHandler) RegisterRoutes(rg *gin.RouterGroup) {
	posts := rg.Group("/posts")
	{
		posts.GET("", h.List)
		posts.POST("", h.Create)
		posts.GET("/:id", h.Get)
		posts.PUT("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /posts
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, model.ToListResponse(posts))
}

// ════════════════════════════════════════════════════════════════
// READ: Get - GET /posts/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.JSON(c, http.StatusOK, post.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /posts
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Create(c *gin.Context) {
	var req model.CreatePostRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	post, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+post.ID)
	response.JSON(c, http.StatusCreated, post.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /posts/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Update(c *gin.Context) {
	var req model.UpdatePostRequest
	if err := h.bindJSON(c, &req); err != nil {
		return
	}

	if err := h.service.Update(c.Request.Context(), c.Param("id"), &req); err != nil {
		h.handleError(c, err)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /posts/:id
// ════════════════════════════════════════════════════════════════

func (h *PostHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !deleted {
		h.handleError(c, model.ErrPostNotFound)
		return
	}

	response.NoContent(c)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

// bindJSON decodes the request body. Field rules are checked by the service.
// On failure the 400 response is already written.
func (h *PostHandler) bindJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "invalid request body")
		return err
	}
	return nil
}

// handleError maps domain errors to status codes. Storage detail is logged,
// never rendered.
func (h *PostHandler) handleError(c *gin.Context, err error) {
	status := model.ToHTTPStatus(err)

	if status == http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Bool("storage", errors.Is(err, model.ErrStorage)).
			Msg("blog post request failed")
		response.InternalServerError(c)
		return
	}

	response.Error(c, status, err.Error())
}
