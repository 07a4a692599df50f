package handler

import (
	"errors"
	"net/http"
	"time"

	"shorturl-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShortLinkHandler 处理器
type ShortLinkHandler struct {
	shortener       *service.ShortenService
	redirects       *service.RedirectService
	stats           *service.StatsService
	defaultValidity float64
	logger          *zap.SugaredLogger
	now             func() time.Time
}

// NewShortLinkHandler 创建处理器实例，defaultValidity 为未指定有效期时使用的分钟数
func NewShortLinkHandler(
	shortener *service.ShortenService,
	redirects *service.RedirectService,
	stats *service.StatsService,
	defaultValidity int,
	logger *zap.SugaredLogger,
) *ShortLinkHandler {
	if defaultValidity <= 0 {
		defaultValidity = service.DefaultValidityMinutes
	}
	return &ShortLinkHandler{
		shortener:       shortener,
		redirects:       redirects,
		stats:           stats,
		defaultValidity: float64(defaultValidity),
		logger:          logger,
		now:             time.Now,
	}
}

// NewEngine 创建 gin 引擎
// 只有 trustedProxies 内的代理转发的 X-Forwarded-For 才会被采信，为空时客户端地址取连接地址
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(trustedProxies); err != nil {
		return nil, err
	}
	return router, nil
}

// RegisterRoutes 注册全部路由
func (h *ShortLinkHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.IndexPage)
	router.GET("/health", h.HealthCheck)
	router.POST("/shorturls", h.CreateShortURL)
	router.GET("/shorturls/:shortcode", h.GetStats)
	router.GET("/:shortcode", h.RedirectToOriginal)
}

// IndexPage godoc
// @Summary 服务状态
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *ShortLinkHandler) IndexPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "URL Shortener Service is running!"})
}

// HealthCheck godoc
// @Summary 健康检查
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *ShortLinkHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": h.now().UTC()})
}

// CreateShortURLRequest 创建短链接请求
// validity 单位为分钟，可以是小数，省略时使用配置的默认有效期
type CreateShortURLRequest struct {
	URL       string   `json:"url" binding:"required,url" example:"https://github.com/gin-gonic/gin"`
	Validity  *float64 `json:"validity,omitempty" example:"30"`
	Shortcode string   `json:"shortcode,omitempty" binding:"omitempty,alphanum,max=64" example:"mycode"`
}

// CreateShortURL godoc
// @Summary 创建短链接
// @Description 为一个长 URL 创建短链接，可指定有效期（分钟）和自定义短码
// @Tags ShortURL
// @Accept json
// @Produce json
// @Param request body CreateShortURLRequest true "长链接"
// @Success 201 {object} service.CreateResult
// @Failure 400 {object} map[string]string "请求无效"
// @Failure 409 {object} map[string]string "短码已存在"
// @Failure 503 {object} map[string]string "无法生成短码"
// @Failure 500 {object} map[string]string "服务器内部错误"
// @Router /shorturls [post]
func (h *ShortLinkHandler) CreateShortURL(c *gin.Context) {
	var req CreateShortURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求数据: " + err.Error()})
		return
	}

	validity := h.defaultValidity
	if req.Validity != nil {
		validity = *req.Validity
	}

	result, err := h.shortener.Create(c.Request.Context(), service.CreateRequest{
		OriginalURL:     req.URL,
		ValidityMinutes: validity,
		CustomShortcode: req.Shortcode,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetStats godoc
// @Summary 短链接统计
// @Description 返回短链接信息和点击记录（最近的在前）
// @Tags ShortURL
// @Produce json
// @Param shortcode path string true "短码"
// @Success 200 {object} service.Stats
// @Failure 404 {object} map[string]string "短码不存在"
// @Failure 500 {object} map[string]string "服务器内部错误"
// @Router /shorturls/{shortcode} [get]
func (h *ShortLinkHandler) GetStats(c *gin.Context) {
	stats, err := h.stats.GetStats(c.Request.Context(), c.Param("shortcode"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RedirectToOriginal godoc
// @Summary 跳转到原始链接
// @Description 记录点击后 302 跳转；过期返回 410，过期访问不计入点击
// @Tags ShortURL
// @Param shortcode path string true "短码"
// @Success 302
// @Failure 404 {object} map[string]string "短码不存在"
// @Failure 410 {object} map[string]string "短链接已过期"
// @Router /{shortcode} [get]
func (h *ShortLinkHandler) RedirectToOriginal(c *gin.Context) {
	code := c.Param("shortcode")
	ctx := c.Request.Context()

	link, err := h.redirects.Resolve(ctx, code)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if link.IsExpired(h.now()) {
		c.JSON(http.StatusGone, gin.H{"error": "Short URL has expired"})
		return
	}

	err = h.redirects.RecordClick(ctx, service.ClickInput{
		Shortcode: code,
		Referrer:  c.Request.Referer(),
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Redirect(http.StatusFound, link.OriginalURL)
}

// respondError 把服务层错误映射为 HTTP 状态码
func (h *ShortLinkHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidValidity), errors.Is(err, service.ErrInvalidShortcode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Short URL not found"})
	case errors.Is(err, service.ErrShortcodeConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Shortcode already exists"})
	case errors.Is(err, service.ErrGenerationExhausted):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not generate a unique shortcode, please retry"})
	default:
		h.logger.Errorw("请求处理失败", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
