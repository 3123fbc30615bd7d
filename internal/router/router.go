package router

import (
	"net/http"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"

	"cognicare-go/internal/config"
	"cognicare-go/internal/handlers"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func errorHandler(c *gin.Context, info ratelimit.Info) {
	c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
}

// Setup wires the middleware stack and routes.
func Setup(log *zap.Logger, session *handlers.SessionHandler, reportH *handlers.ReportHandler, identity *handlers.IdentityHandler) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	store := cookie.NewStore([]byte(config.Conf.Server.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 7,
	})
	router.Use(sessions.Sessions("cognicare_session", store))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
		c.Next()
	})

	// Per-IP limit on the chatty session-event routes; one tick per
	// second per active game leaves plenty of headroom.
	limiter := ratelimit.RateLimiter(ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Second,
		Limit: 30,
	}), &ratelimit.Options{
		ErrorHandler: errorHandler,
		KeyFunc:      keyFunc,
	})

	api := router.Group("/api")
	{
		api.POST("/identity", identity.Identify)
		api.DELETE("/identity", identity.Forget)

		api.POST("/games/:domain/sessions", session.CreateSession)

		sess := api.Group("/sessions", limiter)
		{
			sess.GET("/:id", session.Get)
			sess.POST("/:id/arm", session.Arm)
			sess.POST("/:id/start", session.Start)
			sess.POST("/:id/tick", session.Tick)
			sess.POST("/:id/move", session.Move)
			sess.POST("/:id/hint", session.Hint)
			sess.POST("/:id/submit", session.Submit)
			sess.POST("/:id/retry", session.Retry)
			sess.POST("/:id/advance", session.Advance)
			sess.DELETE("/:id", session.Exit)
		}

		api.GET("/report", reportH.ShowReport)
	}

	return router
}
