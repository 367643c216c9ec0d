package transport

import (
	"fmt"
	"net/http"
	"os"

	"github.com/alex-pricope/hackathon-judging-api/api/models"
	"github.com/alex-pricope/hackathon-judging-api/logging"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(ginMode string, registry *prometheus.Registry) *gin.Engine {
	gin.SetMode(ginMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware(), CORSMiddleware())
	if registry != nil {
		engine.Use(MetricsMiddleware(NewMetrics(registry)))
	}
	engine.Use(RecoveryMiddleware())

	// Tooling routes only exist when running outside Lambda
	if os.Getenv("APP_ENV") == "local" {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		if registry != nil {
			engine.GET("/metrics", MetricsHandler(registry))
		}
	}

	engine.NoRoute(NoRouteHandler())

	return engine
}

// CORSMiddleware sets the cross-origin headers on every response, errors included.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")

		if c.Request.Method == http.MethodOptions {
			logging.Log.Debugf("OPTIONS request received:%s", c.Request.URL.Path)
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"message": "OK"})
			return
		}

		c.Next()
	}
}

// RecoveryMiddleware turns a panicking handler into a 500 carrying only the panic message.
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		message := fmt.Sprint(recovered)
		if err, ok := recovered.(error); ok {
			message = err.Error()
		}
		logging.Log.WithField("request_id", RequestID(c)).Errorf("Recovered from panic on %s %s: %s", c.Request.Method, c.Request.URL.Path, message)
		c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{Error: message})
	})
}

func NoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logging.Log.Infof("No routed request received for:%s %s", c.Request.Method, c.Request.URL.Path)
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Not found"})
	}
}
