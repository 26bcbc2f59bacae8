// internal/interfaces/http/response/response.go
package response

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/TechxExplorer/Pro-Shop/internal/config"
	"github.com/TechxExplorer/Pro-Shop/internal/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// Error is the single terminal error responder. Every handler failure flows
// through here and gets mapped to a status code and JSON body. Internal
// faults keep their message and stack out of the response unless the app
// runs in development mode.
func Error(c *gin.Context, cfg *config.Config, err error) {
	appErr := apperror.From(err)

	body := gin.H{
		"message": appErr.Message,
	}

	if appErr.Status == http.StatusInternalServerError && cfg.IsDevelopment() {
		if appErr.Err != nil {
			body["message"] = appErr.Err.Error()
		}
		body["stack"] = fmt.Sprintf("%s", debug.Stack())
	}

	c.AbortWithStatusJSON(appErr.Status, body)
}

// NotFoundHandler handles requests to unknown routes
func NotFoundHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"message": fmt.Sprintf("Not Found - %s", c.Request.URL.Path),
	})
}
