package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorCyan   = "\033[36m"
	colorWhite  = "\033[37m"
)

var skipPaths = map[string]struct{}{
	"/health": {},
}

// Logger logs one line per request with method, path, status, latency
// and the authenticated user when present.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if _, skip := skipPaths[path]; skip {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		latency := time.Since(start)
		userID := c.GetString("userID")

		line := ""
		line += methodColor(c.Request.Method) + c.Request.Method + colorReset + " "
		line += colorBlue + path + colorReset + " "
		line += statusColor(status) + strconv.Itoa(status) + colorReset

		if userID != "" {
			log.Printf("%s %v user=%s", line, latency, userID)
		} else {
			log.Printf("%s %v", line, latency)
		}
	}
}

func methodColor(method string) string {
	switch method {
	case "GET":
		return colorGreen
	case "POST":
		return colorBlue
	case "DELETE":
		return colorRed
	case "PATCH":
		return colorYellow
	default:
		return colorWhite
	}
}

func statusColor(status int) string {
	switch {
	case status >= 200 && status < 300:
		return colorGreen
	case status >= 400 && status < 500:
		return colorYellow
	case status >= 500:
		return colorRed
	default:
		return colorCyan
	}
}
