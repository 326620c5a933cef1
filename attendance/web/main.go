package main

import (
	"encoding/base64"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	attcore "veritime.com/veritime/attendance/core"
	attendance "veritime.com/veritime/attendance/web/handlers"
	"veritime.com/veritime/core"
	"veritime.com/veritime/infrastructure/communication"
	"veritime.com/veritime/web/middlewares"
)

func main() {
	r := gin.Default()

	dsn := os.Getenv("DSN")
	dm, err := core.New(dsn, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	base64Secret := os.Getenv("VERITIME_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	var alerter attcore.Alerter
	if os.Getenv("SLACK_BOT_TOKEN") != "" {
		alerter = communication.ConnectSlack()
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	r.GET("/api/attendance/manifest/dev", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":     "1.0.0-dev",
			"description": "Veritime Attendance API Manifest for Development",
		})
	})

	protected := r.Group("/api/attendance/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			claims, _ := c.Get("claims")
			c.JSON(200, gin.H{
				"claims": claims,
			})
		})

		attendance.Register(protected, dm, alerter)
	}

	r.Run("0.0.0.0:8090")
}
