package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// setCORSHeaders marks the browser-facing payment endpoints callable from any
// storefront origin. The checkout frontend and the API are served from
// different hosts in every deployment.
func setCORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, x-publishable-api-key")
}

// HandlePreflight answers CORS preflight requests for the payment endpoints.
func HandlePreflight(c *gin.Context) {
	setCORSHeaders(c)
	c.Status(http.StatusNoContent)
}
