package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// pathID validates the shape of a path identifier. Responds 400 and
// returns false on a malformed value.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid "+name)
		return "", false
	}
	return id, true
}

// pageParams reads page/limit query parameters; zero values fall back to
// the repository defaults.
func pageParams(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page"))
	limit, _ = strconv.Atoi(c.Query("limit"))
	return page, limit
}
