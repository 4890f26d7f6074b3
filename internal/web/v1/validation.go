package v1

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// phonePattern: 1 followed by exactly 10 digits.
var phonePattern = regexp.MustCompile(`^1\d{10}$`)

// RegisterValidations installs the custom binding rules on gin's validator
// engine. Call once at startup, before routes are served.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("cnphone", func(fl validator.FieldLevel) bool {
			return phonePattern.MatchString(fl.Field().String())
		})
	}
}

// queryInt64 reads an optional int64 query parameter. An absent parameter
// yields (nil, true); a malformed one yields (nil, false) after writing the
// 400 response.
func queryInt64(c *gin.Context, name string) (*int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid param"})
		return nil, false
	}
	return &v, true
}

// queryString reads an optional string query parameter, nil when absent.
func queryString(c *gin.Context, name string) *string {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	return &raw
}

// queryIntDefault reads an int query parameter, falling back to def when the
// parameter is absent or malformed.
func queryIntDefault(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
