package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
)

// corsConfig reads CORS_ALLOWED_ORIGINS as a comma separated list. An empty
// value allows any origin.
func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AddAllowHeaders("Authorization")

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
