package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// NewEngine returns a bare gin engine that only honours X-Forwarded-For from
// trustedProxies. With none, ClientIP is the TCP peer.
func NewEngine(trustedProxies []string) (*gin.Engine, error) {
	r := gin.New()
	if len(trustedProxies) == 0 {
		trustedProxies = nil
	}
	if err := r.SetTrustedProxies(trustedProxies); err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}
	return r, nil
}
