package http

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractClientIP_RemoteAddrOnly(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.10:51234"

	ip := ExtractClientIP(req, nil)
	assert.Equal(t, "203.0.113.10", ip)
}

func TestExtractClientIP_UntrustedProxyHeadersIgnored(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.10:51234"
	req.Header.Set("X-Forwarded-For", "198.51.100.1")

	config := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	ip := ExtractClientIP(req, config)
	assert.Equal(t, "203.0.113.10", ip)
}

func TestExtractClientIP_TrustedProxyForwardedFor(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.5")

	config := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	ip := ExtractClientIP(req, config)
	assert.Equal(t, "198.51.100.1", ip)
}

func TestExtractClientIP_TrustedProxyRealIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:443"
	req.Header.Set("X-Real-IP", "198.51.100.7")

	config := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	ip := ExtractClientIP(req, config)
	assert.Equal(t, "198.51.100.7", ip)
}

func TestExtractClientIP_InvalidForwardedForSkipped(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.0.0.5:443"
	req.Header.Set("X-Forwarded-For", "not-an-ip, 198.51.100.9")

	config := &IPConfig{TrustedProxies: []string{"10.0.0.0/8"}}
	ip := ExtractClientIP(req, config)
	assert.Equal(t, "198.51.100.9", ip)
}
