package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientIP_Key(t *testing.T) {
	clients, err := NewClientIP([]string{"10.0.0.0/8", "192.168.1.10"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		realIP     string
		expected   string
	}{
		{"untrusted peer ignores headers", "203.0.113.1:4000", "1.1.1.1", "2.2.2.2", "203.0.113.1"},
		{"no headers", "10.1.2.3:4000", "", "", "10.1.2.3"},
		{"trusted peer uses forwarded for", "10.1.2.3:4000", "198.51.100.4", "", "198.51.100.4"},
		{"spoofed left hop is skipped", "10.1.2.3:4000", "6.6.6.6, 198.51.100.4", "", "198.51.100.4"},
		{"trusted hops are walked past", "192.168.1.10:4000", "198.51.100.4, 10.9.9.9", "", "198.51.100.4"},
		{"real ip from trusted peer", "10.1.2.3:4000", "", "198.51.100.5", "198.51.100.5"},
		{"garbage hop falls back to peer", "10.1.2.3:4000", "not-an-ip", "", "10.1.2.3"},
		{"address without port", "203.0.113.9", "", "", "203.0.113.9"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			if tc.xff != "" {
				req.Header.Set("X-Forwarded-For", tc.xff)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}
			assert.Equal(t, tc.expected, clients.Key(req))
		})
	}
}

func TestClientIP_NilUsesPeer(t *testing.T) {
	var clients *ClientIP
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5000"
	req.Header.Set("X-Forwarded-For", "1.1.1.1")

	assert.Equal(t, "10.0.0.1", clients.Key(req))
}

func TestNewClientIP_Invalid(t *testing.T) {
	_, err := NewClientIP([]string{"proxy.local"})
	assert.Error(t, err)

	_, err = NewClientIP([]string{"10.0.0.0/33"})
	assert.Error(t, err)
}
