package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-contact/internal/config"
)

func TestCorsConfig_AllowAll(t *testing.T) {
	c := corsConfig(config.Config{AllowedOrigins: "*"})
	require.True(t, c.AllowAllOrigins)
	require.Empty(t, c.AllowOrigins)
	require.NoError(t, c.Validate())
}

func TestCorsConfig_ExplicitOrigins(t *testing.T) {
	c := corsConfig(config.Config{AllowedOrigins: "https://antojoseph.dev,http://localhost:5173"})
	require.False(t, c.AllowAllOrigins)
	require.Equal(t, []string{"https://antojoseph.dev", "http://localhost:5173"}, c.AllowOrigins)
	require.Contains(t, c.ExposeHeaders, "X-Correlation-Id")
	require.NoError(t, c.Validate())
}
