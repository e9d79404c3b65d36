package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdminEmail(t *testing.T) {
	cfg := &Config{AdminEmails: "boss@club.nl, tweede@club.nl"}

	assert.True(t, cfg.IsAdminEmail("boss@club.nl"))
	assert.True(t, cfg.IsAdminEmail("tweede@club.nl"), "spaces around entries are trimmed")
	assert.True(t, cfg.IsAdminEmail("BOSS@club.NL"), "matching is case-insensitive")
	assert.False(t, cfg.IsAdminEmail("lid@club.nl"))
	assert.False(t, cfg.IsAdminEmail(""))
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		AdminEmails:          "boss@club.nl",
		PageSize:             5,
		EvidenceMaxBytes:     1,
		ProfileImageMaxBytes: 1,
	}
	assert.NoError(t, cfg.Validate())

	cfg.AdminEmails = "  "
	assert.Error(t, cfg.Validate())

	cfg.AdminEmails = "boss@club.nl"
	cfg.PageSize = 0
	assert.Error(t, cfg.Validate())
}
