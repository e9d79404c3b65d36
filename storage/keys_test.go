package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewObjectKey(t *testing.T) {
	key := NewObjectKey(EvidencePrefix, "Bewijs Foto.JPG")

	assert.True(t, strings.HasPrefix(key, "realtime/prove/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"), "extension is kept and lowercased")
	// prefix + slash + 16 hex chars + extension
	assert.Len(t, key, len(EvidencePrefix)+1+16+len(".jpg"))

	other := NewObjectKey(EvidencePrefix, "Bewijs Foto.JPG")
	assert.NotEqual(t, key, other, "keys must not collide")
}

func TestNewObjectKeyWithoutExtension(t *testing.T) {
	key := NewObjectKey(ProfilePrefix, "rawupload")
	assert.True(t, strings.HasPrefix(key, "realtime/profile/"))
	assert.NotContains(t, key[len(ProfilePrefix)+1:], ".")
}

func TestTrophyImageKey(t *testing.T) {
	key := TrophyImageKey("Trek 3 bakken", "badge.WEBP")

	assert.True(t, strings.HasPrefix(key, "trophies/trek-3-bakken-"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
}
