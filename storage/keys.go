package storage

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gosimple/slug"
)

const (
	// EvidencePrefix holds uploaded proof for validation requests.
	EvidencePrefix = "realtime/prove"
	// ProfilePrefix holds member profile pictures.
	ProfilePrefix = "realtime/profile"
	// TrophyPrefix holds images of admin-created trophies.
	TrophyPrefix = "trophies"
)

// NewObjectKey builds a random object key under prefix, keeping the original
// file extension.
func NewObjectKey(prefix, originalName string) string {
	return fmt.Sprintf("%s/%s%s", prefix, randomHex(8), normalizedExt(originalName))
}

// TrophyImageKey builds an object key for a trophy image, slugged from the
// trophy name so the bucket stays browsable.
func TrophyImageKey(trophyName, originalName string) string {
	return fmt.Sprintf("%s/%s-%s%s", TrophyPrefix, slug.Make(trophyName), randomHex(4), normalizedExt(originalName))
}

func normalizedExt(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

func randomHex(n int) string {
	buf := make([]byte, n)
	// rand.Read only fails when the OS entropy source is broken.
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
