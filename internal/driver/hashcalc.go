package driver

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"docsniff/internal/config"
	"docsniff/internal/version"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// combineDigest: H(content || settings). Порядок settings детерминированный.
func combineDigest(content Digest, settings ...string) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, s := range settings {
		_, _ = h.Write([]byte{0})
		_, _ = h.Write([]byte(s))
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// settingsFingerprint lists everything besides the content that changes the
// outcome of checking a file.
func settingsFingerprint(cfg *config.Config) []string {
	return []string{
		version.Version,
		cfg.SniffOptions().ParamSpacing.String(),
		strconv.FormatBool(cfg.WarningsAsErrors),
		strings.Join(cfg.Exclude, ","),
	}
}

// cacheKey addresses the cached result of one file version.
func cacheKey(contentHash [32]byte, cfg *config.Config) Digest {
	return combineDigest(Digest(contentHash), settingsFingerprint(cfg)...)
}
