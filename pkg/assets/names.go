package assets

import (
	"path"
	"strings"
)

// EntryName returns the stable file stem for a route's client bundle.
//
//	"/"           -> "index"
//	"/about"      -> "about"
//	"/blog/{id}"  -> "blog-id"
//	"/docs/*"     -> "docs-all"
func EntryName(route string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(route) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		case r == '*':
			if b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteString("all")
			dash = false
		default:
			dash = true
		}
	}
	if b.Len() == 0 {
		return "index"
	}
	return b.String()
}

// IsFingerprinted reports whether a file name carries a content hash in
// its second-to-last dot segment: hex ("app.a1b2c3d4.css") or esbuild's
// base32 ("index.5QIGZ5EU.js").
func IsFingerprinted(filePath string) bool {
	parts := strings.Split(path.Base(filePath), ".")
	if len(parts) < 3 {
		return false
	}

	hash := parts[len(parts)-2]
	if len(hash) < 8 {
		return false
	}
	return isHex(hash) || isBase32(hash)
}

func isHex(s string) bool {
	for _, c := range s {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}

// isBase32 matches the upper-case RFC 4648 alphabet esbuild uses for [hash].
func isBase32(s string) bool {
	for _, c := range s {
		if !((c >= 'A' && c <= 'Z') || (c >= '2' && c <= '7')) {
			return false
		}
	}
	return true
}
