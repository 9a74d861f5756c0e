package ingress

import "strings"

// Canonical logical path prefixes of the file-serving API.
const (
	APIFilePrefix   = "/api/file/"
	APIFolderPrefix = "/api/folder/"
	APIUploadPath   = "/api/upload"
)

// ResolveRelativePath computes the logical path of a relative link found
// inside the document at currentDocumentPath.
//
// The resolver always works on logical paths: a route-encoded current path is
// decoded first. The API prefix of the current document — including a
// token-qualified /api/hassio_ingress/<token>/api/file/ prefix — is stripped
// before resolution and re-attached to the result, so the ingress base
// survives navigation. "../" chains clamp at the repository root instead of
// underflowing. Pure; no I/O.
func ResolveRelativePath(relativeLink, currentDocumentPath string) string {
	if decoded, ok := DecodeRoute(currentDocumentPath); ok {
		currentDocumentPath = decoded
	}

	prefix, rest := splitAPIPrefix(currentDocumentPath)

	// Drop the file name to get the current directory's segments.
	var dir []string
	if i := strings.LastIndexByte(rest, '/'); i >= 0 {
		dir = strings.Split(rest[:i], "/")
	}

	target := strings.TrimPrefix(relativeLink, "./")
	for strings.HasPrefix(target, "../") {
		target = target[len("../"):]
		if len(dir) > 0 {
			dir = dir[:len(dir)-1]
		}
	}

	if len(dir) == 0 {
		return prefix + target
	}
	return prefix + strings.Join(dir, "/") + "/" + target
}

// splitAPIPrefix separates the API prefix (with any ingress token prefix in
// front of it) from the document's relative path.
func splitAPIPrefix(p string) (prefix, rest string) {
	if i := strings.Index(p, APIFilePrefix); i >= 0 {
		return p[:i+len(APIFilePrefix)], p[i+len(APIFilePrefix):]
	}
	if i := strings.Index(p, APIFolderPrefix); i >= 0 {
		return p[:i+len(APIFolderPrefix)], p[i+len(APIFolderPrefix):]
	}
	return "", strings.TrimPrefix(p, "/")
}
