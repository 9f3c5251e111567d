package ui

import "strings"

func joinBasePath(basePath, suffix string) string {
	base := strings.TrimSpace(basePath)
	if base == "" {
		base = "/admin"
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	if base == "/" {
		return suffix
	}
	return strings.TrimRight(base, "/") + suffix
}

// CamerasPath returns the cameras page path under basePath.
func CamerasPath(basePath string) string {
	return joinBasePath(basePath, "/visitors/camera/")
}
