package query

import "strings"

// baseName returns the file name component of a path.
// Both separators are honoured because paths may come from a Windows host.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
