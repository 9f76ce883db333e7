package xlsx

import (
	"path"
	"strings"
)

// resolveTarget turns a workbook relationship target into an archive entry
// name. Archive names always use forward slashes, so this works on the
// target with package path, never path/filepath.
func resolveTarget(target string) string {
	target = strings.ReplaceAll(target, `\`, "/")

	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}

	return path.Join("xl", target)
}
