// Package naming derives deterministic names for remote objects.
package naming

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"path"
	"strings"
)

// maxStackName is the ARM limit for deployment stack names.
const maxStackName = 90

// Checksum returns the full hex SHA1 digest of content.
func Checksum(content []byte) string {
	sum := sha1.Sum(content)
	return hex.EncodeToString(sum[:])
}

// ShortHash returns the hex SHA1 prefix of length n (clamped to digest size).
func ShortHash(s string, n int) string {
	h := Checksum([]byte(s))
	if n > len(h) {
		n = len(h)
	}
	return h[:n]
}

// NotebookFolder returns the checksum-addressed folder a notebook is uploaded to:
//
//	<folder>/<sha1(content)>
//
// Identical content always maps to the same folder.
func NotebookFolder(folder string, content []byte) string {
	return path.Join(folder, Checksum(content))
}

// NotebookPath returns <folder>/<sha1(content)>/<name>.
func NotebookPath(folder, name string, content []byte) string {
	return path.Join(NotebookFolder(folder, content), name)
}

// StackName returns the deployment stack name for a Spark workspace.
// Long names are truncated with a short hash suffix to stay unique.
func StackName(workspace string) string {
	name := "mlpipeops_" + workspace
	if len(name) <= maxStackName {
		return name
	}
	h := ShortHash(workspace, 6)
	return fmt.Sprintf("%s_%s", name[:maxStackName-len(h)-1], h)
}

// TokenComment returns the comment attached to access tokens issued for a build.
func TokenComment(buildID string) string {
	return "Azure ML Token generated by Build " + strings.TrimSpace(buildID)
}
