package templater

import (
	"fmt"
	"os"
	"regexp"

	"phd/internal/ports"
)

var _ ports.Templater = (*ManifestTemplater)(nil)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// ManifestTemplater substitutes {{ VAR }} placeholders. Existing manifests
// omit optional variables, so an undefined variable renders as an empty
// string with a warning rather than failing the render.
type ManifestTemplater struct{}

func ProvideManifestTemplater() *ManifestTemplater {
	return &ManifestTemplater{}
}

func (t *ManifestTemplater) Render(text string, variables map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		key := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := variables[key]
		if !ok {
			fmt.Fprintf(os.Stderr, "WARN: template variable %q is not defined, rendering as empty\n", key)
			return ""
		}
		return value
	})
}
