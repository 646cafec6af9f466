package ports

// Templater substitutes {{ VAR }} placeholders in manifest and template
// text. Undefined variables render as empty strings; the adapter warns on
// stderr instead of failing, since existing manifests rely on omitting
// optional variables.
type Templater interface {
	Render(text string, variables map[string]string) string
}
