package gen

import (
	"path"
	"strings"
)

// Dialect generates the source of one target language.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Generate                             │
//	│  (Orchestration: incremental gate, file writing, report)    │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ uses
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Dialect                              │
//	│  (Interface: file layout and rendering of one language)     │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ implemented by
//	          ┌───────────────┼───────────────┬───────────────┐
//	          ▼               ▼               ▼               ▼
//	   ┌─────────────┐ ┌─────────────┐ ┌─────────────┐ ┌─────────────┐
//	   │    cpp      │ │   csharp    │ │    java     │ │   golang    │
//	   └─────────────┘ └─────────────┘ └─────────────┘ └─────────────┘
//
// Record dialects render their serialization methods through Serialize and
// a Fragments implementation, so every language shares one walk.
type Dialect interface {
	// Name returns the language name (e.g., "cpp", "java").
	Name() string
	// FileExtension returns the extension of generated files, with the dot.
	FileExtension() string
	// OutputPath returns the path of the generated file of t, relative to
	// the target directory and slash separated.
	OutputPath(t *Type) string
	// Generate renders the complete file of t, header included.
	Generate(t *Type) ([]byte, error)
}

// DefaultPath returns <subdir>/<Name><ext>.
func DefaultPath(t *Type, ext string) string {
	return path.Join(t.Subdir, t.Name+ext)
}

// Generated is the marker line of every generated header.
const Generated = "Code generated by podgen. DO NOT EDIT."

// HashMarker prefixes the content hash line of generated headers.
const HashMarker = "Hash: "

// Header returns the header lines of the generated file of t, without
// comment markers. The hash line is present when incremental generation
// is enabled. The template comment follows verbatim.
func Header(t *Type) []string {
	lines := []string{Generated, "Source: " + t.Label()}
	if t.Hash != "" && t.Config().HasFeature(FeatureIncremental.Name) {
		lines = append(lines, HashMarker+t.Hash)
	}
	if t.Comment != "" {
		lines = append(lines, "")
		lines = append(lines, strings.Split(strings.TrimRight(t.Comment, "\n"), "\n")...)
	}
	return lines
}

// LineComment renders header lines as // comments.
func LineComment(lines []string) string {
	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			b.WriteString("//\n")
			continue
		}
		b.WriteString("// ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// Indent prefixes every non-empty line of code.
func Indent(code, prefix string) string {
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// Block renders statements one per line, each indented by prefix.
func Block(stmts []string, prefix string) string {
	var b strings.Builder
	for _, s := range stmts {
		b.WriteString(Indent(s, prefix))
		b.WriteByte('\n')
	}
	return b.String()
}
