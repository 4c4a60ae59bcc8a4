// Package pipeline turns composed resume markup into a PDF document.
//
// The stages run in order and are pure functions of their input:
//   - Markdown normalization (line endings, blank lines around blocks)
//   - Front matter parsing into a validated Style (fonts, sizes, accent color)
//   - Markdown parsing via Goldmark (strikethrough and linkify extensions)
//   - Layout on A4 pages with fpdf, breaking pages on overflow
//   - Serialization with a fixed creation date so output is byte-stable
//
// Font resolution happens before this package is called: Layout receives
// faces that are either embedded TrueType data or PDF core font names and
// never reads the filesystem.
package pipeline
