// Package assets provides the markup templates used to compose resumes.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	Loader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in templates)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in templates (default, modern,
// professional, creative, minimal) embedded at compile time.
//
// FilesystemLoader lets deployments override or add templates from a
// directory, with path traversal protection and symlink resolution.
//
// Resolver is the loader used by the template registry. It tries the custom
// FilesystemLoader first and falls back to EmbeddedLoader when the template
// is not found there.
//
// # Directory Structure
//
//	{basePath}/
//	└── {name}.md.tmpl    # text/template producing Markdown with YAML front matter
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// ContainedPath joins a relative path to a base directory and rejects any
// result that escapes it; the font resolver uses it for font assets too.
package assets
