// Package frontmatter parses optional YAML frontmatter at the top of the
// markdown files ci reads, such as agent READMEs.
//
// Frontmatter is delimited by lines containing only "---". The YAML between
// the delimiters is decoded into the caller's type and the remaining text is
// returned as the body:
//
//	type readmeMeta struct {
//		Description string `yaml:"description"`
//	}
//
//	var meta readmeMeta
//	body, err := frontmatter.Parse(f, &meta)
//
// Both LF and CRLF line endings are accepted. Without a header, [Parse]
// treats the whole input as body; [Split] reports [ErrMissingFrontmatter].
package frontmatter
