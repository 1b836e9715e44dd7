package generator

import (
	"io"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"
)

var reEndRaw = regexp.MustCompile(`\{%[-+]?\s*endraw\s*[-+]?%\}`)

// jinjaLoader feeds every template through jinjaSource before pongo2 parses
// it, so included templates get the same whitespace handling.
type jinjaLoader struct {
	pongo2.TemplateLoader
}

func (l jinjaLoader) Get(path string) (io.Reader, error) {
	r, err := l.TemplateLoader.Get(path)
	if err != nil {
		return nil, err
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return strings.NewReader(jinjaSource(string(buf))), nil
}

// jinjaSource applies the Jinja environment settings the templates are
// written for (lstrip_blocks, trim_blocks, no trailing newline) to src:
//
//   - line endings become \n and a single trailing newline is dropped;
//   - spaces and tabs between the start of a line and a {% or {# tag are
//     removed, unless the tag opens with {%+;
//   - the newline right after a %} or #} is removed, unless the tag closes
//     with +%};
//   - comments are removed;
//   - {% raw %} sections become pongo2 verbatim sections.
//
// {{ }} expressions and {%- -%} markers are passed to pongo2 untouched.
// Unterminated tags are copied as they are so that pongo2 reports them.
func jinjaSource(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.TrimSuffix(src, "\n")

	out := make([]byte, 0, len(src))
	raw := false
	i := 0
	for i < len(src) {
		if raw {
			loc := reEndRaw.FindStringIndex(src[i:])
			if loc == nil {
				out = append(out, src[i:]...)
				break
			}
			out = append(out, src[i:i+loc[0]]...)
			i += loc[0]
			raw = false
			continue
		}

		rest := src[i:]
		switch {
		case strings.HasPrefix(rest, "{{"):
			end := strings.Index(rest[2:], "}}")
			if end < 0 {
				return string(append(out, rest...))
			}
			out = append(out, rest[:end+4]...)
			i += end + 4

		case strings.HasPrefix(rest, "{%"), strings.HasPrefix(rest, "{#"):
			comment := rest[1] == '#'
			closer := "%}"
			if comment {
				closer = "#}"
			}
			end := strings.Index(rest[2:], closer)
			if end < 0 {
				return string(append(out, rest...))
			}
			body := rest[2 : end+2]
			i += end + 4

			if strings.HasPrefix(body, "+") {
				body = body[1:]
			} else {
				out = lstripLine(out)
			}
			keepNewline := strings.HasSuffix(body, "+")
			if keepNewline {
				body = body[:len(body)-1]
			}

			if comment {
				if strings.HasPrefix(body, "-") {
					out = []byte(strings.TrimRight(string(out), " \t\r\n"))
				}
				if strings.HasSuffix(body, "-") {
					for i < len(src) && strings.IndexByte(" \t\r\n", src[i]) >= 0 {
						i++
					}
					continue
				}
			} else {
				switch strings.TrimSpace(strings.Trim(body, "-")) {
				case "raw":
					body = strings.Replace(body, "raw", "verbatim", 1)
					raw = true
				case "endraw":
					body = strings.Replace(body, "endraw", "endverbatim", 1)
				}
				out = append(out, "{%"...)
				out = append(out, body...)
				out = append(out, "%}"...)
			}

			if !keepNewline && i < len(src) && src[i] == '\n' {
				i++
			}

		default:
			out = append(out, src[i])
			i++
		}
	}
	return string(out)
}

// lstripLine drops the spaces and tabs that follow the last newline of out,
// provided nothing else is on that line.
func lstripLine(out []byte) []byte {
	start := strings.LastIndexByte(string(out), '\n') + 1
	for _, c := range out[start:] {
		if c != ' ' && c != '\t' {
			return out
		}
	}
	return out[:start]
}
