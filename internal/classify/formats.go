package classify

import "regexp"

// formatSpec describes one known format: its identity, file metadata, and the
// signal sets used by the weighted scoring pass. Strong signals are structural
// constructs that rarely appear outside the format; patterns are weaker,
// frequent idioms.
type formatSpec struct {
	Name      string
	Extension string
	MIME      string
	Weight    float64
	Strong    []*regexp.Regexp
	Patterns  []*regexp.Regexp
}

// formats is the registry the scoring pass iterates. Order is significant:
// ties are broken by first registration.
var formats = []formatSpec{
	{
		Name: "json", Extension: "json", MIME: "application/json", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`"[^"]+"\s*:\s*["{\[\d]`),
			regexp.MustCompile(`^\s*[{\[]`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(true|false|null)\b`),
			regexp.MustCompile(`},\s*{`),
		},
	},
	{
		Name: "xml", Extension: "xml", MIME: "application/xml", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`^\s*<\?xml`),
			regexp.MustCompile(`</[A-Za-z][\w.-]*>`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`<[A-Za-z][\w.-]*(\s[^<>]*)?/>`),
			regexp.MustCompile(`\sxmlns(:\w+)?=`),
		},
	},
	{
		Name: "html", Extension: "html", MIME: "text/html", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?i)<!doctype\s+html`),
			regexp.MustCompile(`(?i)<(html|head|body|div|span|script)\b`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)</(div|span|p|a|li|ul|table)>`),
			regexp.MustCompile(`(?i)\s(class|href|src)="[^"]*"`),
		},
	},
	{
		Name: "markdown", Extension: "md", MIME: "text/markdown", Weight: 0.9,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^#{1,6}\s+\S`),
			regexp.MustCompile("(?m)^```"),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\[[^\]]+\]\([^)]+\)`),
			regexp.MustCompile(`(?m)^>\s+\S`),
			regexp.MustCompile(`(?m)^[-*]\s+\S`),
		},
	},
	{
		Name: "css", Extension: "css", MIME: "text/css", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`[.#]?[\w-]+\s*\{[^}]*:[^}]*\}`),
			regexp.MustCompile(`@(media|import|keyframes|font-face)\b`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`[\w-]+\s*:\s*[^;{}]+;`),
			regexp.MustCompile(`!important\b`),
		},
	},
	{
		Name: "javascript", Extension: "js", MIME: "text/javascript", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`\bfunction\s+\w+\s*\(`),
			regexp.MustCompile(`\b(const|let|var)\s+\w+\s*=`),
			regexp.MustCompile(`=>\s*[{(]?`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bconsole\.(log|error|warn)\(`),
			regexp.MustCompile(`\brequire\s*\(`),
			regexp.MustCompile(`\bexport\s+(default|const|function|class)\b`),
			regexp.MustCompile(`\bdocument\.\w+`),
		},
	},
	{
		Name: "typescript", Extension: "ts", MIME: "text/typescript", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`\binterface\s+\w+\s*\{`),
			regexp.MustCompile(`:\s*(string|number|boolean|void|any)\b`),
			regexp.MustCompile(`\btype\s+\w+\s*=`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\benum\s+\w+`),
			regexp.MustCompile(`\breadonly\s+\w+`),
			regexp.MustCompile(`\bimplements\s+\w+`),
		},
	},
	{
		Name: "python", Extension: "py", MIME: "text/x-python", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(.*\)\s*:`),
			regexp.MustCompile(`(?m)^\s*class\s+\w+(\(.*\))?\s*:`),
			regexp.MustCompile(`(?m)^from\s+[\w.]+\s+import\b`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^import\s+[\w.]+`),
			regexp.MustCompile(`\bself\.`),
			regexp.MustCompile(`(?m)^\s*(elif|except)\b`),
			regexp.MustCompile(`\bprint\(`),
		},
	},
	{
		Name: "go", Extension: "go", MIME: "text/x-go", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^package\s+\w+$`),
			regexp.MustCompile(`(?m)^func\s+(\(\w+\s+\*?[\w.]+\)\s+)?\w+\s*\(`),
			regexp.MustCompile(`:=`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^import\s+\(`),
			regexp.MustCompile(`\b(defer|chan|goroutine)\b`),
			regexp.MustCompile(`\bif\s+err\s*!=\s*nil\b`),
			regexp.MustCompile(`\bgo\s+func\b`),
		},
	},
	{
		Name: "rust", Extension: "rs", MIME: "text/x-rust", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`\bfn\s+\w+\s*\(`),
			regexp.MustCompile(`\blet\s+mut\s+\w+`),
			regexp.MustCompile(`\bimpl(\s*<[^>]*>)?\s+\w+`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\w+::\w+`),
			regexp.MustCompile(`\bmatch\s+\w+\s*\{`),
			regexp.MustCompile(`println!\s*\(`),
			regexp.MustCompile(`#\[derive\(`),
		},
	},
	{
		Name: "java", Extension: "java", MIME: "text/x-java", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`\bpublic\s+(final\s+)?(class|interface|enum)\s+\w+`),
			regexp.MustCompile(`\bpublic\s+static\s+void\s+main\b`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bprivate\s+\w+(<[^>]*>)?\s+\w+\s*;`),
			regexp.MustCompile(`System\.out\.print`),
			regexp.MustCompile(`@(Override|Autowired|Test)\b`),
		},
	},
	{
		Name: "csharp", Extension: "cs", MIME: "text/x-csharp", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`\bnamespace\s+[\w.]+`),
			regexp.MustCompile(`(?m)^using\s+System[\w.]*\s*;`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpublic\s+(sealed\s+|partial\s+)?class\b`),
			regexp.MustCompile(`Console\.Write`),
			regexp.MustCompile(`\basync\s+Task\b`),
		},
	},
	{
		Name: "cpp", Extension: "cpp", MIME: "text/x-c++", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^#include\s*[<"][^>"]+[>"]`),
			regexp.MustCompile(`\bstd::\w+`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bcout\s*<<`),
			regexp.MustCompile(`\btemplate\s*<`),
			regexp.MustCompile(`\b(nullptr|constexpr)\b`),
		},
	},
	{
		Name: "php", Extension: "php", MIME: "application/x-php", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`<\?php`),
			regexp.MustCompile(`\$\w+\s*=`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\becho\s+`),
			regexp.MustCompile(`->\w+\(`),
			regexp.MustCompile(`\bfunction\s+\w+\s*\(`),
		},
	},
	{
		Name: "ruby", Extension: "rb", MIME: "text/x-ruby", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+\w+[!?]?\s*(\(|$)`),
			regexp.MustCompile(`(?m)^\s*end\s*$`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bputs\s+`),
			regexp.MustCompile(`\brequire\s+['"]`),
			regexp.MustCompile(`\.each\s+do\s*\|`),
			regexp.MustCompile(`@\w+\s*=`),
		},
	},
	{
		Name: "shell", Extension: "sh", MIME: "application/x-sh", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^#!/(usr/)?bin/(env\s+)?(ba|z)?sh`),
			regexp.MustCompile(`(?m)^\s*(fi|esac|done)\s*$`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`\$\{?\w+`),
			regexp.MustCompile(`(?m)^\s*if\s+\[\[?\s`),
			regexp.MustCompile(`\|\s*grep\b`),
		},
	},
	{
		Name: "sql", Extension: "sql", MIME: "application/sql", Weight: 1.0,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?is)\bselect\s+.+?\s+from\s+\w+`),
			regexp.MustCompile(`(?i)\bcreate\s+(table|index|view)\b`),
			regexp.MustCompile(`(?i)\binsert\s+into\b`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bwhere\s+\w+`),
			regexp.MustCompile(`(?i)\b(inner|left|right)\s+join\b`),
			regexp.MustCompile(`(?i)\bgroup\s+by\b`),
		},
	},
	{
		Name: "yaml", Extension: "yaml", MIME: "application/yaml", Weight: 0.7,
		Strong: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^---\s*$`),
			regexp.MustCompile(`(?m)^[\w-]+:\s+\S`),
		},
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s+-\s+\S`),
			regexp.MustCompile(`(?m)^\s+[\w-]+:\s`),
		},
	},
}

// fenceAliases maps fenced-code-block language hints to format names.
var fenceAliases = map[string]string{
	"json": "json", "xml": "xml", "html": "html", "htm": "html",
	"markdown": "markdown", "md": "markdown", "css": "css",
	"javascript": "javascript", "js": "javascript", "jsx": "javascript",
	"typescript": "typescript", "ts": "typescript", "tsx": "typescript",
	"python": "python", "py": "python", "go": "go", "golang": "go",
	"rust": "rust", "rs": "rust", "java": "java",
	"csharp": "csharp", "cs": "csharp", "c#": "csharp",
	"cpp": "cpp", "c++": "cpp", "c": "cpp",
	"php": "php", "ruby": "ruby", "rb": "ruby",
	"shell": "shell", "sh": "shell", "bash": "shell", "zsh": "shell",
	"sql": "sql", "yaml": "yaml", "yml": "yaml",
	"text": "text", "txt": "text", "plaintext": "text",
}

// fallbackMIME is used for formats without a MIME mapping.
const fallbackMIME = "text/plain"

// ExtensionOf returns the canonical file extension for a format,
// or "txt" for unknown formats.
func ExtensionOf(format string) string {
	for _, f := range formats {
		if f.Name == format {
			return f.Extension
		}
	}
	return "txt"
}

// MIMEOf returns the MIME type for a format, or text/plain for unknown
// formats (including "text" itself).
func MIMEOf(format string) string {
	for _, f := range formats {
		if f.Name == format {
			return f.MIME
		}
	}
	return fallbackMIME
}

// Known reports whether format is a registered format name or "text".
func Known(format string) bool {
	if format == "text" {
		return true
	}
	for _, f := range formats {
		if f.Name == format {
			return true
		}
	}
	return false
}
