package langdetect

import (
	"context"
	"regexp"
	"strings"
)

type signature struct {
	re *regexp.Regexp

	// counts towards folding JavaScript into TypeScript
	typeScriptOnly bool
}

func sig(pattern string) signature {
	return signature{re: regexp.MustCompile(pattern)}
}

func tsSig(pattern string) signature {
	return signature{re: regexp.MustCompile(pattern), typeScriptOnly: true}
}

var signatures = map[Language][]signature{
	TypeScript: {
		tsSig(`:\s*(string|number|boolean|any|void|unknown|never|object)\b`),
		tsSig(`\binterface\s+\w+`),
		tsSig(`\btype\s+\w+\s*=`),
		tsSig(`\w<[A-Z]\w*(\s*,\s*[A-Z]\w*)*>`),
		tsSig(`\b(public|private|protected|readonly)\s+\w+\s*[:?]`),
	},
	JavaScript: {
		sig(`\b(const|let|var)\s+\w+\s*=`),
		sig(`\bfunction\s+\w+\s*\(`),
		sig(`=>`),
		sig(`\bmodule\.exports\b|\brequire\(\s*['"]`),
		sig(`\bconsole\.(log|error|warn)\(`),
		sig(`\b(document|window)\.`),
		sig(`(?m)^\s*export\s+(default\s+)?(const|function|class)\b`),
		sig(`(?m)^\s*import\s+.*\s+from\s+['"][^'"]+['"]`),
	},
	Python: {
		sig(`(?m)^\s*def\s+\w+\s*\(.*\)\s*(->\s*[\w\[\], .]+)?:\s*$`),
		sig(`(?m)^\s*(from\s+[\w.]+\s+import|import\s+[\w.]+\s*$)`),
		sig(`(?m)^\s*class\s+\w+(\(.*\))?\s*:\s*$`),
		sig(`(?m)^\s+pass\s*$`),
		sig(`\bprint\s*\(`),
		sig(`\bself\.\w+`),
		sig(`if\s+__name__\s*==\s*['"]__main__['"]`),
	},
	Java: {
		sig(`\bpublic\s+(final\s+)?(class|interface|enum)\s+\w+`),
		sig(`\b(public|private|protected)\s+(static\s+)?(void|int|String|boolean|long|double)\s+\w+\s*\(`),
		sig(`@(Override|Deprecated|SuppressWarnings)\b`),
		sig(`(?m)^\s*import\s+java\.`),
		sig(`(?m)^\s*package\s+[\w.]+;`),
		sig(`System\.out\.print`),
	},
	CSharp: {
		sig(`(?m)^\s*using\s+System`),
		sig(`\bnamespace\s+[\w.]+`),
		sig(`\b(public|private|protected|internal)\s+(static\s+)?(void|int|string|bool|long|double)\s+\w+\s*\(`),
		sig(`\bConsole\.(WriteLine|Write)\(`),
		sig(`\{\s*get;\s*(set;)?\s*\}`),
	},
	Go: {
		sig(`(?m)^package\s+\w+\s*$`),
		sig(`(?m)^func\s+(\(\w+\s+\*?\w+\)\s+)?\w+\s*\(`),
		sig(`(?m)^import\s*(\(|")`),
		sig(`\bfmt\.(Print|Println|Printf|Sprintf|Errorf)\(`),
		sig(`\w+\s*:=\s*`),
	},
	Ruby: {
		sig(`(?m)^\s*def\s+\w+[?!]?(\s*\(.*\))?\s*$`),
		sig(`(?m)^\s*module\s+[A-Z]\w*`),
		sig(`(?m)^\s*require(_relative)?\s+['"]`),
		sig(`\bputs\s+`),
		sig(`(?m)^\s*end\s*$`),
		sig(`\battr_(reader|writer|accessor)\b`),
	},
}

// regex scorer; deterministic and needs no provider
type PatternDetector struct{}

func NewPatternDetector() *PatternDetector {
	return &PatternDetector{}
}

func (d *PatternDetector) Detect(_ context.Context, code string) (Info, error) {
	return Classify(code), nil
}

// scores code against every language's signatures
func Classify(code string) Info {
	code = strings.TrimSpace(code)
	if code == "" {
		return Info{Language: Unknown}
	}

	scores := make(map[Language]int, len(Supported))
	typeScriptSpecific := false

	for _, lang := range Supported {
		for _, s := range signatures[lang] {
			if !s.re.MatchString(code) {
				continue
			}

			scores[lang]++

			if s.typeScriptOnly {
				typeScriptSpecific = true
			}
		}
	}

	// TypeScript is a superset of JavaScript
	if typeScriptSpecific {
		scores[TypeScript] += scores[JavaScript]
		scores[JavaScript] = 0
	} else {
		scores[TypeScript] = 0
	}

	best, bestScore, tied := Unknown, 0, false

	for _, lang := range Supported {
		switch score := scores[lang]; {
		case score > bestScore:
			best, bestScore, tied = lang, score, false
		case score == bestScore && score > 0:
			tied = true
		}
	}

	if bestScore == 0 || tied {
		return InfoFor(Unknown)
	}

	return InfoFor(best)
}
