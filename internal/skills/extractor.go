// Package skills performs keyword-based skill extraction from resume text.
// Matching is a fixed-vocabulary scan, not language understanding: a
// detected "Skills" section is preferred, with a whole-document fallback.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

// vocabulary is the closed set of recognized skill names, all lowercase.
var vocabulary = []string{
	"c", "c++", "c#", "java", "javascript", "typescript", "python",
	"golang", "rust", "kotlin", "swift", "php", "ruby", "scala", "perl",
	"html", "css", "sql", "mysql", "postgresql", "mongodb", "redis",
	"sqlite", "oracle", "node", "node.js", "react", "angular", "vue",
	"express", "django", "flask", "spring", "spring boot", "hibernate",
	"laravel", "jquery", "bootstrap", "tailwind", "aws", "azure", "gcp",
	"docker", "kubernetes", "jenkins", "terraform", "ansible", "git",
	"github", "gitlab", "linux", "bash", "kafka", "rabbitmq", "graphql",
	"grpc", "rest api", "hadoop", "spark", "tensorflow", "pytorch",
	"pandas", "numpy", "machine learning", "deep learning",
	"data structures", "algorithms",
}

// sectionHeadingRe matches a skills-section heading followed by a colon or
// dash, capturing any skills listed on the heading line itself.
var sectionHeadingRe = regexp.MustCompile(
	`(?im)^[ \t]*(?:skills|technical skills|key skills|core competencies|technologies|proficiencies)[ \t]*[:\-][ \t]*(.*)$`)

// nextHeadingRe detects a capitalized heading line that terminates the
// captured skills span.
var nextHeadingRe = regexp.MustCompile(`^[A-Z][A-Za-z &/]{2,}:?$`)

// tokenSplitRe breaks a skills span into candidate tokens on commas,
// semicolons, newlines, bullet markers, and the word "and".
var tokenSplitRe = regexp.MustCompile(`[,;\n•·▪|]|\band\b`)

// wordPatterns holds one boundary-aware pattern per vocabulary entry.
// \b cannot serve as the boundary because entries like "c++" and "c#" end
// in non-word characters.
var wordPatterns = buildWordPatterns()

func buildWordPatterns() map[string]*regexp.Regexp {
	patterns := make(map[string]*regexp.Regexp, len(vocabulary))
	for _, entry := range vocabulary {
		patterns[entry] = regexp.MustCompile(
			`(?i)(^|[^a-z0-9+#.])` + regexp.QuoteMeta(entry) + `($|[^a-z0-9+#.])`)
	}
	return patterns
}

// Extract returns the lowercased, deduplicated skills recognized in text,
// sorted for stable output. It never fails: unparseable input simply
// yields an empty result.
func Extract(text string) []string {
	matched := make(map[string]bool)

	if span, ok := skillsSection(text); ok {
		for _, token := range splitTokens(span) {
			for _, entry := range vocabulary {
				if wordPatterns[entry].MatchString(token) {
					matched[entry] = true
				}
			}
		}
	}

	// No section, or a section that yielded nothing: scan the whole
	// document for each vocabulary entry as a whole word.
	if len(matched) == 0 {
		for _, entry := range vocabulary {
			if wordPatterns[entry].MatchString(text) {
				matched[entry] = true
			}
		}
	}

	suppressNarrower(matched)

	result := make([]string, 0, len(matched))
	for entry := range matched {
		result = append(result, entry)
	}
	sort.Strings(result)
	return result
}

// skillsSection locates a skills heading and captures the span from it up
// to the next blank line or capitalized heading.
func skillsSection(text string) (string, bool) {
	loc := sectionHeadingRe.FindStringSubmatchIndex(text)
	if loc == nil {
		return "", false
	}

	var span strings.Builder
	// Inline skills on the heading line itself ("Skills: Java, Python").
	span.WriteString(text[loc[2]:loc[3]])

	// loc[1] sits on the newline terminating the heading line; skip it so
	// the first listed line is not read as an empty span terminator.
	rest := strings.TrimPrefix(text[loc[1]:], "\n")
	for _, line := range strings.Split(rest, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || nextHeadingRe.MatchString(trimmed) {
			break
		}
		span.WriteString("\n")
		span.WriteString(trimmed)
	}
	return span.String(), true
}

// splitTokens lowercases the span and splits it into trimmed candidate
// tokens, dropping bullet prefixes and empties.
func splitTokens(span string) []string {
	parts := tokenSplitRe.Split(strings.ToLower(span), -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.Trim(strings.TrimSpace(part), "-*• \t")
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// suppressNarrower drops a matched entry when a longer matched entry
// extends it with a non-letter ("c" next to "c++" or "c#", "node" next to
// "node.js", "spring" next to "spring boot"): the narrower match is a
// shadow of the wider one, not an independent skill.
func suppressNarrower(matched map[string]bool) {
	for narrow := range matched {
		for wide := range matched {
			if len(wide) <= len(narrow) || !strings.HasPrefix(wide, narrow) {
				continue
			}
			next := wide[len(narrow)]
			if next < 'a' || next > 'z' {
				delete(matched, narrow)
				break
			}
		}
	}
}
