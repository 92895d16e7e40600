package scoring

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// skillCatalog lists the skills recognised in job descriptions.
var skillCatalog = []string{
	// languages
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "PHP", "Ruby",
	"Swift", "Kotlin", "Scala", "R", "SQL", "HTML", "CSS",
	// frameworks
	"React", "Angular", "Vue.js", "Node.js", "Express.js", "Django", "Flask", "FastAPI",
	"Spring Boot", ".NET", "Ruby on Rails", "Next.js",
	// cloud and delivery
	"AWS", "Azure", "Google Cloud", "GCP", "Docker", "Kubernetes", "Terraform", "Jenkins",
	"Git", "CI/CD",
	// databases
	"MySQL", "PostgreSQL", "MongoDB", "Redis", "Elasticsearch", "DynamoDB",
	// data
	"TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy", "Apache Spark", "Kafka",
	// practices
	"REST API", "GraphQL", "Agile", "Scrum",
}

// RequiredKeywords returns the catalogue skills mentioned in text, sorted
// case-insensitively.
func RequiredKeywords(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	lower := strings.ToLower(text)
	out := []string{}
	for _, skill := range skillCatalog {
		if mentions(lower, skill) {
			out = append(out, skill)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}

// MissingKeywords returns the keywords text does not mention, keeping input order.
func MissingKeywords(keywords []string, text string) []string {
	lower := strings.ToLower(text)
	out := []string{}
	for _, keyword := range keywords {
		if !mentions(lower, keyword) {
			out = append(out, keyword)
		}
	}
	return out
}

// mentions reports whether term occurs in lower as a whole word. A match must
// not be preceded or followed by a letter or digit, so "Java" does not match
// "javascript" while "C++" still matches "c++,".
func mentions(lower, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return false
	}
	for from := 0; from < len(lower); {
		idx := strings.Index(lower[from:], needle)
		if idx < 0 {
			return false
		}
		start := from + idx
		end := start + len(needle)
		if !wordRune(lastRune(lower[:start])) && !wordRune(firstRune(lower[end:])) {
			return true
		}
		_, size := utf8.DecodeRuneInString(lower[start:])
		from = start + size
	}
	return false
}

func wordRune(r rune) bool {
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func lastRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r
}

func firstRune(s string) rune {
	if s == "" {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
