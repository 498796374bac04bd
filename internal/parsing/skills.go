package parsing

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// skillKeyword is one recognizable skill and the pattern that finds it in free text
type skillKeyword struct {
	name    string
	pattern *regexp.Regexp
}

func ci(pattern string) *regexp.Regexp { return regexp.MustCompile(`(?i)` + pattern) }
func cs(pattern string) *regexp.Regexp { return regexp.MustCompile(pattern) }

// skillKeywords are frequently seen skills. Short or ambiguous names are matched
// case-sensitively so ordinary English words do not count.
var skillKeywords = []skillKeyword{
	{"Go", cs(`(?m)(?:^|[,;|(:/•]\s*)Go(?:\s*(?:[,;|)/•]|$))|(?i:\bgolang\b)`)},
	{"Python", ci(`\bpython\b`)},
	{"Java", ci(`\bjava\b`)},
	{"JavaScript", ci(`\bjavascript\b|\bJS\b`)},
	{"TypeScript", ci(`\btypescript\b`)},
	{"C++", ci(`\bc\+\+|\bcpp\b`)},
	{"C#", ci(`\bc#|\bc sharp\b`)},
	{"Ruby", ci(`\bruby\b`)},
	{"PHP", cs(`\bPHP\b`)},
	{"Rust", cs(`\bRust\b`)},
	{"Kotlin", ci(`\bkotlin\b`)},
	{"Swift", cs(`\bSwift\b`)},
	{"SQL", cs(`\bSQL\b`)},
	{"PostgreSQL", ci(`\bpostgres(?:ql)?\b`)},
	{"MySQL", ci(`\bmysql\b`)},
	{"MongoDB", ci(`\bmongo(?:db)?\b`)},
	{"Redis", ci(`\bredis\b`)},
	{"AWS", ci(`\baws\b|\bamazon web services\b`)},
	{"Azure", cs(`\bAzure\b`)},
	{"Google Cloud", ci(`\bgcp\b|\bgoogle cloud\b`)},
	{"Docker", ci(`\bdocker\b`)},
	{"Kubernetes", ci(`\bkubernetes\b|\bk8s\b`)},
	{"Terraform", ci(`\bterraform\b`)},
	{"Linux", ci(`\blinux\b`)},
	{"Git", cs(`\bGit\b|\bGitHub\b|\bGitLab\b`)},
	{"React", cs(`\bReact(?:\.js|JS)?\b`)},
	{"Angular", cs(`\bAngular\b`)},
	{"Vue", ci(`\bvue(?:\.js)?\b`)},
	{"Node.js", ci(`\bnode\.?js\b`)},
	{"Django", ci(`\bdjango\b`)},
	{"Flask", cs(`\bFlask\b`)},
	{"Spring", cs(`\bSpring(?: Boot)?\b`)},
	{"GraphQL", ci(`\bgraphql\b`)},
	{"REST", cs(`\bREST(?:ful)?\b`)},
	{"Kafka", ci(`\bkafka\b`)},
	{"Spark", cs(`\bSpark\b`)},
	{"Tableau", ci(`\btableau\b`)},
	{"Excel", cs(`\bExcel\b`)},
	{"HTML", cs(`\bHTML5?\b`)},
	{"CSS", cs(`\bCSS3?\b`)},
	{"CI/CD", ci(`\bci\s*/\s*cd\b`)},
	{"Machine Learning", ci(`\bmachine learning\b`)},
	{"Data Analysis", ci(`\bdata analysis\b|\bdata analytics\b`)},
	{"Project Management", ci(`\bproject management\b`)},
	{"Agile", cs(`\bAgile\b`)},
	{"Scrum", ci(`\bscrum\b`)},
	{"Salesforce", ci(`\bsalesforce\b`)},
}

// skillListLookahead bounds how many lines under a skills heading are read as list items
const skillListLookahead = 6

var skillListSplit = regexp.MustCompile(`\s*(?:,|;|\||•|·|/\s)\s*`)

var skillsLabel = regexp.MustCompile(`(?i)^(?:technical\s+|core\s+|key\s+)?(?:skills|competencies|technologies|tools|tech stack)\s*[:\-–]\s*(.+)$`)

// Skills extracts a deduplicated skill list capped at MaxSkills. An empty list means no
// skill was found; generic suggestions are available separately from SuggestedSkills.
func (e *Extractor) Skills(ctx context.Context, corpus string) []string {
	if payload, ok := e.generate(ctx, FieldSkills, corpus); ok {
		return NormalizeSkills(asStringSlice(payload))
	}
	skills := fallbackSkills(corpus)
	e.logFallback(FieldSkills, len(skills))
	return skills
}

// fallbackSkills reads explicit "Skills:" lines first, then adds keyword matches in order
// of first appearance. Nothing is invented when nothing matches.
func fallbackSkills(text string) []string {
	lines := corpusLines(text)

	var listed []string
	for i, line := range lines {
		if m := skillsLabel.FindStringSubmatch(line); m != nil {
			listed = append(listed, splitSkillList(m[1])...)
			continue
		}
		// items listed under a bare "Skills" heading
		if isHeading(line) && strings.Contains(strings.ToLower(line), "skill") {
			for j, next := range lines[i+1:] {
				if j >= skillListLookahead || isHeading(next) {
					break
				}
				item := stripBullet(next)
				if strings.ContainsAny(item, ",;|•") || (isBullet(next) && len(strings.Fields(item)) <= 4) {
					listed = append(listed, splitSkillList(item)...)
				}
			}
		}
	}

	// credential names and issuers ("Project Management Institute") are not skills
	scanned := make([]string, 0, len(lines))
	credential := make(map[int]bool)
	scanCertifications(lines, func(_ types.CertificationEntry, first, last int) {
		for k := first; k <= last; k++ {
			credential[k] = true
		}
	})
	for i, line := range lines {
		if !credential[i] {
			scanned = append(scanned, line)
		}
	}

	joined := strings.Join(scanned, "\n")
	type hit struct {
		name string
		at   int
	}
	var hits []hit
	for _, kw := range skillKeywords {
		if loc := kw.pattern.FindStringIndex(joined); loc != nil {
			hits = append(hits, hit{kw.name, loc[0]})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })

	for _, h := range hits {
		listed = append(listed, h.name)
	}
	return CanonicalSkills(listed)
}

func splitSkillList(s string) []string {
	parts := skillListSplit.Split(s, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), ".")
		if p != "" && len(strings.Fields(p)) <= 4 {
			out = append(out, p)
		}
	}
	return out
}
