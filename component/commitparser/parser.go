package commitparser

import (
	"regexp"
	"sort"
	"strings"

	cc "github.com/leodido/go-conventionalcommits"
	ccparser "github.com/leodido/go-conventionalcommits/parser"
	"opencsg.com/csghub-release/common/types"
)

var (
	// merge and revert headers are git's own wording, not conventional commits
	mergeRegex  = regexp.MustCompile(`^Merge (?:pull request #\d+ from \S+|branch '[^']+'.*|remote-tracking branch '[^']+'.*)$`)
	revertRegex = regexp.MustCompile(`(?is)^(?:Revert|revert:)\s"?(.+?)"?\s*This reverts commit (\w*)\.`)
	// references look like #12 or owner/repo#12, preceded by a separator
	referenceRegex = regexp.MustCompile(`(?:^|[\s(\[,;])((?:[\w.-]+/[\w.-]+)?)#(\d+)\b`)
	actionRegex    = regexp.MustCompile(`(?i)\b(close[sd]?|closing|fix(?:e[sd])?|fixing|resolve[sd]?|resolving)\b:?\s*$`)
	// text allowed between an action and a later reference: "Closes #1, #2 and #3"
	actionGapRegex = regexp.MustCompile(`(?i)^(?:[\s,]|and|&)*$`)
)

// Parser turns raw git commits into conventional commits.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse parses every commit independently, so the output has the same
// length and order as the input and each entry keeps its own hash.
func (p *Parser) Parse(commits []types.RawCommit) []types.ParsedCommit {
	parsed := make([]types.ParsedCommit, 0, len(commits))
	for _, c := range commits {
		pc := p.ParseMessage(c.Message())
		pc.Hash = c.Hash
		parsed = append(parsed, pc)
	}
	return parsed
}

func (p *Parser) ParseMessage(message string) types.ParsedCommit {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.TrimLeft(message, "\n")
	lines := strings.Split(message, "\n")

	pc := types.ParsedCommit{
		Notes:      []types.CommitNote{},
		References: []types.CommitReference{},
	}
	header := strings.TrimRight(lines[0], " \t")
	rest := lines[1:]

	if m := revertRegex.FindStringSubmatch(message); m != nil {
		pc.Revert = &types.RevertInfo{Header: m[1], Hash: m[2]}
	}

	pc.Header = header
	if mergeRegex.MatchString(header) {
		pc.Merge = header
	} else if commit := parseHeader(header); commit != nil {
		pc.Type = commit.Type
		if commit.Scope != nil {
			pc.Scope = strings.TrimSpace(*commit.Scope)
		}
		pc.Subject = commit.Description
		if commit.Exclamation {
			pc.TypeAppendix = "!"
		}
		pc.Header = formatHeader(pc.Type, pc.Scope, pc.Subject)
	}

	// The footer starts at the first paragraph made of trailers or closing
	// references. Only conventional commits carry notes.
	var body, footer []string
	for _, para := range paragraphs(rest) {
		var (
			notes    []types.CommitNote
			trailers bool
		)
		if pc.Type != "" {
			notes, trailers = parseTrailers(header, para)
		}
		if len(footer) == 0 && !trailers && len(ClosingReferences(para)) == 0 {
			body = append(body, para)
			continue
		}
		footer = append(footer, para)
		pc.Notes = append(pc.Notes, notes...)
	}
	pc.Body = strings.Join(body, "\n\n")
	pc.Footer = strings.Join(footer, "\n\n")

	seen := make(map[string]struct{})
	for _, line := range append([]string{header}, rest...) {
		for _, ref := range parseReferences(line) {
			key := ref.Action + "|" + ref.Slug() + "|" + ref.Issue
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			pc.References = append(pc.References, ref)
		}
	}
	return pc
}

// parseHeader returns nil when header is not "type(scope)!: subject".
func parseHeader(header string) *cc.ConventionalCommit {
	machine := ccparser.NewMachine(ccparser.WithTypes(cc.TypesFreeForm))
	msg, err := machine.Parse([]byte(header))
	if err != nil || msg == nil || !msg.Ok() {
		return nil
	}
	commit, ok := msg.(*cc.ConventionalCommit)
	if !ok {
		return nil
	}
	return commit
}

// parseTrailers parses para as the trailer block of a commit with header. It
// reports whether para holds trailers and returns its BREAKING CHANGE notes.
func parseTrailers(header, para string) ([]types.CommitNote, bool) {
	machine := ccparser.NewMachine(ccparser.WithTypes(cc.TypesFreeForm), ccparser.WithBestEffort())
	msg, _ := machine.Parse([]byte(header + "\n\n" + para))
	commit, ok := msg.(*cc.ConventionalCommit)
	if !ok || commit == nil || len(commit.Footers) == 0 {
		return nil, false
	}

	keys := make([]string, 0, len(commit.Footers))
	for key := range commit.Footers {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var notes []types.CommitNote
	for _, key := range keys {
		if !isBreakingChangeToken(key) {
			continue
		}
		for _, value := range commit.Footers[key] {
			notes = append(notes, types.CommitNote{
				// both spellings mean the same thing
				Title: types.BreakingChangeNoteTitle,
				Text:  strings.TrimSpace(value),
			})
		}
	}
	return notes, true
}

func isBreakingChangeToken(token string) bool {
	token = strings.ToLower(strings.ReplaceAll(token, " ", "-"))
	return token == "breaking-change"
}

func formatHeader(commitType, scope, subject string) string {
	if scope != "" {
		return commitType + "(" + scope + "): " + subject
	}
	return commitType + ": " + subject
}

// paragraphs splits lines on blank lines, dropping the blank lines.
func paragraphs(lines []string) []string {
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimRight(line, " \t"))
	}
	flush()
	return out
}

// ClosingReferences returns the references of text preceded by a closing
// keyword such as "Closes" or "fixes".
func ClosingReferences(text string) []types.CommitReference {
	var refs []types.CommitReference
	for _, line := range strings.Split(text, "\n") {
		for _, ref := range parseReferences(line) {
			if ref.Action != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

func parseReferences(line string) []types.CommitReference {
	matches := referenceRegex.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return nil
	}
	refs := make([]types.CommitReference, 0, len(matches))
	action := ""
	prevEnd := 0
	for _, m := range matches {
		// m[2:4] slug (possibly empty), m[4:6] issue; m[0] may point at the separator
		between := line[prevEnd:m[2]]
		if a := actionRegex.FindStringSubmatch(between); a != nil {
			action = a[1]
		} else if !actionGapRegex.MatchString(between) {
			action = ""
		}

		ref := types.CommitReference{
			Action: action,
			Prefix: "#",
			Issue:  line[m[4]:m[5]],
			Raw:    strings.TrimLeft(line[m[0]:m[1]], " \t([,;"),
		}
		if slug := line[m[2]:m[3]]; slug != "" {
			parts := strings.SplitN(slug, "/", 2)
			ref.Owner, ref.Repository = parts[0], parts[1]
		}
		refs = append(refs, ref)
		prevEnd = m[1]
	}
	return refs
}

var defaultParser = New()

func Parse(commits []types.RawCommit) []types.ParsedCommit {
	return defaultParser.Parse(commits)
}

func ParseMessage(message string) types.ParsedCommit {
	return defaultParser.ParseMessage(message)
}
