package types

import "time"

type Signature struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Date  time.Time `json:"date"`
}

// RawCommit is a commit as read from git log, newest first.
type RawCommit struct {
	Hash      string    `json:"hash"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Author    Signature `json:"author"`
	Committer Signature `json:"committer"`
}

// Message joins subject and body the way git stores them.
func (c RawCommit) Message() string {
	if c.Body == "" {
		return c.Subject
	}
	return c.Subject + "\n" + c.Body
}

const BreakingChangeNoteTitle = "BREAKING CHANGE"

type CommitNote struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type CommitReference struct {
	// Action is the closing keyword preceding the reference, e.g. "Closes".
	Action     string `json:"action,omitempty"`
	Owner      string `json:"owner,omitempty"`
	Repository string `json:"repository,omitempty"`
	Prefix     string `json:"prefix"`
	Issue      string `json:"issue"`
	Raw        string `json:"raw"`
}

// Slug returns "owner/repo" for cross-repository references, empty otherwise.
func (r CommitReference) Slug() string {
	if r.Owner == "" || r.Repository == "" {
		return ""
	}
	return r.Owner + "/" + r.Repository
}

// ParsedCommit is a conventional commit. An empty Type means the header
// could not be parsed and the commit is excluded from every grouping.
type ParsedCommit struct {
	Hash         string            `json:"hash"`
	Type         string            `json:"type,omitempty"`
	Scope        string            `json:"scope,omitempty"`
	Subject      string            `json:"subject"`
	Header       string            `json:"header"`
	Body         string            `json:"body,omitempty"`
	Footer       string            `json:"footer,omitempty"`
	Notes        []CommitNote      `json:"notes"`
	References   []CommitReference `json:"references"`
	TypeAppendix string            `json:"type_appendix,omitempty"`
	Merge        string            `json:"merge,omitempty"`
	Revert       *RevertInfo       `json:"revert,omitempty"`
}

type RevertInfo struct {
	Header string `json:"header"`
	Hash   string `json:"hash"`
}

func (c ParsedCommit) IsMerge() bool {
	return c.Merge != ""
}

func (c ParsedCommit) IsRevert() bool {
	return c.Revert != nil
}

// ReleaseNoteCommit is a parsed commit enriched with the GitHub logins of
// its contributors.
type ReleaseNoteCommit struct {
	ParsedCommit
	Authors []string `json:"authors"`
}
