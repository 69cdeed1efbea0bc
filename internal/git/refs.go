package git

import (
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/masmgr/githistory-go/internal/logging"
)

const (
	headPointerPrefix = "HEAD -> "
	tagPrefix         = "tag: "
)

// ignoredRefs are decorations git prints that are not branches or tags:
// a detached HEAD and the stash.
var ignoredRefs = map[string]bool{
	"HEAD":       true,
	"refs/stash": true,
}

// RefRecognizer classifies one decorated-ref token.
// Parse must only be called after CanParse returned true.
type RefRecognizer interface {
	CanParse(token string) bool
	Parse(token string) Reference
}

type headRefRecognizer struct{}

func (headRefRecognizer) CanParse(token string) bool {
	return plumbing.ReferenceName(strings.TrimPrefix(token, headPointerPrefix)).IsBranch()
}

func (headRefRecognizer) Parse(token string) Reference {
	name := plumbing.ReferenceName(strings.TrimPrefix(token, headPointerPrefix))
	return Reference{Name: name.Short(), Type: RefTypeHead}
}

type remoteHeadRecognizer struct{}

func (remoteHeadRecognizer) CanParse(token string) bool {
	return plumbing.ReferenceName(token).IsRemote()
}

func (remoteHeadRecognizer) Parse(token string) Reference {
	return Reference{Name: plumbing.ReferenceName(token).Short(), Type: RefTypeRemoteHead}
}

type tagRefRecognizer struct{}

func (tagRefRecognizer) CanParse(token string) bool {
	return strings.HasPrefix(token, tagPrefix) && strings.TrimSpace(strings.TrimPrefix(token, tagPrefix)) != ""
}

func (tagRefRecognizer) Parse(token string) Reference {
	name := plumbing.ReferenceName(strings.TrimSpace(strings.TrimPrefix(token, tagPrefix)))
	if name.IsTag() {
		return Reference{Name: name.Short(), Type: RefTypeTag}
	}
	return Reference{Name: name.String(), Type: RefTypeTag}
}

// DefaultRefRecognizers returns the recognizer chain in matching order.
func DefaultRefRecognizers() []RefRecognizer {
	return []RefRecognizer{headRefRecognizer{}, remoteHeadRecognizer{}, tagRefRecognizer{}}
}

// RefsParser turns a %d decoration string into typed references.
type RefsParser struct {
	recognizers []RefRecognizer
	log         logging.Logger
}

// NewRefsParser creates a parser using the default recognizer chain.
func NewRefsParser(log logging.Logger) *RefsParser {
	return &RefsParser{recognizers: DefaultRefRecognizers(), log: logging.OrDiscard(log)}
}

// Parse splits the decoration on commas and classifies each token with the
// first recognizer that accepts it. Tokens nobody recognizes are logged and
// dropped.
func (p *RefsParser) Parse(decorated string) []Reference {
	content := strings.TrimSpace(decorated)
	content = strings.TrimPrefix(content, "(")
	content = strings.TrimSuffix(content, ")")

	refs := make([]Reference, 0, 4)
	for _, token := range strings.Split(content, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		ref, ok := p.classify(token)
		if !ok {
			if ignoredRefs[token] {
				p.log.Infof("skipping ref %q", token)
			} else {
				p.log.Errorf("no parser found for ref %q", token)
			}
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func (p *RefsParser) classify(token string) (Reference, bool) {
	for _, r := range p.recognizers {
		if r.CanParse(token) {
			return r.Parse(token), true
		}
	}
	return Reference{}, false
}

// branchListName converts a full head ref into the form printed by
// `git branch --all`: "main" for local heads and "remotes/origin/main" for
// remote heads.
func branchListName(ref string) string {
	name := plumbing.ReferenceName(ref)
	switch {
	case name.IsBranch():
		return strings.TrimPrefix(ref, "refs/heads/")
	case name.IsRemote():
		return "remotes/" + strings.TrimPrefix(ref, "refs/remotes/")
	default:
		return ref
	}
}
