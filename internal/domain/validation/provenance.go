package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/compvet/compvet/internal/domain"
)

// defaultHostingDomains are repository hosts accepted without a warning.
var defaultHostingDomains = []string{
	"github.com", "gitlab.com", "bitbucket.org", "codeberg.org", "sr.ht",
}

var commitSHARe = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

// ProvenanceValidator checks authorship, repository, and version metadata
// consistency. Anonymous contributions are allowed but flagged.
type ProvenanceValidator struct {
	hosting map[string]bool
}

func NewProvenanceValidator(extraHostingDomains []string) *ProvenanceValidator {
	hosting := make(map[string]bool)
	for _, d := range defaultHostingDomains {
		hosting[d] = true
	}
	for _, d := range extraHostingDomains {
		hosting[strings.ToLower(d)] = true
	}
	return &ProvenanceValidator{hosting: hosting}
}

func (v *ProvenanceValidator) Name() string { return "provenance" }

func (v *ProvenanceValidator) Validate(c domain.Component, _ domain.Options) (*domain.ValidationResult, error) {
	rec := domain.NewRecorder()

	if c.FrontmatterString("author") == "" {
		rec.AddError("PROV_E001", "frontmatter does not declare an author",
			map[string]any{"field": "author"})
	}

	switch repo := c.FrontmatterString("repository"); {
	case repo == "":
		rec.AddWarning("PROV_W001", "no repository reference declared",
			map[string]any{"field": "repository"})
	case !v.acceptedHost(repo):
		rec.AddWarning("PROV_W001",
			fmt.Sprintf("repository %q is not on an accepted hosting domain", repo),
			map[string]any{"field": "repository", "repository": repo})
	}

	if c.FrontmatterString("version") == "" {
		rec.AddWarning("PROV_W002", "no version declared",
			map[string]any{"field": "version"})
	}

	if c.Commit != nil {
		v.checkCommit(rec, c.Commit)
	}

	return rec.Result(), nil
}

func (v *ProvenanceValidator) acceptedHost(repo string) bool {
	u, err := url.Parse(repo)
	if err != nil {
		return false
	}
	if u.Hostname() == "" {
		// Bare owner/repo shorthand is treated as the default host. A
		// dotted first segment is a hostname, not an owner.
		owner, _, twoPart := strings.Cut(repo, "/")
		if twoPart && strings.Count(repo, "/") == 1 &&
			!strings.Contains(repo, " ") && !strings.Contains(owner, ".") {
			return true
		}
		// A schemeless host/owner/repo reference parses with an empty
		// host; retry with an explicit scheme.
		u, err = url.Parse("https://" + repo)
		if err != nil {
			return false
		}
	}
	host := strings.ToLower(u.Hostname())
	return v.hosting[strings.TrimPrefix(host, "www.")]
}

// checkCommit cross-checks loader-supplied commit metadata for shape:
// a hex SHA, a non-empty author, and an RFC3339 date.
func (v *ProvenanceValidator) checkCommit(rec *domain.Recorder, meta *domain.CommitMeta) {
	if !commitSHARe.MatchString(strings.ToLower(meta.SHA)) {
		rec.AddError("PROV_E003",
			fmt.Sprintf("malformed commit SHA %q", meta.SHA),
			map[string]any{"sha": meta.SHA})
	}
	if strings.TrimSpace(meta.Author) == "" {
		rec.AddError("PROV_E003", "commit metadata has empty author",
			map[string]any{"sha": meta.SHA})
	}
	if meta.Date != "" {
		if _, err := time.Parse(time.RFC3339, meta.Date); err != nil {
			rec.AddError("PROV_E003",
				fmt.Sprintf("malformed commit date %q", meta.Date),
				map[string]any{"date": meta.Date})
		}
	}
}
