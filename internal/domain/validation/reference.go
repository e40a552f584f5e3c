package validation

import (
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/compvet/compvet/internal/domain"
)

var (
	markdownLinkRe = regexp.MustCompile(`\[[^\]]*\]\(([^)\s]+)`)
	bareURLRe      = regexp.MustCompile(`(?i)\b(?:https?|file|ftp)://[^\s<>"'\)\]]+|\b(?:javascript|data):[^\s<>"'\)\]]+`)

	// ssrfCueRe spots phrasing that directs the validating or installing
	// machine to call a link, the tell of a server-side-request-forgery
	// style payload.
	ssrfCueRe = regexp.MustCompile(`(?i)\b(fetch|curl|wget|post|send|request|connect|call(\s+back)?)\b`)
)

// blockedSchemes are non-network or locally-scoped protocols.
var blockedSchemes = map[string]bool{"file": true, "javascript": true, "data": true}

// abusedTLDs are top-level domains with a documented abuse record.
var abusedTLDs = map[string]bool{
	"tk": true, "ml": true, "ga": true, "cf": true, "gq": true,
	"zip": true, "mov": true, "top": true, "xyz": true,
}

// ReferenceValidator extracts every URL-like token from a component and
// applies a protocol allow-list, private-network blocking, and
// suspicious-domain heuristics. An optional reputation checker adds
// info-level evidence; it can never fail validation.
type ReferenceValidator struct {
	trusted    map[string]bool
	reputation domain.ReputationChecker
}

func NewReferenceValidator(trustedDomains []string, reputation domain.ReputationChecker) *ReferenceValidator {
	trusted := make(map[string]bool, len(trustedDomains))
	for _, d := range trustedDomains {
		trusted[strings.ToLower(d)] = true
	}
	return &ReferenceValidator{trusted: trusted, reputation: reputation}
}

func (v *ReferenceValidator) Name() string { return "reference" }

func (v *ReferenceValidator) Validate(c domain.Component, _ domain.Options) (*domain.ValidationResult, error) {
	rec := domain.NewRecorder()

	for _, ref := range extractURLs(c.RawContent) {
		v.checkURL(rec, c.RawContent, ref)
	}

	return rec.Result(), nil
}

// urlRef is one extracted URL with its character offset in the content.
type urlRef struct {
	url    string
	offset int
}

// extractURLs finds markdown link targets and bare URLs, deduplicated by
// offset so a markdown link is not reported twice.
func extractURLs(content string) []urlRef {
	seen := make(map[int]bool)
	var refs []urlRef

	for _, m := range markdownLinkRe.FindAllStringSubmatchIndex(content, -1) {
		start := m[2]
		if !seen[start] {
			seen[start] = true
			refs = append(refs, urlRef{url: content[m[2]:m[3]], offset: start})
		}
	}
	for _, m := range bareURLRe.FindAllStringIndex(content, -1) {
		if !seen[m[0]] {
			seen[m[0]] = true
			refs = append(refs, urlRef{url: content[m[0]:m[1]], offset: m[0]})
		}
	}
	return refs
}

func (v *ReferenceValidator) checkURL(rec *domain.Recorder, content string, ref urlRef) {
	loc := domain.Locate(content, ref.offset)
	meta := func(extra map[string]any) map[string]any {
		m := map[string]any{"url": ref.url, "line": loc.Line, "column": loc.Column}
		for k, val := range extra {
			m[k] = val
		}
		return m
	}

	u, err := url.Parse(strings.TrimRight(ref.url, ".,;:"))
	if err != nil {
		rec.AddWarning("REF_W003", fmt.Sprintf("unparseable URL %q", ref.url), meta(nil))
		return
	}
	scheme := strings.ToLower(u.Scheme)

	if blockedSchemes[scheme] {
		rec.AddError("REF_E001",
			fmt.Sprintf("blocked protocol %q in link %q", scheme, ref.url),
			meta(map[string]any{"scheme": scheme}))
		return
	}
	if scheme != "http" && scheme != "https" {
		return
	}

	host := strings.ToLower(u.Hostname())
	if isPrivateHost(host) {
		if hasSSRFCue(content, ref.offset) {
			rec.AddError("REF_E003",
				fmt.Sprintf("link %q targets a local address with request phrasing nearby", ref.url),
				meta(map[string]any{"host": host}))
		} else {
			rec.AddError("REF_E002",
				fmt.Sprintf("link %q resolves to a loopback or private-range address", ref.url),
				meta(map[string]any{"host": host}))
		}
		return
	}

	if tld := lastLabel(host); abusedTLDs[tld] && !v.trusted[host] {
		rec.AddWarning("REF_W001",
			fmt.Sprintf("link %q uses frequently-abused TLD .%s", ref.url, tld),
			meta(map[string]any{"host": host, "tld": tld}))
	}

	if scheme == "http" {
		rec.AddWarning("REF_W002",
			fmt.Sprintf("link %q uses plain HTTP", ref.url), meta(nil))
	}

	if v.reputation != nil {
		if verdict, err := v.reputation.Check(ref.url); err == nil && verdict != "" {
			rec.AddInfo("REF_I001",
				fmt.Sprintf("reputation verdict for %q: %s", ref.url, verdict),
				meta(map[string]any{"verdict": verdict}))
		}
	}
}

// isPrivateHost reports whether a host names the local machine or a
// private network: loopback, RFC1918 ranges, and link-local.
func isPrivateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsUnspecified()
}

// hasSSRFCue scans the text surrounding an offset for request phrasing.
func hasSSRFCue(content string, offset int) bool {
	start := offset - 120
	if start < 0 {
		start = 0
	}
	end := offset + 120
	if end > len(content) {
		end = len(content)
	}
	return ssrfCueRe.MatchString(content[start:end])
}

func lastLabel(host string) string {
	if i := strings.LastIndexByte(host, '.'); i >= 0 {
		return host[i+1:]
	}
	return ""
}
