package validation

import "regexp"

// CatalogueVersion identifies the shipped pattern set. Bump whenever a
// pattern is added, removed, or retuned.
const CatalogueVersion = "2026.08"

// Pattern is one entry of the semantic catalogue: a stable code, a default
// severity, and a compiled matcher. Matchers are compiled at init from
// this table, never from untrusted input.
type Pattern struct {
	Code        string
	Severity    string
	Description string
	// Promotable warnings become errors in strict mode.
	Promotable bool
	Matcher    *regexp.Regexp
}

// Catalogue is the fixed set of dangerous-instruction patterns scanned by
// the semantic validator. Matching is case-insensitive. The error/warning
// split favors recall: hard imperative phrasings are errors, hedged or
// partial phrasings are warnings a human can triage.
var Catalogue = []Pattern{
	// Prompt injection.
	{
		Code:        "SEM_E001",
		Severity:    "error",
		Description: "prompt injection: override of prior instructions",
		Matcher:     regexp.MustCompile(`(?i)\b(ignore|disregard|forget)\s+(all\s+|any\s+)?(previous|prior|above|earlier)\s+(instructions?|directives?|prompts?|rules?)`),
	},
	// Jailbreak / role override.
	{
		Code:        "SEM_E002",
		Severity:    "error",
		Description: "jailbreak: role override or system prompt manipulation",
		Matcher:     regexp.MustCompile(`(?i)(\byou\s+are\s+now\s+(a|an|in)\b|\b(reveal|print|show|leak)\b.{0,40}\b(system\s+prompt|developer\s+(instructions?|message))|\bpretend\s+(that\s+)?you\s+(are|have)\s+no\s+(rules|restrictions|guidelines)\b|\bDAN\s+mode\b)`),
	},
	// Arbitrary code execution requests.
	{
		Code:        "SEM_E003",
		Severity:    "error",
		Description: "instruction to execute arbitrary code or commands",
		Matcher:     regexp.MustCompile(`(?i)\b(execute|run|eval)\b.{0,40}\b(arbitrary|any|the\s+following|this)\s+(code|command|script|shell)`),
	},
	// Credential harvesting.
	{
		Code:        "SEM_E004",
		Severity:    "error",
		Description: "credential harvesting: fetch or exfiltrate secrets",
		Matcher:     regexp.MustCompile(`(?i)\b(fetch|retrieve|read|collect|send|upload|exfiltrate)\b.{0,60}\b(api[_\s-]?keys?|tokens?|passwords?|credentials?|secrets?)\b`),
	},
	// Injected markup.
	{
		Code:        "SEM_E005",
		Severity:    "error",
		Description: "injected markup: script, iframe, or active URI scheme",
		Matcher:     regexp.MustCompile(`(?i)(<script[\s>]|<iframe[\s>]|javascript:\s*\S|data:text/html|\son(click|load|error|mouseover)\s*=)`),
	},
	// Hardcoded secret-shaped literals.
	{
		Code:        "SEM_E006",
		Severity:    "error",
		Description: "hardcoded secret-shaped literal next to a key/token label",
		Matcher:     regexp.MustCompile(`(?i)\b(api[_-]?key|secret|token|password)\b\s*[:=]\s*["']?[A-Za-z0-9+/_-]{20,}`),
	},
	// Destructive shell idioms.
	{
		Code:        "SEM_E007",
		Severity:    "error",
		Description: "destructive shell idiom",
		Matcher:     regexp.MustCompile(`(?i)(rm\s+-rf?\s+[/~]|:\(\)\s*\{\s*:\|:\s*&\s*\}\s*;|dd\s+if=\S+\s+of=/dev/[a-z]|mkfs\.\w+\s+/dev/|>\s*/dev/sd[a-z])`),
	},

	// Softer phrasings of the same families. Promotable in strict mode.
	{
		Code:        "SEM_W001",
		Severity:    "warning",
		Description: "ambiguous instruction-override phrasing",
		Promotable:  true,
		Matcher:     regexp.MustCompile(`(?i)\b(ignore|skip|bypass|override)\s+(the\s+)?(rule|check|restriction|limit|guideline)s?\s+(that|which|about)\b`),
	},
	{
		Code:        "SEM_W002",
		Severity:    "warning",
		Description: "role-play phrasing adjacent to jailbreak patterns",
		Promotable:  true,
		Matcher:     regexp.MustCompile(`(?i)\b(act\s+as\s+(if|though)\s+you|roleplay\s+as|without\s+(any\s+)?(restrictions?|limitations?|filters?))\b`),
	},
	{
		Code:        "SEM_W003",
		Severity:    "warning",
		Description: "indirect request to run commands",
		Promotable:  true,
		Matcher:     regexp.MustCompile(`(?i)\b(whatever\s+command|any\s+shell\s+access|unrestricted\s+(shell|terminal|filesystem))\b`),
	},
	{
		Code:        "SEM_W004",
		Severity:    "warning",
		Description: "mentions of secrets in instruction context",
		Promotable:  true,
		Matcher:     regexp.MustCompile(`(?i)\b(your|the\s+user'?s?)\s+(api[_\s-]?key|token|password|credentials?)\b`),
	},
}
