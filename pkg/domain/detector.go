// Copyright (c) 2025 Open Swarm Contributors
//
// This software is released under the MIT License.
// See LICENSE file in the repository for details.

// Package domain implements the Domain Expert Detector (C6): it scores
// free-text project descriptions against curated keyword sets and
// returns the domains whose experts should be activated.
package domain

import (
	"regexp"
	"sort"
	"strings"
)

// ConfidenceThreshold is the minimum score for a domain to be retained.
const ConfidenceThreshold = 0.30

// MaxExperts caps how many domains are returned.
const MaxExperts = 3

// keyword scoring divisor: score = min(matches / (len(keywords) * factor), 1.0)
const scoreFactor = 0.3

// Expert is one scored domain match.
type Expert struct {
	Domain     string
	Confidence float64
}

// domainSpec pairs a domain's agent id with its keyword list and the
// precompiled word-boundary pattern for each keyword.
type domainSpec struct {
	agentID  string
	keywords []string
	patterns []*regexp.Regexp
}

// taxonomy is the ten built-in domains and their keyword lists (spec.md
// §6, ported from the original Python's KEYWORD_MAPPINGS). order is the
// taxonomy's declared order, used as the tie-break when two domains
// score identically.
var order = []string{
	"healthcare", "finance", "ecommerce", "edtech", "iot",
	"gaming", "social", "legaltech", "logistics", "hrtech",
}

var taxonomy = map[string]domainSpec{
	"healthcare": {
		agentID: "healthcare_expert",
		keywords: []string{
			"health", "medical", "patient", "clinical", "hospital",
			"diagnosis", "treatment", "hipaa", "ehr", "emr", "healthcare",
			"doctor", "nurse", "prescription", "pharmacy", "telemedicine",
		},
	},
	"finance": {
		agentID: "finance_expert",
		keywords: []string{
			"bank", "banking", "payment", "transaction", "trading",
			"stock", "investment", "loan", "credit", "debit", "fintech",
			"pci", "sox", "financial", "money", "wallet", "ledger",
		},
	},
	"ecommerce": {
		agentID: "ecommerce_expert",
		keywords: []string{
			"shop", "shopping", "cart", "checkout", "product", "catalog",
			"order", "inventory", "ecommerce", "store", "merchant",
			"customer", "purchase", "retail",
		},
	},
	"edtech": {
		agentID: "edtech_expert",
		keywords: []string{
			"learning", "course", "student", "education", "school",
			"university", "lms", "training", "curriculum", "assessment",
			"grade", "classroom", "teacher", "ferpa",
		},
	},
	"iot": {
		agentID: "iot_expert",
		keywords: []string{
			"sensor", "device", "embedded", "telemetry", "iot",
			"connected", "smart", "mqtt", "edge", "firmware",
			"gateway", "actuator",
		},
	},
	"gaming": {
		agentID: "gaming_expert",
		keywords: []string{
			"game", "gaming", "player", "multiplayer", "score",
			"level", "match", "leaderboard", "realtime", "lobby",
		},
	},
	"social": {
		agentID: "social_expert",
		keywords: []string{
			"social", "feed", "post", "community", "follow",
			"like", "share", "comment", "friend", "network",
			"timeline", "notification",
		},
	},
	"legaltech": {
		agentID: "legaltech_expert",
		keywords: []string{
			"contract", "legal", "compliance", "document", "attorney",
			"law", "signature", "esign", "clause", "agreement", "regulation",
		},
	},
	"logistics": {
		agentID: "logistics_expert",
		keywords: []string{
			"shipping", "tracking", "warehouse", "delivery", "logistics",
			"supply chain", "fleet", "route", "carrier", "freight", "package",
		},
	},
	"hrtech": {
		agentID: "hrtech_expert",
		keywords: []string{
			"employee", "hiring", "payroll", "hr", "recruitment",
			"onboarding", "benefits", "performance", "applicant",
			"workforce", "talent",
		},
	},
}

var rank = func() map[string]int {
	m := make(map[string]int, len(order))
	for i, d := range order {
		m[d] = i
	}
	return m
}()

func init() {
	for domain, spec := range taxonomy {
		patterns := make([]*regexp.Regexp, len(spec.keywords))
		for i, kw := range spec.keywords {
			patterns[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
		}
		spec.patterns = patterns
		taxonomy[domain] = spec
	}
}

// Detector scores text against the domain taxonomy.
type Detector struct{}

// NewDetector returns a Detector over the built-in taxonomy.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect concatenates and lowercases the three free-text fields, scores
// every domain, retains those at or above ConfidenceThreshold, and
// returns up to MaxExperts sorted by descending confidence (ties broken
// by the taxonomy's declared order).
func (d *Detector) Detect(overview, features, constraints string) []Expert {
	text := strings.ToLower(strings.Join([]string{overview, features, constraints}, " "))

	var experts []Expert
	for domain, spec := range taxonomy {
		score := scoreKeywords(text, spec.patterns)
		if score >= ConfidenceThreshold {
			experts = append(experts, Expert{Domain: domain, Confidence: score})
		}
	}

	sort.SliceStable(experts, func(i, j int) bool {
		if experts[i].Confidence != experts[j].Confidence {
			return experts[i].Confidence > experts[j].Confidence
		}
		return rank[experts[i].Domain] < rank[experts[j].Domain]
	})

	if len(experts) > MaxExperts {
		experts = experts[:MaxExperts]
	}
	return experts
}

// AgentID returns the expert agent id for a domain, or "" if unknown.
func (d *Detector) AgentID(domain string) string {
	return taxonomy[domain].agentID
}

// scoreKeywords counts word-boundary matches and normalizes to [0, 1],
// rounded to two decimals. A keyword that is a substring of a longer
// word (e.g. "bank" inside "embankment") must not count, so every
// keyword is matched through a precompiled \b-delimited pattern rather
// than strings.Contains.
func scoreKeywords(text string, patterns []*regexp.Regexp) float64 {
	if len(patterns) == 0 {
		return 0.0
	}

	matches := 0
	for _, re := range patterns {
		if re.MatchString(text) {
			matches++
		}
	}

	score := float64(matches) / (float64(len(patterns)) * scoreFactor)
	if score > 1.0 {
		score = 1.0
	}
	return roundTo2(score)
}

func roundTo2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
