// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sigil Contributors

// Package vocab holds the static vocabulary configuration that decides which
// entities and predicates make up the domain graph.
package vocab

import (
	"embed"
	"errors"
	"path"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	rdferr "github.com/sigil-dev/rdfexplorer/pkg/errors"
	"github.com/sigil-dev/rdfexplorer/pkg/types"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// DefaultProfile is used when no profile is configured.
const DefaultProfile = "brick"

// Profile is the YAML form of a vocabulary.
type Profile struct {
	Name               string            `yaml:"name"`
	Description        string            `yaml:"description"`
	TypePredicate      string            `yaml:"type_predicate"`
	HierarchyPredicate string            `yaml:"hierarchy_predicate"`
	LabelProperty      string            `yaml:"label_property"`
	DomainTypes        []string          `yaml:"domain_types"`
	SemanticPredicates []string          `yaml:"semantic_predicates"`
	AbstractRoots      []string          `yaml:"abstract_roots"`
	ClassLabels        map[string]string `yaml:"class_labels"`
	AnonymousPatterns  []string          `yaml:"anonymous_patterns"`
	RelationGroups     RelationGroups    `yaml:"relation_groups"`
}

// RelationGroups lists the predicate labels that route a relation into each
// display bucket of a node's detail view.
type RelationGroups struct {
	Hierarchy   []string `yaml:"hierarchy"`
	Equivalents []string `yaml:"equivalents"`
	Tags        []string `yaml:"tags"`
	Quantities  []string `yaml:"quantities"`
	Substances  []string `yaml:"substances"`
	Units       []string `yaml:"units"`
}

// Overrides replace parts of a profile from configuration. Empty lists leave
// the profile value in place; class labels are merged key by key.
type Overrides struct {
	DomainTypes        []string
	SemanticPredicates []string
	AbstractRoots      []string
	ClassLabels        map[string]string
}

// Profiles returns the names of the embedded profiles, sorted.
func Profiles() []string {
	entries, err := profileFS.ReadDir("profiles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// LoadProfile reads an embedded profile by name.
func LoadProfile(name string) (*Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	data, err := profileFS.ReadFile("profiles/" + name + ".yaml")
	if err != nil {
		return nil, rdferr.New(rdferr.CodeVocabProfileNotFound,
			"unknown vocabulary profile "+name+" (available: "+strings.Join(Profiles(), ", ")+")",
			rdferr.FieldProfile(name))
	}
	return ParseProfile(data)
}

// ParseProfile decodes a YAML profile.
func ParseProfile(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, rdferr.Errorf(rdferr.CodeVocabProfileInvalid, "parsing vocabulary profile: %w", err)
	}
	return &p, nil
}

// Apply merges overrides into the profile.
func (p *Profile) Apply(o Overrides) {
	if len(o.DomainTypes) > 0 {
		p.DomainTypes = o.DomainTypes
	}
	if len(o.SemanticPredicates) > 0 {
		p.SemanticPredicates = o.SemanticPredicates
	}
	if len(o.AbstractRoots) > 0 {
		p.AbstractRoots = o.AbstractRoots
	}
	if len(o.ClassLabels) > 0 {
		if p.ClassLabels == nil {
			p.ClassLabels = make(map[string]string, len(o.ClassLabels))
		}
		for uri, label := range o.ClassLabels {
			p.ClassLabels[uri] = label
		}
	}
}

// Vocabulary is a compiled profile with set lookups.
type Vocabulary struct {
	Name               string
	TypePredicate      string
	HierarchyPredicate string
	// HierarchyLabel is the local name of HierarchyPredicate; tree and
	// relation views match hierarchy links by label.
	HierarchyLabel string
	LabelProperty  string

	domainTypes        map[string]struct{}
	semanticPredicates map[string]struct{}
	abstractRoots      map[string]struct{}
	classLabels        map[string]string
	anonymousPatterns  []*regexp.Regexp
	groups             map[string]Group
}

// Group names a relation display bucket.
type Group string

const (
	GroupHierarchy   Group = "hierarchy"
	GroupEquivalents Group = "equivalents"
	GroupTags        Group = "tags"
	GroupQuantities  Group = "quantities"
	GroupSubstances  Group = "substances"
	GroupUnits       Group = "units"
	GroupOther       Group = "other"
)

// Compile validates the profile and builds its lookup sets.
func (p *Profile) Compile() (*Vocabulary, error) {
	var errs []error
	if p.TypePredicate == "" {
		errs = append(errs, rdferr.New(rdferr.CodeVocabProfileInvalid, "vocab: type_predicate must not be empty"))
	}
	if p.HierarchyPredicate == "" {
		errs = append(errs, rdferr.New(rdferr.CodeVocabProfileInvalid, "vocab: hierarchy_predicate must not be empty"))
	}
	if len(p.DomainTypes) == 0 {
		errs = append(errs, rdferr.New(rdferr.CodeVocabProfileInvalid, "vocab: domain_types must not be empty"))
	}

	patterns := make([]*regexp.Regexp, 0, len(p.AnonymousPatterns))
	for i, expr := range p.AnonymousPatterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			errs = append(errs, rdferr.Errorf(rdferr.CodeVocabProfileInvalid,
				"vocab: anonymous_patterns[%d] %q: %w", i, expr, err))
			continue
		}
		patterns = append(patterns, re)
	}
	if len(errs) > 0 {
		return nil, rdferr.Errorf(rdferr.CodeVocabProfileInvalid, "compiling vocabulary %q: %w", p.Name, errors.Join(errs...))
	}

	labelProp := p.LabelProperty
	if labelProp == "" {
		labelProp = "label"
	}

	v := &Vocabulary{
		Name:               p.Name,
		TypePredicate:      p.TypePredicate,
		HierarchyPredicate: p.HierarchyPredicate,
		HierarchyLabel:     types.LocalName(p.HierarchyPredicate),
		LabelProperty:      labelProp,
		domainTypes:        toSet(p.DomainTypes),
		semanticPredicates: toSet(p.SemanticPredicates),
		abstractRoots:      toSet(p.AbstractRoots),
		classLabels:        make(map[string]string, len(p.ClassLabels)),
		anonymousPatterns:  patterns,
		groups:             make(map[string]Group),
	}
	for uri, label := range p.ClassLabels {
		v.classLabels[uri] = label
	}

	// Earlier groups win when a label is listed twice.
	assign := func(g Group, labels []string) {
		for _, l := range labels {
			if _, seen := v.groups[l]; !seen {
				v.groups[l] = g
			}
		}
	}
	assign(GroupHierarchy, p.RelationGroups.Hierarchy)
	assign(GroupEquivalents, p.RelationGroups.Equivalents)
	assign(GroupTags, p.RelationGroups.Tags)
	assign(GroupQuantities, p.RelationGroups.Quantities)
	assign(GroupSubstances, p.RelationGroups.Substances)
	assign(GroupUnits, p.RelationGroups.Units)

	return v, nil
}

// Load compiles the named embedded profile with overrides applied.
func Load(name string, o Overrides) (*Vocabulary, error) {
	p, err := LoadProfile(name)
	if err != nil {
		return nil, err
	}
	p.Apply(o)
	return p.Compile()
}

// MustDefault compiles the default profile, panicking on failure. The
// embedded profiles are covered by tests.
func MustDefault() *Vocabulary {
	v, err := Load(DefaultProfile, Overrides{})
	if err != nil {
		panic("vocab: default profile: " + err.Error())
	}
	return v
}

// DomainTypeCount is the size of the domain-type allow-list.
func (v *Vocabulary) DomainTypeCount() int { return len(v.domainTypes) }

// IsDomainType reports whether uri is on the domain-type allow-list.
func (v *Vocabulary) IsDomainType(uri string) bool {
	_, ok := v.domainTypes[uri]
	return ok
}

// IsSemanticPredicate reports whether uri is on the semantic-predicate allow-list.
func (v *Vocabulary) IsSemanticPredicate(uri string) bool {
	_, ok := v.semanticPredicates[uri]
	return ok
}

// IsAbstractRoot reports whether uri is too generic to serve as a category.
func (v *Vocabulary) IsAbstractRoot(uri string) bool {
	_, ok := v.abstractRoots[uri]
	return ok
}

// ClassLabel returns the friendly label for a class URI, falling back to its
// local name.
func (v *Vocabulary) ClassLabel(uri string) string {
	if label, ok := v.classLabels[uri]; ok {
		return label
	}
	return types.LocalName(uri)
}

// GroupOf returns the display bucket for a predicate label.
func (v *Vocabulary) GroupOf(predicateLabel string) Group {
	if g, ok := v.groups[predicateLabel]; ok {
		return g
	}
	return GroupOther
}

// Classify tags a raw identifier using the anonymous patterns. Only decoders
// whose source format has no blank-node term type call this.
func (v *Vocabulary) Classify(raw string) types.Identifier {
	for _, re := range v.anonymousPatterns {
		if re.MatchString(raw) {
			return types.Anonymous(raw)
		}
	}
	return types.Named(raw)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
