package data

import (
	"fmt"
	"os"
	"sort"

	"github.com/cyberquest/arcade/internal/game"
	"gopkg.in/yaml.v3"
)

// VariantLabels is one variant's message pools as written in labels.yaml.
type VariantLabels struct {
	Variant string   `yaml:"variant"`
	Title   string   `yaml:"title"`
	Threat  []string `yaml:"threat"`
	Benign  []string `yaml:"benign"`
}

type labelFile struct {
	Variants []VariantLabels `yaml:"variants"`
}

// LabelTable provides label pools by variant name.
type LabelTable struct {
	variants map[string]*VariantLabels
}

// LoadLabelTable loads labels.yaml.
func LoadLabelTable(path string) (*LabelTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label list: %w", err)
	}
	return ParseLabelTable(raw)
}

// ParseLabelTable parses labels.yaml content. Every variant needs at least
// one threat and one benign label.
func ParseLabelTable(raw []byte) (*LabelTable, error) {
	var f labelFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse label list: %w", err)
	}
	t := &LabelTable{
		variants: make(map[string]*VariantLabels, len(f.Variants)),
	}
	for i := range f.Variants {
		v := &f.Variants[i]
		if v.Variant == "" {
			return nil, fmt.Errorf("label list entry %d has no variant name", i)
		}
		if len(v.Threat) == 0 || len(v.Benign) == 0 {
			return nil, fmt.Errorf("variant %q needs threat and benign labels", v.Variant)
		}
		if _, dup := t.variants[v.Variant]; dup {
			return nil, fmt.Errorf("variant %q listed twice", v.Variant)
		}
		t.variants[v.Variant] = v
	}
	return t, nil
}

// Get returns the variant's labels, or nil if unknown.
func (t *LabelTable) Get(variant string) *VariantLabels {
	return t.variants[variant]
}

// Pool converts the variant's labels to the simulation's pool type.
func (t *LabelTable) Pool(variant string) (game.LabelPool, bool) {
	v := t.variants[variant]
	if v == nil {
		return game.LabelPool{}, false
	}
	return game.LabelPool{Threat: v.Threat, Benign: v.Benign}, true
}

// Variants lists the known variant names, sorted.
func (t *LabelTable) Variants() []string {
	out := make([]string, 0, len(t.variants))
	for name := range t.variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Count returns the total number of labels across all variants.
func (t *LabelTable) Count() int {
	n := 0
	for _, v := range t.variants {
		n += len(v.Threat) + len(v.Benign)
	}
	return n
}
