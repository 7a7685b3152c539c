package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// RankEntry is one title the player earns at or above MinScore.
type RankEntry struct {
	MinScore int    `yaml:"min_score"`
	Title    string `yaml:"title"`
}

// RankTable maps a final score to a rank title.
type RankTable struct {
	ranks []RankEntry // ascending by MinScore
}

// LoadRankTable loads ranks.yaml.
func LoadRankTable(path string) (*RankTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rank list: %w", err)
	}
	return ParseRankTable(raw)
}

func ParseRankTable(raw []byte) (*RankTable, error) {
	var entries []RankEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse rank list: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("rank list is empty")
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].MinScore < entries[j].MinScore
	})
	if entries[0].MinScore > 0 {
		return nil, fmt.Errorf("lowest rank %q starts at %d, want 0", entries[0].Title, entries[0].MinScore)
	}
	return &RankTable{ranks: entries}, nil
}

// Title returns the highest rank whose threshold the score reaches.
func (t *RankTable) Title(score int) string {
	title := t.ranks[0].Title
	for _, r := range t.ranks {
		if score < r.MinScore {
			break
		}
		title = r.Title
	}
	return title
}

// Count returns the number of ranks loaded.
func (t *RankTable) Count() int {
	return len(t.ranks)
}
