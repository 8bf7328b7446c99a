package model

import "sort"

const (
	// UncategorizedTitle is the fallback category in a release notes
	// configuration. Its labels never satisfy the check.
	UncategorizedTitle = "Uncategorized"

	// WildcardLabel is GitHub's catch-all label entry in release.yml.
	WildcardLabel = "*"
)

// Category is one changelog bucket: a title plus the labels that route a
// pull request into it.
type Category struct {
	Title  string
	Labels []string
}

// ChangelogPolicy is the release notes categorization a repository declares,
// typically in .github/release.yml.
type ChangelogPolicy struct {
	Categories []Category
	Exclude    []string // labels that exempt a PR from categorization
}

// AllowedLabels returns the sorted union of all category labels except those
// of the Uncategorized category, plus the exclusion labels. Wildcard entries
// are not real labels and are dropped.
func (p *ChangelogPolicy) AllowedLabels() []string {
	seen := map[string]struct{}{}
	for _, c := range p.Categories {
		if c.Title == UncategorizedTitle {
			continue
		}
		for _, l := range c.Labels {
			if l == WildcardLabel || l == "" {
				continue
			}
			seen[l] = struct{}{}
		}
	}
	for _, l := range p.Exclude {
		if l == WildcardLabel || l == "" {
			continue
		}
		seen[l] = struct{}{}
	}

	allowed := make([]string, 0, len(seen))
	for l := range seen {
		allowed = append(allowed, l)
	}
	sort.Strings(allowed)
	return allowed
}
