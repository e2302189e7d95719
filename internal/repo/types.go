// Package repo provides core types for the repolist bookmark store.
package repo

// AllKeyword selects every entry where a single alias is expected.
const AllKeyword = "all"

// Entry is one saved repository: a short alias and the link it names.
type Entry struct {
	Alias string `json:"alias"`
	Link  string `json:"link"`
}

// String formats the entry the way show prints it.
func (e Entry) String() string {
	return e.Alias + ": " + e.Link
}

// Validate checks that both fields fit within the given limits.
func (e Entry) Validate(l Limits) error {
	if err := ValidateAlias(e.Alias, l.Alias); err != nil {
		return err
	}
	return ValidateLink(e.Link, l.Link)
}

// Limits bounds the byte length of each user-supplied token.
// A zero value disables the corresponding check.
type Limits struct {
	Command int `yaml:"command"`
	Alias   int `yaml:"alias"`
	Link    int `yaml:"link"`
	Line    int `yaml:"line"`
}

// DefaultLimits returns the bounds used when no configuration overrides them.
func DefaultLimits() Limits {
	return Limits{
		Command: 16,
		Alias:   129,
		Link:    255,
		Line:    512,
	}
}
