package taxonomy

import (
	_ "embed"
	"os"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/cognicore/commentscope/pkg/commentscope/internalerr"
)

// CountryPrefix marks a theme as belonging to the country group.
const CountryPrefix = "country_"

// Group partitions themes for reporting.
type Group int

const (
	GroupService Group = iota
	GroupCountry
)

func (g Group) String() string {
	if g == GroupCountry {
		return "country"
	}
	return "service"
}

// Theme is a named set of trigger keywords.
type Theme struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Group derives the grouping tag from the theme name.
func (t Theme) Group() Group {
	if strings.HasPrefix(t.Name, CountryPrefix) {
		return GroupCountry
	}
	return GroupService
}

// DisplayName is the human-readable name: the country prefix is dropped,
// underscores become spaces, and the result is title-cased.
// Example: "country_saudi_arabia" → "Saudi Arabia"
func (t Theme) DisplayName() string {
	name := strings.TrimPrefix(t.Name, CountryPrefix)
	return titleCase(strings.ReplaceAll(name, "_", " "))
}

// titleCase upper-cases a letter that follows an uncased character and
// lower-cases every other cased letter.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevCased := false
	for _, r := range s {
		if prevCased {
			r = unicode.ToLower(r)
		} else {
			r = unicode.ToTitle(r)
		}
		b.WriteRune(r)
		prevCased = unicode.IsUpper(r) || unicode.IsLower(r) || unicode.IsTitle(r)
	}
	return b.String()
}

// Taxonomy is an immutable, ordered list of themes.
type Taxonomy struct {
	themes []Theme
	index  map[string]int
}

// New validates the themes and returns a taxonomy preserving their order.
// The input slices are copied.
func New(themes ...Theme) (*Taxonomy, error) {
	t := &Taxonomy{
		themes: make([]Theme, 0, len(themes)),
		index:  make(map[string]int, len(themes)),
	}
	for i, th := range themes {
		if err := validateTheme(th); err != nil {
			return nil, errors.Wrapf(err, "theme %d", i)
		}
		if _, dup := t.index[th.Name]; dup {
			return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "duplicate theme %q", th.Name)
		}
		kws := make([]string, len(th.Keywords))
		copy(kws, th.Keywords)
		t.index[th.Name] = len(t.themes)
		t.themes = append(t.themes, Theme{Name: th.Name, Keywords: kws})
	}
	return t, nil
}

func validateTheme(th Theme) error {
	if strings.TrimSpace(th.Name) == "" {
		return errors.Wrap(internalerr.ErrInvalidConfig, "empty theme name")
	}
	if len(th.Keywords) == 0 {
		return errors.Wrapf(internalerr.ErrInvalidConfig, "theme %q has no keywords", th.Name)
	}
	seen := make(map[string]struct{}, len(th.Keywords))
	for _, kw := range th.Keywords {
		if strings.TrimSpace(kw) == "" || kw != strings.TrimSpace(kw) {
			return errors.Wrapf(internalerr.ErrInvalidConfig, "theme %q: malformed keyword %q", th.Name, kw)
		}
		key := strings.ToLower(kw)
		if _, dup := seen[key]; dup {
			return errors.Wrapf(internalerr.ErrInvalidConfig, "theme %q: duplicate keyword %q", th.Name, kw)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Themes returns a copy of the themes in declaration order.
func (t *Taxonomy) Themes() []Theme {
	out := make([]Theme, len(t.themes))
	for i, th := range t.themes {
		kws := make([]string, len(th.Keywords))
		copy(kws, th.Keywords)
		out[i] = Theme{Name: th.Name, Keywords: kws}
	}
	return out
}

// Len is the number of themes.
func (t *Taxonomy) Len() int { return len(t.themes) }

// Theme looks up a theme by name.
func (t *Taxonomy) Theme(name string) (Theme, bool) {
	i, ok := t.index[name]
	if !ok {
		return Theme{}, false
	}
	return t.Themes()[i], true
}

// ByGroup returns the themes of one group, in declaration order.
func (t *Taxonomy) ByGroup(g Group) []Theme {
	var out []Theme
	for _, th := range t.Themes() {
		if th.Group() == g {
			out = append(out, th)
		}
	}
	return out
}

type file struct {
	Themes []Theme `yaml:"themes"`
}

// Parse reads a taxonomy from YAML.
func Parse(data []byte) (*Taxonomy, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrapf(internalerr.ErrInvalidConfig, "parse taxonomy: %v", err)
	}
	if len(f.Themes) == 0 {
		return nil, errors.Wrap(internalerr.ErrInvalidConfig, "taxonomy has no themes")
	}
	return New(f.Themes...)
}

// Load reads a taxonomy from a YAML file.
func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read taxonomy %s", path)
	}
	return Parse(data)
}

//go:embed default.yaml
var defaultYAML []byte

// Default returns the built-in service/country taxonomy.
func Default() *Taxonomy {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic("taxonomy: invalid built-in taxonomy: " + err.Error())
	}
	return t
}
