package policy

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/prguard/prguard/pkg/domain/model"
)

// file mirrors the release notes configuration shape GitHub uses in
// .github/release.yml. A TOML rendition of the same shape is also accepted.
type file struct {
	Changelog struct {
		Exclude struct {
			Labels []string `yaml:"labels" toml:"labels"`
		} `yaml:"exclude" toml:"exclude"`
		Categories []struct {
			Title  string   `yaml:"title" toml:"title"`
			Labels []string `yaml:"labels" toml:"labels"`
		} `yaml:"categories" toml:"categories"`
	} `yaml:"changelog" toml:"changelog"`
}

// Load reads a changelog policy file, choosing the parser by extension.
func Load(path string) (*model.ChangelogPolicy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", path))
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(raw, &f); err != nil {
			return nil, goerr.Wrap(err, "failed to parse policy YAML", goerr.V("path", path))
		}
	case ".toml":
		if err := toml.Unmarshal(raw, &f); err != nil {
			return nil, goerr.Wrap(err, "failed to parse policy TOML", goerr.V("path", path))
		}
	default:
		return nil, goerr.New("unsupported policy file extension", goerr.V("path", path), goerr.V("ext", ext))
	}

	if len(f.Changelog.Categories) == 0 {
		return nil, goerr.New("policy defines no changelog categories", goerr.V("path", path))
	}

	p := &model.ChangelogPolicy{
		Exclude: f.Changelog.Exclude.Labels,
	}
	for _, c := range f.Changelog.Categories {
		p.Categories = append(p.Categories, model.Category{
			Title:  c.Title,
			Labels: c.Labels,
		})
	}

	return p, nil
}
