package panel

import (
	"context"
	"crypto/sha256"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	v1 "github.com/aevon-lab/salary-crossfilter/internal/api/v1"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// Predicate matches records whose field equals a value.
type Predicate struct {
	Field  string `yaml:"field" json:"field"`
	Equals string `yaml:"equals" json:"equals,omitempty"`
}

// Panel is one dashboard view definition.
type Panel struct {
	Name        string     `yaml:"name" json:"name"`
	Title       string     `yaml:"title" json:"title"`
	Kind        string     `yaml:"kind" json:"kind"`
	Order       int        `yaml:"order" json:"order"`
	Dimension   string     `yaml:"dimension" json:"dimension,omitempty"`   // grouping field
	Measure     string     `yaml:"measure" json:"measure,omitempty"`       // averaged field
	Condition   *Predicate `yaml:"condition" json:"condition,omitempty"`   // conditional_ratio population
	Match       *Predicate `yaml:"match" json:"match,omitempty"`           // counted subset / stacked field
	Categories  []string   `yaml:"categories" json:"categories,omitempty"` // match_ratio stack members
	Fields      []string   `yaml:"fields" json:"fields,omitempty"`         // tuple: x, y, category, category
	Fingerprint string     `yaml:"-" json:"fingerprint"`                   // SHA-256 of the raw YAML file
}

// Repository provides the panel definitions a dashboard is built from.
type Repository interface {
	// List returns every panel ordered by Order, then Name.
	List(ctx context.Context) ([]Panel, error)
}

// FileSystemRepository loads panel definitions from *.yaml files, one panel
// per file. Definitions are loaded once and cached in memory.
type FileSystemRepository struct {
	source string
	panels map[string]Panel
}

// NewFileSystemRepository loads every panel in dir. A missing directory falls
// back to the embedded default panel set.
func NewFileSystemRepository(dir string) (*FileSystemRepository, error) {
	if dir == "" {
		return NewDefaultRepository()
	}
	fsys := os.DirFS(dir)
	if _, err := fs.Stat(fsys, "."); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewDefaultRepository()
		}
		return nil, fmt.Errorf("panel dir: %w", err)
	}
	return load(dir, fsys, ".")
}

// NewDefaultRepository returns the built-in salary dashboard panels.
func NewDefaultRepository() (*FileSystemRepository, error) {
	return load("embedded defaults", defaultFiles, "defaults")
}

func load(source string, fsys fs.FS, dir string) (*FileSystemRepository, error) {
	repo := &FileSystemRepository{
		source: source,
		panels: make(map[string]Panel),
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading panel dir %s: %w", source, err)
	}

	for _, e := range entries {
		if e.IsDir() || (!strings.HasSuffix(e.Name(), ".yaml") && !strings.HasSuffix(e.Name(), ".yml")) {
			continue
		}

		file := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("reading panel file %s: %w", file, err)
		}

		var p Panel
		if err := yaml.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("parsing panel file %s: %w", file, err)
		}
		if p.Name == "" {
			continue // empty or comment-only file
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("panel file %s: %w", file, err)
		}
		if _, exists := repo.panels[p.Name]; exists {
			return nil, fmt.Errorf("panel %q: duplicate panel name (check multiple YAML files)", p.Name)
		}

		p.Fingerprint = fmt.Sprintf("%x", sha256.Sum256(data))
		repo.panels[p.Name] = p
	}
	return repo, nil
}

// Validate checks the panel against the requirements of its kind.
func (p *Panel) Validate() error {
	spec, ok := Kinds[p.Kind]
	if !ok {
		return fmt.Errorf("panel %q: unsupported kind %q", p.Name, p.Kind)
	}

	if spec.NeedsDimension && !isField(p.Dimension) {
		return fmt.Errorf("panel %q: dimension %q is not a record field", p.Name, p.Dimension)
	}
	if spec.NeedsMeasure && !v1.IsMeasure(p.Measure) {
		return fmt.Errorf("panel %q: measure %q is not a numeric field", p.Name, p.Measure)
	}
	if spec.NeedsCondition {
		if p.Condition == nil || !v1.IsCategory(p.Condition.Field) || p.Condition.Equals == "" {
			return fmt.Errorf("panel %q: condition needs a categorical field and a value", p.Name)
		}
	}
	if spec.NeedsMatch {
		if p.Match == nil || !v1.IsCategory(p.Match.Field) {
			return fmt.Errorf("panel %q: match needs a categorical field", p.Name)
		}
		if !spec.NeedsCategories && p.Match.Equals == "" {
			return fmt.Errorf("panel %q: match needs a value", p.Name)
		}
	}
	if spec.NeedsCategories && len(p.Categories) == 0 {
		return fmt.Errorf("panel %q: categories must not be empty", p.Name)
	}
	if spec.NeedsFields {
		if len(p.Fields) != 4 ||
			!v1.IsMeasure(p.Fields[0]) || !v1.IsMeasure(p.Fields[1]) ||
			!v1.IsCategory(p.Fields[2]) || !v1.IsCategory(p.Fields[3]) {
			return fmt.Errorf("panel %q: fields must be [measure, measure, category, category]", p.Name)
		}
	}
	return nil
}

// List returns every panel ordered by Order, then Name.
func (r *FileSystemRepository) List(_ context.Context) ([]Panel, error) {
	return r.Panels(), nil
}

// Panels returns every panel ordered by Order, then Name.
func (r *FileSystemRepository) Panels() []Panel {
	out := make([]Panel, 0, len(r.panels))
	for _, p := range r.panels {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Source describes where the panels were loaded from.
func (r *FileSystemRepository) Source() string { return r.source }

func isField(field string) bool {
	return v1.IsCategory(field) || v1.IsMeasure(field)
}
