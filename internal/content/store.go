package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultContent []byte

// ErrDuplicate is returned when two entries of one collection share a title or name.
var ErrDuplicate = errors.New("duplicate entry")

// Store is a read-only view over portfolio content. Accessors return copies,
// so callers can never mutate what other requests see.
type Store struct {
	doc Document
}

// Default returns the built-in sample content.
func Default() (*Store, error) {
	return Parse(defaultContent)
}

// Load reads content from a YAML file. An empty path yields the built-in content.
func Load(path string) (*Store, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading content %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a content document.
func Parse(data []byte) (*Store, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing content: %w", err)
	}
	if err := validate(&doc); err != nil {
		return nil, err
	}
	return &Store{doc: doc}, nil
}

func validate(doc *Document) error {
	if strings.TrimSpace(doc.Personal.Name) == "" {
		return fmt.Errorf("personal.name is required")
	}

	seen := make(map[string]bool, len(doc.Projects))
	for i, p := range doc.Projects {
		if p.Title == "" {
			return fmt.Errorf("projects[%d]: title is required", i)
		}
		if p.Category == "" {
			return fmt.Errorf("project %q: category is required", p.Title)
		}
		if seen[p.Title] {
			return fmt.Errorf("project %q: %w", p.Title, ErrDuplicate)
		}
		seen[p.Title] = true
	}

	seen = make(map[string]bool, len(doc.Skills))
	for i, sk := range doc.Skills {
		if sk.Name == "" {
			return fmt.Errorf("skills[%d]: name is required", i)
		}
		if sk.Level < 0 || sk.Level > 100 {
			return fmt.Errorf("skill %q: level %d outside 0..100", sk.Name, sk.Level)
		}
		if seen[sk.Name] {
			return fmt.Errorf("skill %q: %w", sk.Name, ErrDuplicate)
		}
		seen[sk.Name] = true
	}

	seen = make(map[string]bool, len(doc.Experience))
	for _, e := range doc.Experience {
		key := e.Company + "/" + e.Role
		if seen[key] {
			return fmt.Errorf("experience %q: %w", key, ErrDuplicate)
		}
		seen[key] = true
	}
	return nil
}

// Personal returns the owner's profile.
func (s *Store) Personal() PersonalInfo { return s.doc.Personal }

// Site returns the page metadata.
func (s *Store) Site() SiteConfig {
	site := s.doc.Site
	site.Keywords = slices.Clone(site.Keywords)
	return site
}

// Contact returns the published contact details.
func (s *Store) Contact() ContactInfo { return s.doc.Contact }

// Education returns the owner's education.
func (s *Store) Education() Education { return s.doc.Education }

// Social returns the social links in source order.
func (s *Store) Social() []SocialLink { return slices.Clone(s.doc.Social) }

// Languages returns the spoken languages in source order.
func (s *Store) Languages() []Language { return slices.Clone(s.doc.Languages) }

// KeyStrengths returns the strengths listed in the About section.
func (s *Store) KeyStrengths() []string { return slices.Clone(s.doc.KeyStrengths) }

// KeyAchievements returns the achievements listed in the About section.
func (s *Store) KeyAchievements() []string { return slices.Clone(s.doc.KeyAchievements) }

// Projects returns all projects in source order.
func (s *Store) Projects() []Project {
	out := make([]Project, len(s.doc.Projects))
	for i, p := range s.doc.Projects {
		p.Technologies = slices.Clone(p.Technologies)
		out[i] = p
	}
	return out
}

// FeaturedProjects returns projects flagged as featured, in source order.
func (s *Store) FeaturedProjects() []Project {
	var out []Project
	for _, p := range s.Projects() {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

// Skills returns all skills in source order.
func (s *Store) Skills() []Skill { return slices.Clone(s.doc.Skills) }

// Experience returns the work history in source order.
func (s *Store) Experience() []Experience {
	out := make([]Experience, len(s.doc.Experience))
	for i, e := range s.doc.Experience {
		e.Achievements = slices.Clone(e.Achievements)
		e.Technologies = slices.Clone(e.Technologies)
		e.Metrics = slices.Clone(e.Metrics)
		out[i] = e
	}
	return out
}
