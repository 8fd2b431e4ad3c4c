package content

// PersonalInfo describes the site owner.
type PersonalInfo struct {
	Name          string `yaml:"name" json:"name"`
	Title         string `yaml:"title" json:"title"`
	Location      string `yaml:"location" json:"location"`
	Email         string `yaml:"email" json:"email"`
	Phone         string `yaml:"phone,omitempty" json:"phone,omitempty"`
	Bio           string `yaml:"bio" json:"bio"` // markdown
	ShortBio      string `yaml:"short_bio" json:"short_bio"`
	ResumeURL     string `yaml:"resume_url" json:"resume_url"`
	AvatarURL     string `yaml:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CoverImageURL string `yaml:"cover_image_url,omitempty" json:"cover_image_url,omitempty"`
}

// Project is a portfolio project entry.
type Project struct {
	Title        string   `yaml:"title" json:"title"`
	Description  string   `yaml:"description" json:"description"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	GithubURL    string   `yaml:"github_url,omitempty" json:"github_url,omitempty"`
	LiveURL      string   `yaml:"live_url,omitempty" json:"live_url,omitempty"`
	ImageURL     string   `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	Category     string   `yaml:"category" json:"category"`
	Featured     bool     `yaml:"featured" json:"featured"`
}

func (p Project) FilterTitle() string { return p.Title }
func (p Project) FilterCategory() string { return p.Category }
func (p Project) FilterDescription() string { return p.Description }
func (p Project) FilterTags() []string { return p.Technologies }

// Skill is a single skill with a proficiency level from 0 to 100.
type Skill struct {
	Name        string `yaml:"name" json:"name"`
	Level       int    `yaml:"level" json:"level"`
	Years       int    `yaml:"years" json:"years"`
	Category    string `yaml:"category" json:"category"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

func (s Skill) FilterTitle() string { return s.Name }
func (s Skill) FilterCategory() string { return s.Category }
func (s Skill) FilterDescription() string { return s.Description }
func (s Skill) FilterTags() []string { return []string{s.Category} }

// Metric is a headline number attached to an experience entry.
type Metric struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// Experience is a work history entry.
type Experience struct {
	Company      string   `yaml:"company" json:"company"`
	Role         string   `yaml:"role" json:"role"`
	Duration     string   `yaml:"duration" json:"duration"`
	Location     string   `yaml:"location" json:"location"`
	Description  string   `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Technologies []string `yaml:"technologies" json:"technologies"`
	Metrics      []Metric `yaml:"metrics,omitempty" json:"metrics,omitempty"`
}

func (e Experience) FilterTitle() string { return e.Company + " " + e.Role }
func (e Experience) FilterCategory() string { return e.Location }
func (e Experience) FilterDescription() string { return e.Description }
func (e Experience) FilterTags() []string { return e.Technologies }

// ContactInfo is shown beside the contact form.
type ContactInfo struct {
	Email        string `yaml:"email" json:"email"`
	LinkedIn     string `yaml:"linkedin" json:"linkedin"`
	GitHub       string `yaml:"github" json:"github"`
	Twitter      string `yaml:"twitter,omitempty" json:"twitter,omitempty"`
	Website      string `yaml:"website,omitempty" json:"website,omitempty"`
	Location     string `yaml:"location" json:"location"`
	Availability string `yaml:"availability" json:"availability"`
}

// SocialLink is an external profile link.
type SocialLink struct {
	Platform string `yaml:"platform" json:"platform"`
	URL      string `yaml:"url" json:"url"`
}

// SiteConfig holds page metadata.
type SiteConfig struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Keywords    []string `yaml:"keywords" json:"keywords"`
	Author      string   `yaml:"author" json:"author"`
	SiteURL     string   `yaml:"site_url" json:"site_url"`
	OGImage     string   `yaml:"og_image,omitempty" json:"og_image,omitempty"`
}

// Education is the highest degree shown in the about section.
type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Year        string `yaml:"year" json:"year"`
}

// Language is a spoken language with proficiency.
type Language struct {
	Name  string `yaml:"name" json:"name"`
	Level string `yaml:"level" json:"level"`
}

// Document is the on-disk shape of a content file.
type Document struct {
	Personal        PersonalInfo `yaml:"personal"`
	Site            SiteConfig   `yaml:"site"`
	Contact         ContactInfo  `yaml:"contact"`
	Social          []SocialLink `yaml:"social"`
	Experience      []Experience `yaml:"experience"`
	Projects        []Project    `yaml:"projects"`
	Skills          []Skill      `yaml:"skills"`
	Education       Education    `yaml:"education"`
	Languages       []Language   `yaml:"languages"`
	KeyAchievements []string     `yaml:"key_achievements"`
	KeyStrengths    []string     `yaml:"key_strengths"`
}
