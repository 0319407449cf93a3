package config

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/zht7063/iblog/internal/corpus"
	"github.com/zht7063/iblog/internal/metadata"
)

// Config is the complete site configuration tree loaded from config.yaml.
// Values are resolved once before the pipeline runs and treated as read-only
// afterwards; every component receives the slice of configuration it needs as
// an explicit parameter rather than reading ambient state.
type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Navigation NavigationConfig `yaml:"navigation"`
	Footer     FooterConfig     `yaml:"footer"`
	Theme      ThemeConfig      `yaml:"theme"`
	Features   FeaturesConfig   `yaml:"features"`
	Paths      PathsConfig      `yaml:"paths"`
	Posts      PostsConfig      `yaml:"posts"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Templates  TemplatesConfig  `yaml:"templates"`
	Logging    LoggingConfig    `yaml:"logging"`
	Build      BuildConfig      `yaml:"build"`
}

// SiteConfig carries site-wide identity shown in page chrome.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Subtitle    string `yaml:"subtitle"`
	Author      string `yaml:"author"`
	StartDate   string `yaml:"start_date"`
	Description string `yaml:"description"`
	Language    string `yaml:"language"`
	URL         string `yaml:"url"`
}

// NavigationItem is one entry in the top navigation bar.
type NavigationItem struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

// NavigationConfig configures the navigation bar.
type NavigationConfig struct {
	Items []NavigationItem `yaml:"items"`
}

// SocialLink is one footer social link.
type SocialLink struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	Icon string `yaml:"icon"`
}

// FooterConfig configures the page footer.
type FooterConfig struct {
	Copyright     string       `yaml:"copyright"`
	ShowPoweredBy bool         `yaml:"show_powered_by"`
	PoweredByText string       `yaml:"powered_by_text"`
	ShowPostCount bool         `yaml:"show_post_count"`
	SocialLinks   []SocialLink `yaml:"social_links"`
}

// ThemeConfig holds presentation values passed verbatim into the template
// context. The generator never interprets them.
type ThemeConfig struct {
	Colors map[string]string `yaml:"colors"`
	Layout map[string]string `yaml:"layout"`
	Fonts  map[string]string `yaml:"fonts"`
	CDN    map[string]string `yaml:"cdn"`
}

// GeneratorsConfig toggles individual page generators.
type GeneratorsConfig struct {
	Index      bool `yaml:"index"`
	Posts      bool `yaml:"posts"`
	Categories bool `yaml:"categories"`
	Tags       bool `yaml:"tags"`
	About      bool `yaml:"about"`
}

// PostCardConfig controls which metadata the listing cards display.
type PostCardConfig struct {
	ShowDescription bool `yaml:"show_description"`
	ShowCategory    bool `yaml:"show_category"`
	ShowTags        bool `yaml:"show_tags"`
	ShowDate        bool `yaml:"show_date"`
	ShowUpdated     bool `yaml:"show_updated"`
}

// FeaturesConfig groups feature toggles.
type FeaturesConfig struct {
	Generators GeneratorsConfig `yaml:"generators"`
	PostCard   PostCardConfig   `yaml:"post_card"`
}

// OutputPathsConfig names the output subdirectories for each page family.
type OutputPathsConfig struct {
	Posts      string `yaml:"posts"`
	Categories string `yaml:"categories"`
	Tags       string `yaml:"tags"`
	About      string `yaml:"about"`
	Assets     string `yaml:"assets"`
}

// PathsConfig groups path configuration.
type PathsConfig struct {
	Output OutputPathsConfig `yaml:"output"`
}

// SortConfig selects the listing order for posts.
type SortConfig struct {
	By    string `yaml:"by"`
	Order string `yaml:"order"`
}

// DefaultsConfig supplies fallback metadata for posts missing front matter.
type DefaultsConfig struct {
	Category string   `yaml:"category"`
	Tags     []string `yaml:"tags"`
	Author   string   `yaml:"author"`
}

// PostsConfig groups post-related configuration.
type PostsConfig struct {
	Sort     SortConfig     `yaml:"sort"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// MarkdownConfig customises the Markdown engine.
type MarkdownConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	Sanitize   bool     `yaml:"sanitize"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// TemplatesConfig locates the template directory.
type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig configures the go-logger provider.
type LoggingConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"add_source"`
}

// BuildConfig controls build behaviour.
type BuildConfig struct {
	CleanOutput bool     `yaml:"clean_output"`
	CopyAssets  bool     `yaml:"copy_assets"`
	Exclude     []string `yaml:"exclude"`
	Parallel    bool     `yaml:"parallel"`
	Workers     int      `yaml:"workers"`
}

// DefaultConfig returns the configuration applied before config.yaml values
// are merged in.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Language: "en",
		},
		Footer: FooterConfig{
			ShowPoweredBy: true,
			PoweredByText: "iblog",
			ShowPostCount: true,
		},
		Features: FeaturesConfig{
			Generators: GeneratorsConfig{
				Index:      true,
				Posts:      true,
				Categories: true,
				Tags:       true,
				About:      true,
			},
			PostCard: PostCardConfig{
				ShowDescription: true,
				ShowCategory:    true,
				ShowTags:        true,
				ShowDate:        true,
				ShowUpdated:     true,
			},
		},
		Paths: PathsConfig{
			Output: OutputPathsConfig{
				Posts:      "blogs",
				Categories: "categories",
				Tags:       "tags",
				About:      "about",
				Assets:     "assets",
			},
		},
		Posts: PostsConfig{
			Sort: SortConfig{
				By:    "date",
				Order: "desc",
			},
			Defaults: DefaultsConfig{
				Category: "uncategorized",
				Tags:     []string{},
			},
		},
		Templates: TemplatesConfig{
			Dir: "templates",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Build: BuildConfig{
			Exclude: []string{"*.tmp", "*.draft", "_*", ".git"},
		},
	}
}

// Validate checks recognized-but-out-of-range values. A failure here is fatal
// at startup, before any document is processed; values are never silently
// defaulted.
func (c Config) Validate() error {
	return validation.Errors{
		"posts.sort.by": validation.Validate(c.Posts.Sort.By,
			validation.Required,
			validation.In("date", "updated", "title"),
		),
		"posts.sort.order": validation.Validate(c.Posts.Sort.Order,
			validation.Required,
			validation.In("asc", "desc"),
		),
		"logging.level": validation.Validate(c.Logging.Level,
			validation.In("trace", "debug", "info", "warn", "warning", "error", "fatal"),
		),
		"logging.format": validation.Validate(c.Logging.Format,
			validation.In("console", "json", "pretty"),
		),
		"build.workers": validation.Validate(c.Build.Workers,
			validation.Min(0),
		),
	}.Filter()
}

// SortSpec resolves the configured sort key and direction into their typed
// forms. Validate catches out-of-range values first, so errors here indicate
// the config was never validated.
func (c Config) SortSpec() (corpus.SortKey, corpus.SortOrder, error) {
	key, err := corpus.ParseSortKey(c.Posts.Sort.By)
	if err != nil {
		return "", "", err
	}
	order, err := corpus.ParseSortOrder(c.Posts.Sort.Order)
	if err != nil {
		return "", "", err
	}
	return key, order, nil
}

// MetadataDefaults resolves the per-post defaults handed to the normalizer,
// including the site-wide author fallback.
func (c Config) MetadataDefaults() metadata.Defaults {
	return metadata.Defaults{
		Category:   c.Posts.Defaults.Category,
		Tags:       append([]string(nil), c.Posts.Defaults.Tags...),
		Author:     c.Posts.Defaults.Author,
		SiteAuthor: c.Site.Author,
	}
}
