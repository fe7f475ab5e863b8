package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"forum-sentiment/internal/entity"
)

// Default output names match the files earlier versions of the tool wrote
const (
	DefaultSubreddit    = "IndianStreetBets"
	DefaultCSVFile      = "isb_sentiment_summary.csv"
	DefaultMarkdownFile = "isb_sentiment_report.md"
)

var topPeriods = []string{"hour", "day", "week", "month", "year", "all"}

type Config struct {
	Subreddit string `yaml:"subreddit" validate:"required"`
	Limits    struct {
		HotPosts        int    `yaml:"hot_posts" validate:"gte=0,lte=1000"`
		TopPosts        int    `yaml:"top_posts" validate:"gte=0,lte=1000"`
		TopPeriod       string `yaml:"top_period"`
		CommentsPerPost int    `yaml:"comments_per_post" validate:"gte=0"`
	} `yaml:"limits"`
	Vocabulary struct {
		Entities            []string           `yaml:"entities"`
		Lexicon             map[string]float64 `yaml:"lexicon"`
		ValidateInstruments bool               `yaml:"validate_instruments"`
		Exchange            string             `yaml:"exchange"`
	} `yaml:"vocabulary"`
	Reddit struct {
		AuthURL           string `yaml:"auth_url" validate:"required,url"`
		APIURL            string `yaml:"api_url" validate:"required,url"`
		TimeoutSeconds    int    `yaml:"timeout_seconds" validate:"gt=0"`
		RequestsPerMinute int    `yaml:"requests_per_minute" validate:"gt=0"`
	} `yaml:"reddit"`
	Enrich struct {
		Enabled        bool `yaml:"enabled"`
		TimeoutSeconds int  `yaml:"timeout_seconds" validate:"gte=0"`
		MaxChars       int  `yaml:"max_chars" validate:"gte=0"`
	} `yaml:"enrich"`
	Output struct {
		Dir                string `yaml:"dir"`
		CSVFile            string `yaml:"csv_file" validate:"required"`
		MarkdownFile       string `yaml:"markdown_file" validate:"required"`
		HTMLFile           string `yaml:"html_file"`
		MetricsFile        string `yaml:"metrics_file"`
		ItemsDir           string `yaml:"items_dir"`
		ItemsRetentionDays int    `yaml:"items_retention_days" validate:"gte=0"`
	} `yaml:"output"`
}

// DefaultConfig returns the configuration used when no file is present.
// LoadConfig decodes the file over it, so keys set to zero stay zero.
func DefaultConfig() *Config {
	c := &Config{Subreddit: DefaultSubreddit}

	c.Limits.HotPosts = 25
	c.Limits.TopPosts = 50
	c.Limits.TopPeriod = "week"
	c.Limits.CommentsPerPost = 20

	c.Vocabulary.Entities = append([]string(nil), entity.DefaultEntities...)
	c.Vocabulary.Exchange = "NSE"

	c.Reddit.AuthURL = "https://www.reddit.com/api/v1/access_token"
	c.Reddit.APIURL = "https://oauth.reddit.com"
	c.Reddit.TimeoutSeconds = 30
	c.Reddit.RequestsPerMinute = 60

	c.Enrich.TimeoutSeconds = 10
	c.Enrich.MaxChars = 2000

	c.Output.Dir = "."
	c.Output.CSVFile = DefaultCSVFile
	c.Output.MarkdownFile = DefaultMarkdownFile

	return c
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if !contains(topPeriods, c.Limits.TopPeriod) {
		return fmt.Errorf("limits.top_period must be one of %s, got '%s'", strings.Join(topPeriods, ", "), c.Limits.TopPeriod)
	}
	if c.Limits.HotPosts == 0 && c.Limits.TopPosts == 0 {
		return errors.New("limits.hot_posts and limits.top_posts cannot both be zero")
	}
	if _, err := entity.NewVocabulary(c.Vocabulary.Entities); err != nil {
		return fmt.Errorf("vocabulary.entities: %w", err)
	}
	if c.Output.CSVFile == c.Output.MarkdownFile {
		return fmt.Errorf("output.csv_file and output.markdown_file must differ, both are '%s'", c.Output.CSVFile)
	}
	return nil
}

// LoadConfig reads a YAML config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (*Config, error) {
	c := DefaultConfig()

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return c, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
