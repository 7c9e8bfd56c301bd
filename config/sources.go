package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// NewsSource is one RSS feed plus the CSS selector locating article bodies on
// that site.
type NewsSource struct {
	Name            string `yaml:"name"`
	RSSURL          string `yaml:"rssUrl"`
	ArticleSelector string `yaml:"articleSelector"`
}

func DefaultNewsSources() []NewsSource {
	return []NewsSource{
		{
			Name:            "VentureBeat",
			RSSURL:          "https://venturebeat.com/feed/",
			ArticleSelector: "div.article-content",
		},
		{
			Name:            "TechCrunch",
			RSSURL:          "https://techcrunch.com/feed/",
			ArticleSelector: "div.entry-content",
		},
	}
}

func LoadNewsSourcesFromFile(file string) ([]NewsSource, error) {
	yamlBytes, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %s", file)
	}

	var sources []NewsSource
	if err := yaml.Unmarshal(yamlBytes, &sources); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal file %s", file)
	}

	return sources, nil
}
