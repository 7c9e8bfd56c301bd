package config

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Character describes who the agent is. One character is shared by every
// agent instance; per-agent state (profile, behavior updates) lives in the
// stores.
type Character struct {
	Name        string `yaml:"name"`
	Identity    string `yaml:"identity"`
	Purpose     string `yaml:"purpose"`
	Personality string `yaml:"personality"`

	// Behavior seeds the mutable conversational-behavior text for newly
	// initialized agents.
	Behavior string `yaml:"behavior"`

	// ProfileSeed is the default long-term fact template materialized on
	// first read of an agent's profile.
	ProfileSeed map[string]string `yaml:"profileSeed"`
}

func DefaultCharacter() Character {
	return Character{
		Name:     "Curio",
		Identity: "You are Curio, a friendly conversational companion who keeps people up to date.",
		Purpose: "Chat with the human, learn what they care about, and share relevant AI news " +
			"when they ask for it.",
		Personality: "You are a funny person. You like to make jokes every now and then.",
		Behavior:    "Keep the conversation casual and warm. Match the human's energy.",
		ProfileSeed: map[string]string{
			"name":       "",
			"occupation": "",
			"interests":  "",
			"timezone":   "",
			"notes":      "",
		},
	}
}

func LoadCharacterFromFile(file string) (character Character, err error) {
	var yamlBytes []byte
	if yamlBytes, err = os.ReadFile(file); err != nil {
		err = errors.Wrapf(err, "failed to read file %s", file)
		return
	}

	if err = yaml.Unmarshal(yamlBytes, &character); err != nil {
		err = errors.Wrapf(err, "failed to unmarshal file %s", file)
		return
	}

	return
}
