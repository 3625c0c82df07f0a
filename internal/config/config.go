// Package config holds the assistant's settings. Provider model names are
// opaque pass-through values surfaced to the conversational runtime; the
// core never interprets them.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the yaml-serializable assistant configuration.
type Config struct {
	DataDir      string `yaml:"data_dir"`
	ServerName   string `yaml:"server_name"`
	Instructions string `yaml:"instructions"`
	STTModel     string `yaml:"stt_model"`
	LLMModel     string `yaml:"llm_model"`
	TTSVoice     string `yaml:"tts_voice"`
}

const defaultInstructions = "You are an enthusiastic and supportive to-do list assistant. " +
	"Help users plan their day, track their tasks, and stay motivated. " +
	"Celebrate completed tasks, suggest priorities when asked, and keep " +
	"responses brief, conversational, and warm. Greet users by asking what " +
	"they want to accomplish today."

// Default returns the built-in configuration.
func Default() *Config {
	dataDir := ".todovoice"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".todovoice")
	}
	return &Config{
		DataDir:      dataDir,
		ServerName:   "todovoice",
		Instructions: defaultInstructions,
		STTModel:     "nova-2",
		LLMModel:     "gpt-4.1-mini",
		TTSVoice:     "echo",
	}
}

// Load reads a yaml config file over the defaults. A missing file is not
// an error; a malformed one is, since config is developer input rather
// than runtime state. The LLM_CHOICE environment variable overrides the
// configured model, matching how deployments select models today.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if model := os.Getenv("LLM_CHOICE"); model != "" {
		cfg.LLMModel = model
	}
	return cfg, nil
}

// TasksPath returns the durable task file location.
func (c *Config) TasksPath() string {
	return filepath.Join(c.DataDir, "tasks.json")
}
