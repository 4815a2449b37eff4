package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ModelBinding khai báo một model giá nhà đang serve.
type ModelBinding struct {
	Name             string  `yaml:"name" json:"name"`
	Endpoint         string  `yaml:"endpoint" json:"endpoint"`
	R2               float64 `yaml:"r2" json:"r2"`
	RenameUnderscore bool    `yaml:"rename_underscore" json:"rename_underscore"`
}

// ConfidenceCfg clamp cho confidence heuristic r2*100.
type ConfidenceCfg struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// LLMCfg endpoint chat OpenAI-compatible cho parse mô tả tự do.
// API key đọc từ env, không nằm trong file.
type LLMCfg struct {
	Endpoint  string `yaml:"endpoint" json:"endpoint"`
	Model     string `yaml:"model" json:"model"`
	TimeoutMs int    `yaml:"timeout_ms" json:"timeout_ms"`
}

// PricerCfg cấu hình mức pipeline, load từ YAML một lần lúc startup.
type PricerCfg struct {
	FuzzyThreshold float64        `yaml:"fuzzy_threshold" json:"fuzzy_threshold"`
	DefaultModel   string         `yaml:"default_model" json:"default_model"`
	Confidence     ConfidenceCfg  `yaml:"confidence" json:"confidence"`
	Models         []ModelBinding `yaml:"models" json:"models"`
	LLM            LLMCfg         `yaml:"llm" json:"llm"`
}

var C PricerCfg

// Load đọc file cấu hình pipeline vào config.C, rồi áp env override.
func Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, &C); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	applyDefaults(&C)

	// ENV overrides
	if v := os.Getenv("DEFAULT_MODEL"); v != "" {
		C.DefaultModel = v
	}
	if v := os.Getenv("LLM_ENDPOINT"); v != "" {
		C.LLM.Endpoint = v
	}
	return nil
}

func applyDefaults(c *PricerCfg) {
	if c.FuzzyThreshold == 0 {
		c.FuzzyThreshold = 0.92
	}
	if c.DefaultModel == "" {
		c.DefaultModel = "lightgbm"
	}
	if c.Confidence.Min == 0 {
		c.Confidence.Min = 70
	}
	if c.Confidence.Max == 0 {
		c.Confidence.Max = 95
	}
	if c.LLM.TimeoutMs == 0 {
		c.LLM.TimeoutMs = 8000
	}
	if len(c.Models) == 0 {
		c.Models = []ModelBinding{
			{Name: "lightgbm", R2: 0.89, RenameUnderscore: true},
			{Name: "xgboost", R2: 0.87},
			{Name: "random_forest", R2: 0.84},
		}
	}
}

// Default trả cấu hình mặc định, dùng khi không có file (test, demo).
func Default() PricerCfg {
	var c PricerCfg
	applyDefaults(&c)
	return c
}
