package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/openaipro/openaipro/pkg/request"
)

// wizardModels are the choices offered by the init wizard. Any other model
// can still be set by editing the config or passing --model.
var wizardModels = []string{
	"o3-pro",
	"o3-mini",
	"o1-preview",
	"o1-mini",
	"gpt-4o",
	"gpt-4o-mini",
	"gpt-3.5-turbo",
}

// wizardConfig mirrors config.Config but with omitempty tags so the written
// file only contains what the user actually chose.
type wizardConfig struct {
	APIKey          string   `yaml:"api_key,omitempty"` //nolint:gosec // env var reference, not a secret
	Model           string   `yaml:"model,omitempty"`
	ReasoningEffort string   `yaml:"reasoning_effort,omitempty"`
	MaxTokens       int      `yaml:"max_tokens,omitempty"`
	Temperature     *float64 `yaml:"temperature,omitempty"`
	Instructions    string   `yaml:"instructions,omitempty"`
}

// runInit walks the user through a huh form and writes the config file.
func runInit(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("init: %s already exists", path)
	}

	var (
		model        = request.DefaultModel
		effort       string
		maxTokens    string
		temperature  string
		instructions string
		apiKey       = "${OPENAI_API_KEY}"
	)

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Model").
			Options(huh.NewOptions(wizardModels...)...).
			Value(&model),
		huh.NewSelect[string]().
			Title("Reasoning effort").
			Options(
				huh.NewOption("no preference", ""),
				huh.NewOption("low", string(request.EffortLow)),
				huh.NewOption("medium", string(request.EffortMedium)),
				huh.NewOption("high", string(request.EffortHigh)),
			).
			Value(&effort),
		huh.NewInput().
			Title("Max tokens").
			Placeholder("e.g. 2000 (empty for the provider default)").
			Validate(validateOptionalPositiveInt).
			Value(&maxTokens),
		huh.NewInput().
			Title("Temperature").
			Placeholder("0.0-2.0 (empty for the provider default)").
			Validate(validateOptionalTemperature).
			Value(&temperature),
		huh.NewInput().
			Title("Instructions").
			Placeholder("system prompt for o3-pro (empty for the default)").
			Value(&instructions),
		huh.NewInput().
			Title("API key").
			Description("References like ${OPENAI_API_KEY} are expanded from the environment at load time.").
			Value(&apiKey),
	))

	if err := form.Run(); err != nil {
		return err
	}

	cfg := wizardConfig{
		APIKey:          apiKey,
		Model:           model,
		ReasoningEffort: effort,
		Instructions:    instructions,
	}
	if maxTokens != "" {
		cfg.MaxTokens, _ = strconv.Atoi(maxTokens)
	}
	if temperature != "" {
		if f, err := strconv.ParseFloat(temperature, 64); err == nil {
			cfg.Temperature = &f
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("init: marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec // config file, not a secret store
		return fmt.Errorf("init: write config: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)

	return nil
}

func validateOptionalPositiveInt(s string) error {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive integer")
	}
	return nil
}

func validateOptionalTemperature(s string) error {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < request.MinTemperature || f > request.MaxTemperature {
		return fmt.Errorf("must be a number between %g and %g", request.MinTemperature, request.MaxTemperature)
	}
	return nil
}
