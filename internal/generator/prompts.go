package generator

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Prompts holds the instruction and prompt templates for model-backed
// generation. Templates use fmt verbs; see OrderPrompt and InventoryPrompt
// for the argument order.
type Prompts struct {
	BaseInstructions    string `yaml:"base_instructions"`
	OrderGeneration     string `yaml:"order_generation"`
	InventoryGeneration string `yaml:"inventory_generation"`
}

// LoadPrompts returns the prompt set from path, or the embedded defaults
// when path is empty.
func LoadPrompts(path string) (*Prompts, error) {
	data := defaultPrompts
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read prompts file: %w", err)
		}
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}
	if p.BaseInstructions == "" || p.OrderGeneration == "" || p.InventoryGeneration == "" {
		return nil, fmt.Errorf("prompts file is missing required templates")
	}
	return &p, nil
}

// OrderPrompt renders the order generation prompt.
func (p *Prompts) OrderPrompt(count, dateRangeDays int, productsJSON string) string {
	return fmt.Sprintf(p.OrderGeneration, count, dateRangeDays, productsJSON)
}

// InventoryPrompt renders the inventory adjustment prompt.
func (p *Prompts) InventoryPrompt(count, min, max int, productsJSON string) string {
	return fmt.Sprintf(p.InventoryGeneration, count, min, max, productsJSON)
}
