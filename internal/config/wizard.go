package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// glossaryChoices are the glossary sources offered by the wizard, in the
// order they are listed.
var glossaryChoices = []struct {
	Source GlossarySource
	Label  string
}{
	{GlossaryBuiltin, "builtin: the embedded model-training glossary"},
	{GlossaryFile, "file: a YAML or JSON glossary in this project"},
	{GlossaryDB, "db: a SQLite store filled by `termlink import`"},
}

// detectContentDir returns the first conventional lesson directory present
// in the working directory.
func detectContentDir() string {
	for _, dir := range []string{"lessons", "content", "docs"} {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "lessons"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to termlink! Let's configure your lessons.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Content directory.
	contentPrompt := promptui.Prompt{
		Label:   "Lesson directory",
		Default: detectContentDir(),
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)

	// 2. Glossary source.
	labels := make([]string, len(glossaryChoices))
	for i, c := range glossaryChoices {
		labels[i] = c.Label
	}
	sourcePrompt := promptui.Select{
		Label: "Select glossary source",
		Items: labels,
	}
	idx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("glossary source: %w", err)
	}

	switch glossaryChoices[idx].Source {
	case GlossaryFile:
		filePrompt := promptui.Prompt{
			Label:   "Glossary file",
			Default: "glossary.yml",
		}
		cfg.GlossaryFile, err = filePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("glossary file: %w", err)
		}
		if _, err := os.Stat(cfg.GlossaryFile); os.IsNotExist(err) {
			fmt.Printf("\nNote: %s does not exist yet. Create it before running termlink build.\n", cfg.GlossaryFile)
		}
	case GlossaryDB:
		dbPrompt := promptui.Prompt{
			Label:   "Glossary database",
			Default: ".termlink/glossary.db",
		}
		cfg.GlossaryDB, err = dbPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("glossary database: %w", err)
		}
		fmt.Printf("\nNote: run `termlink import <file>` to fill %s.\n", cfg.GlossaryDB)
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "Port for termlink serve",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(input string) error {
	port, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}
