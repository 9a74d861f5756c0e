package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .docs-addon.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to docs-addon! Let's configure your document viewer.")
	fmt.Println()

	defaults := DefaultConfig()

	// 1. Documents root.
	rootPrompt := promptui.Prompt{
		Label:   "Documents root directory",
		Default: suggestDocsRoot(defaults.DocsRoot),
	}
	docsRoot, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("docs root: %w", err)
	}

	// 2. Listen port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP port",
		Default: strconv.Itoa(defaults.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	port, _ := strconv.Atoi(portStr)

	// 3. Default document.
	docPrompt := promptui.Prompt{
		Label:   "Default document (relative to root)",
		Default: defaults.DefaultDocument,
	}
	defaultDoc, err := docPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default document: %w", err)
	}

	// 4. Uploads.
	uploadPrompt := promptui.Select{
		Label: "Enable uploads",
		Items: []string{"yes", "no"},
	}
	uploadIdx, _, err := uploadPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("upload selection: %w", err)
	}

	cfg := &Config{
		DocsRoot:        docsRoot,
		Port:            port,
		DefaultDocument: defaultDoc,
		ExcludeFiles:    DefaultExcludeFiles,
		ExcludeFolders:  DefaultExcludeFolders,
		LogLevel:        defaults.LogLevel,
		Upload: Upload{
			Enabled:    uploadIdx == 0,
			MaxBodyMiB: defaults.Upload.MaxBodyMiB,
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	configPath := ".docs-addon.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// suggestDocsRoot falls back to the working directory when the container
// mount point does not exist (local development).
func suggestDocsRoot(mount string) string {
	if _, err := os.Stat(mount); err == nil {
		return mount
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
