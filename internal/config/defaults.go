package config

// DefaultExcludeFiles are file name patterns hidden from folder listings.
// Patterns may use * and ? wildcards.
var DefaultExcludeFiles = []string{
	".DS_Store",
	"Thumbs.db",
	"*.swp",
}

// DefaultExcludeFolders are folder name patterns hidden from folder listings.
var DefaultExcludeFolders = []string{
	"__pycache__",
	".venv",
	".git",
	".*cache",
	"$RECYCLE.BIN",
	"node_modules",
}

// DefaultConfig returns a Config with sensible defaults. DocsRoot matches the
// path the add-on container mounts the Home Assistant docs share at.
func DefaultConfig() *Config {
	return &Config{
		DocsRoot:        "/config/docs",
		Port:            8099,
		DefaultDocument: "index.md",
		ExcludeFiles:    DefaultExcludeFiles,
		ExcludeFolders:  DefaultExcludeFolders,
		LogLevel:        "info",
		Upload: Upload{
			Enabled:    true,
			MaxBodyMiB: 64,
		},
	}
}
