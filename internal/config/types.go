package config

// Config is the top-level docs-addon configuration, corresponding to
// .docs-addon.yml (or the options file the supervisor mounts into the
// container).
type Config struct {
	DocsRoot        string   `yaml:"docs_root" koanf:"docs_root"`
	Port            int      `yaml:"port" koanf:"port"`
	IngressBaseURL  string   `yaml:"ingress_base_url" koanf:"ingress_base_url"`
	DefaultDocument string   `yaml:"default_document" koanf:"default_document"`
	ExcludeFiles    []string `yaml:"exclude_files" koanf:"exclude_files"`
	ExcludeFolders  []string `yaml:"exclude_folders" koanf:"exclude_folders"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	LogLevel        string   `yaml:"log_level" koanf:"log_level"`
	Upload          Upload   `yaml:"upload" koanf:"upload"`
}

// Upload holds upload endpoint settings.
type Upload struct {
	Enabled    bool  `yaml:"enabled" koanf:"enabled"`
	MaxBodyMiB int64 `yaml:"max_body_mib" koanf:"max_body_mib"`
}
