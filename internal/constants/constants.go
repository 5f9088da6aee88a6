package constants

const (
	Version        = `0.1.0`
	ConfigFile     = `quill`
	ConfigFileType = `yaml`
	ConfigDir      = `/.quill/`
)
