package model

// RepoConfig is the optional per-repository configuration document.
// Every section and field is optional; zero values mean "not configured".
type RepoConfig struct {
	Meta         *ConfigMeta         `toml:"meta" json:"meta,omitempty"`
	Build        *ConfigBuild        `toml:"build" json:"build,omitempty"`
	Config       *ConfigSample       `toml:"config" json:"config,omitempty"`
	Links        *ConfigLinks        `toml:"links" json:"links,omitempty"`
	Author       *ConfigAuthor       `toml:"author" json:"author,omitempty"`
	Requirements *ConfigRequirements `toml:"requirements" json:"requirements,omitempty"`
	PostBuild    *ConfigPostBuild    `toml:"post-build" json:"post-build,omitempty"`
	Tags         []string            `toml:"tags" json:"tags,omitempty"`
	Deployment   *Deployment         `toml:"deployment" json:"deployment,omitempty"`
}

// ConfigMeta holds the display metadata overrides.
type ConfigMeta struct {
	Title       string `toml:"title" json:"title,omitempty"`
	Description string `toml:"description" json:"description,omitempty"`
	Author      string `toml:"author" json:"author,omitempty"`
	UseCase     string `toml:"useCase" json:"useCase,omitempty"`
	Language    string `toml:"language" json:"language,omitempty"`
	Framework   string `toml:"framework" json:"framework,omitempty"`
}

type ConfigBuild struct {
	Command string `toml:"command" json:"command,omitempty"`
}

// ConfigSample describes the sample input and expected output of a starter.
type ConfigSample struct {
	Sample string `toml:"sample" json:"sample,omitempty"`
	Output string `toml:"output" json:"output,omitempty"`
}

type ConfigLinks struct {
	Docs  string `toml:"docs" json:"docs,omitempty"`
	Demo  string `toml:"demo" json:"demo,omitempty"`
	Video string `toml:"video" json:"video,omitempty"`
}

type ConfigAuthor struct {
	Name   string `toml:"name" json:"name,omitempty"`
	Email  string `toml:"email" json:"email,omitempty"`
	GitHub string `toml:"github" json:"github,omitempty"`
}

type ConfigRequirements struct {
	Node         string   `toml:"node" json:"node,omitempty"`
	Python       string   `toml:"python" json:"python,omitempty"`
	Dependencies []string `toml:"dependencies" json:"dependencies,omitempty"`
}

type ConfigPostBuild struct {
	Message string `toml:"message" json:"message,omitempty"`
}

// Deployment lists supported platforms. Nothing consumes it yet; it is
// carried through to the display record unchanged.
type Deployment struct {
	Platforms    []string `toml:"platforms" json:"platforms,omitempty"`
	Requirements []string `toml:"requirements" json:"requirements,omitempty"`
}

// ConfigStatus is the outcome of looking up a repository's configuration.
type ConfigStatus string

const (
	ConfigLoaded      ConfigStatus = "loaded"
	ConfigMissing     ConfigStatus = "missing"     // File not present (404).
	ConfigUnavailable ConfigStatus = "unavailable" // Transport error or non-success status.
	ConfigInvalid     ConfigStatus = "invalid"     // Undecodable payload or malformed TOML.
)

// RepoWithConfig pairs a repository with the result of its config lookup.
// Config is nil for every status other than ConfigLoaded.
type RepoWithConfig struct {
	Repo   Repository
	Config *RepoConfig
	Status ConfigStatus
}
