package types

// VersionData holds the metadata a registry publishes for a single version of
// a package. The resolver treats it as opaque; the fields exist so a registry
// response can be decoded in one pass.
type VersionData struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	Dist         Dist              `json:"dist"`
}

// Dist describes where the tarball for a version can be retrieved from.
type Dist struct {
	Tarball string `json:"tarball"`
	Shasum  string `json:"shasum"`
}

// PackageInfo is the full listing a registry has published for one package,
// keyed by version string.
type PackageInfo struct {
	Name     string                 `json:"name"`
	Versions map[string]VersionData `json:"versions"`
}
