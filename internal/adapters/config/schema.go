package config

// Libfile represents the structure of the libpack.yaml configuration file.
type Libfile struct {
	Name        string          `yaml:"name"`
	Version     string          `yaml:"version"`
	Root        string          `yaml:"root"`
	Dest        string          `yaml:"dest"`
	TsConfig    TsConfigDTO     `yaml:"tsconfig"`
	Toolchain   ToolchainDTO    `yaml:"toolchain"`
	EntryPoints []EntryPointDTO `yaml:"entryPoints"`
}

// TsConfigDTO represents the compiler settings shared by every entry point.
type TsConfigDTO struct {
	Project    string              `yaml:"project"`
	BaseURL    string              `yaml:"baseUrl"`
	Target     string              `yaml:"target"`
	EnableShim bool                `yaml:"enableShim"`
	Paths      map[string][]string `yaml:"paths"`
	Options    map[string]string   `yaml:"options"`
}

// ToolchainDTO holds the command lines of the external tools.
type ToolchainDTO struct {
	Compiler   []string `yaml:"compiler"`
	Stylesheet []string `yaml:"stylesheet"`
	Shim       []string `yaml:"shim"`
}

// EntryPointDTO represents one entry point definition.
type EntryPointDTO struct {
	Name              string          `yaml:"name"`
	Secondary         *bool           `yaml:"secondary"`
	BasePath          string          `yaml:"basePath"`
	EntryFile         string          `yaml:"entryFile"`
	CSSURL            string          `yaml:"cssUrl"`
	StyleIncludePaths []string        `yaml:"styleIncludePaths"`
	Dependencies      []string        `yaml:"dependencies"`
	Externals         []string        `yaml:"externals"`
	Destinations      DestinationsDTO `yaml:"destinations"`
}

// DestinationsDTO overrides derived destination files. Relative paths are resolved against dest.
type DestinationsDTO struct {
	ESM2015      string `yaml:"esm2015"`
	FESM2015     string `yaml:"fesm2015"`
	UMD          string `yaml:"umd"`
	Declarations string `yaml:"declarations"`
	Metadata     string `yaml:"metadata"`
}
