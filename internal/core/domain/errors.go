package domain

import "go.trai.ch/zerr"

var (
	// ErrGraphLookup is returned when a lookup that requires exactly one matching node
	// finds zero or several.
	ErrGraphLookup = zerr.New("graph lookup failed")

	// ErrConfiguration is the parent of every error that makes a build impossible before
	// any stage runs.
	ErrConfiguration = zerr.New("invalid build configuration")

	// ErrCycleDetected is returned when entry points depend on each other in a cycle.
	ErrCycleDetected = zerr.Wrap(ErrConfiguration, "cycle detected")

	// ErrMissingDependency is returned when an entry point depends on an entry point that is not in the graph.
	ErrMissingDependency = zerr.Wrap(ErrConfiguration, "missing entry point dependency")

	// ErrEntryPointAlreadyExists is returned when two entry points share a name.
	ErrEntryPointAlreadyExists = zerr.Wrap(ErrConfiguration, "entry point already exists")

	// ErrMissingDestination is returned when an entry point lacks a required destination path.
	ErrMissingDestination = zerr.Wrap(ErrConfiguration, "missing destination path")

	// ErrPrimaryEntryPoint is returned when a graph does not hold exactly one primary entry point.
	ErrPrimaryEntryPoint = zerr.Wrap(ErrConfiguration, "expected exactly one primary entry point")

	// ErrInvalidVersion is returned when the package version is not valid semver.
	ErrInvalidVersion = zerr.Wrap(ErrConfiguration, "invalid package version")

	// ErrInvalidEntryPointName is returned when an entry point has an empty or malformed name.
	ErrInvalidEntryPointName = zerr.Wrap(ErrConfiguration, "invalid entry point name")

	// ErrInvalidCSSURL is returned when the css url mode is not one of the supported values.
	ErrInvalidCSSURL = zerr.Wrap(ErrConfiguration, "invalid css url mode, expected 'inline' or 'none'")

	// ErrInvalidTarget is returned when the configured script target is unknown.
	ErrInvalidTarget = zerr.Wrap(ErrConfiguration, "invalid script target")

	// ErrInputNotFound is returned when a configured path pattern matches no file.
	ErrInputNotFound = zerr.Wrap(ErrConfiguration, "input path not found")

	// ErrInvalidPattern is returned when a configured path pattern is malformed.
	ErrInvalidPattern = zerr.Wrap(ErrConfiguration, "invalid path pattern")

	// ErrGraphNotValidated is returned when the graph is used before Validate succeeded.
	ErrGraphNotValidated = zerr.New("graph has not been validated")

	// ErrEntryPointNotFound is returned when a requested entry point is not in the graph.
	ErrEntryPointNotFound = zerr.New("entry point not found")

	// ErrInvalidStateTransition is returned when a node is moved to a state its current state does not allow.
	ErrInvalidStateTransition = zerr.New("invalid node state transition")

	// ErrCacheSlotType is returned when a cache slot holds a value of an unexpected type.
	ErrCacheSlotType = zerr.New("cache slot holds a value of another type")

	// ErrMissingSharedCache is returned when a stage runs without the build-wide shared cache.
	ErrMissingSharedCache = zerr.New("build-wide shared cache is missing")

	// ErrCompilation is returned by the source compiler on type or resolution errors.
	ErrCompilation = zerr.New("compilation failed")

	// ErrShim is returned when the compatibility shim pass fails.
	ErrShim = zerr.New("compatibility shim pass failed")

	// ErrStylesheet is returned when a stylesheet cannot be processed.
	ErrStylesheet = zerr.New("stylesheet processing failed")

	// ErrMissingOutput is returned when a declared output file was not produced.
	ErrMissingOutput = zerr.New("output file missing")

	// ErrBuildFailed is returned when at least one entry point failed to build.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoEntryPoints is returned when a configuration declares no entry points.
	ErrNoEntryPoints = zerr.Wrap(ErrConfiguration, "no entry points declared")

	// ErrConfigNotFound is returned when no configuration file exists in a directory or its parents.
	ErrConfigNotFound = zerr.Wrap(ErrConfiguration, "configuration file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.Wrap(ErrConfiguration, "failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.Wrap(ErrConfiguration, "failed to parse config file")

	// ErrStoreReadFailed is returned when the build info store cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build info store")

	// ErrStoreWriteFailed is returned when the build info store cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build info store")

	// ErrInputHashComputationFailed is returned when input hash computation fails.
	ErrInputHashComputationFailed = zerr.New("failed to compute input hash")

	// ErrOutputHashComputationFailed is returned when output hash computation fails.
	ErrOutputHashComputationFailed = zerr.New("failed to compute output hash")

	// ErrCommandFailed is returned when an external tool exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrEmptyCommand is returned when a toolchain command is not configured.
	ErrEmptyCommand = zerr.Wrap(ErrConfiguration, "toolchain command is empty")
)
