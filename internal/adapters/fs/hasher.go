package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	iofs "io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/libpack/internal/core/domain"
	"go.trai.ch/libpack/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// sourceIgnores are never part of an entry point's sources.
var sourceIgnores = []string{"node_modules", domain.DefaultStateDir}

// Hasher provides hashing functionality for entry points and files.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeInputHash computes a single hash over the entry point definition, its compiler
// configuration, the output hashes of its dependencies and the files below its base path.
// The destination directory is excluded so emitted files never feed back into the hash, as
// are the directories in excludes, which hold the sources of nested entry points.
func (h *Hasher) ComputeInputHash(data *domain.NodeData, depHashes map[string]string, excludes []string) (string, error) {
	hasher := xxhash.New()

	h.hashEntryPoint(&data.EntryPoint, hasher)
	h.hashTsConfig(&data.TsConfig, hasher)
	h.hashDestinations(&data.DestinationFiles, hasher)
	writeMap(hasher, depHashes)

	ignores := slices.Clone(sourceIgnores)
	if dest := data.EntryPoint.DestinationPath; dest != "" {
		ignores = append(ignores, filepath.Clean(dest))
	}
	for _, output := range data.DestinationFiles.All() {
		ignores = append(ignores, filepath.Dir(output))
	}
	for _, dir := range excludes {
		ignores = append(ignores, filepath.Clean(dir))
	}

	if err := h.hashSources(data.EntryPoint.BasePath, ignores, hasher); err != nil {
		return "", zerr.With(err, "entry_point", data.EntryPoint.Name.String())
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashEntryPoint(ep *domain.EntryPoint, hasher *xxhash.Digest) {
	writeStrings(hasher,
		ep.Name.String(),
		strconv.FormatBool(ep.IsSecondaryEntryPoint),
		ep.BasePath,
		ep.EntryFile,
		ep.DestinationPath,
		string(ep.CSSURL),
	)
	writeStrings(hasher, ep.StyleIncludePaths...)
	for _, dep := range ep.Dependencies {
		writeStrings(hasher, dep.String())
	}
	_, _ = hasher.Write([]byte{0})
	writeStrings(hasher, ep.ExternalModules...)
}

func (h *Hasher) hashTsConfig(cfg *domain.TsConfig, hasher *xxhash.Digest) {
	writeStrings(hasher, cfg.Project)
	writeStrings(hasher, cfg.RootNames...)

	opts := &cfg.Options
	writeStrings(hasher,
		opts.BaseURL,
		string(opts.Target),
		opts.OutDir,
		opts.DeclarationDir,
		strconv.FormatBool(opts.Declaration),
		strconv.FormatBool(opts.EnableShim),
	)
	for _, key := range slices.Sorted(maps.Keys(opts.Paths)) {
		writeStrings(hasher, key)
		writeStrings(hasher, opts.Paths[key]...)
	}
	_, _ = hasher.Write([]byte{0})
	writeMap(hasher, opts.Extra)
}

func (h *Hasher) hashDestinations(dest *domain.DestinationFiles, hasher *xxhash.Digest) {
	writeStrings(hasher, dest.ESM2015, dest.FESM2015, dest.UMD, dest.Declarations, dest.Metadata)
}

// hashSources hashes every file below base, with paths relative to base.
func (h *Hasher) hashSources(base string, ignores []string, hasher io.Writer) error {
	info, err := os.Stat(base)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat base path"), "path", base)
	}
	if !info.IsDir() {
		return h.hashFile(base, filepath.Base(base), hasher)
	}

	for path := range h.walker.WalkFiles(base, ignores) {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		if err := h.hashFile(path, filepath.ToSlash(rel), hasher); err != nil {
			return err
		}
	}
	return nil
}

func (h *Hasher) hashFile(path, name string, mainHasher io.Writer) error {
	_, _ = io.WriteString(mainHasher, name)
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}

// ComputeOutputHash computes the hash of the output files. Every output must exist.
func (h *Hasher) ComputeOutputHash(outputs []string) (string, error) {
	sortedOutputs := slices.Clone(outputs)
	slices.Sort(sortedOutputs)

	hasher := xxhash.New()

	for _, path := range sortedOutputs {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return "", zerr.With(zerr.Wrap(iofs.ErrNotExist, "output file missing"), "path", path)
			}
			return "", zerr.With(zerr.Wrap(err, "failed to stat output file"), "path", path)
		}

		hash, err := h.ComputeFileHash(path)
		if err != nil {
			return "", err
		}

		if err := binary.Write(hasher, binary.LittleEndian, hash); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func writeStrings(w io.Writer, values ...string) {
	for _, v := range values {
		_, _ = io.WriteString(w, v)
		_, _ = w.Write([]byte{0})
	}
	_, _ = w.Write([]byte{0})
}

// writeMap writes m in key order.
func writeMap(w io.Writer, m map[string]string) {
	for _, k := range slices.Sorted(maps.Keys(m)) {
		_, _ = io.WriteString(w, k)
		_, _ = w.Write([]byte{'='})
		_, _ = io.WriteString(w, m[k])
		_, _ = w.Write([]byte{0})
	}
	_, _ = w.Write([]byte{0})
}
