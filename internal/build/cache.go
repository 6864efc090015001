package build

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// State directory layout:
//
//	stateDir/
//	  .cache.json    # incremental cache: watched-set hash + produced artifacts
const cacheFile = ".cache.json"

// cacheState records one successful orchestration run. A later run
// whose watched-set hash matches returns Artifacts unchanged without
// invoking any subprocess. The cache is all-or-nothing: any change to
// the watched set recompiles every (artifact x version) pair.
type cacheState struct {
	WatchHash string    `json:"watch_hash"`
	Artifacts []string  `json:"artifacts"`
	BuildTime time.Time `json:"build_time"`
}

// loadState reads the cache state from the state directory.
func loadState(stateDir string) (*cacheState, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, cacheFile))
	if err != nil {
		return nil, err
	}
	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// saveState writes the cache state to the state directory.
func saveState(stateDir string, state *cacheState) error {
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(stateDir, cacheFile), data, 0o644)
}

// hashWatchedSet hashes the identity and content of every file
// reachable from the given roots. Directories are expanded recursively
// to their member files; files are hashed by path and content in
// sorted order, so the hash is stable across runs.
func hashWatchedSet(roots []string) (string, error) {
	type entry struct {
		key  string
		path string
	}
	var entries []entry

	for _, root := range roots {
		info, err := os.Stat(root)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return "", err
		}
		if !info.IsDir() {
			entries = append(entries, entry{key: root, path: root})
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			entries = append(entries, entry{key: root + "!" + rel, path: path})
			return nil
		})
		if err != nil {
			return "", err
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	hasher := sha256.New()
	for _, e := range entries {
		fmt.Fprintf(hasher, "%d:%s\n", len(e.key), e.key)
		f, err := os.Open(e.path)
		if err != nil {
			return "", err
		}
		_, err = io.Copy(hasher, f)
		f.Close()
		if err != nil {
			return "", err
		}
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
