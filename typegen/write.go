package typegen

import (
	"os"
	"path/filepath"

	"github.com/teranos/shapegen/errors"
)

// OutputFile is one generated file to place in the output directory.
type OutputFile struct {
	Name    string
	Content string
}

// WriteFile writes content to dir/name, creating dir if needed.
// The content goes to a temporary file in dir first and is renamed over the
// target, so readers see either the old file or the complete new one.
func WriteFile(dir, name, content string) (string, error) {
	paths, err := WriteFiles(dir, []OutputFile{{Name: name, Content: content}})
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// WriteFiles writes every file into dir and returns the target paths in
// input order.
//
// All files are staged as temporaries before the first rename, so a failure
// while writing content leaves every existing target untouched. Only a
// failing rename can leave the set partly replaced.
func WriteFiles(dir string, files []OutputFile) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "failed to create output directory %s", dir)
	}

	staged := make([]string, 0, len(files))
	committed := false
	defer func() {
		if !committed {
			for _, tmp := range staged {
				_ = os.Remove(tmp)
			}
		}
	}()

	for _, f := range files {
		tmp, err := stageFile(dir, f.Name, f.Content)
		if err != nil {
			return nil, err
		}
		staged = append(staged, tmp)
	}

	paths := make([]string, len(files))
	for i, f := range files {
		target := filepath.Join(dir, f.Name)
		if err := os.Rename(staged[i], target); err != nil {
			return nil, errors.Wrapf(err, "failed to move output into place at %s", target)
		}
		paths[i] = target
	}

	committed = true
	return paths, nil
}

// stageFile writes content to a temporary file next to dir/name and
// returns its path. The temporary file is removed when any step fails.
func stageFile(dir, name, content string) (string, error) {
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return "", errors.Wrapf(err, "failed to create temporary file for %s in %s", name, dir)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return "", errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return "", errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return "", errors.Wrapf(err, "failed to set permissions on %s", tmpName)
	}
	return tmpName, nil
}
