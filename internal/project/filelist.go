package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/oxhq/svcheck/internal/reporter"
	"github.com/oxhq/svcheck/internal/token"
)

// loadSrcfile reads one -f filelist line by line. Both kinds of line
// (+incdir+ and source path) resolve relative to the filelist's own
// directory, matching original_source/src/project.rs's from_srcfile.
func (p *Project) loadSrcfile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		p.Rep.Report(reporter.ErrFile, path, token.Position{}, path, path)
		return err
	}
	defer f.Close()

	base := filepath.Dir(path)
	sc := bufio.NewScanner(f)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "", strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "+incdir+"):
			dir := p.resolvePath(strings.TrimPrefix(line, "+incdir+"), base)
			if !hasGlobMeta(dir) {
				p.addIncdirEntry(dir)
				continue
			}
			matches, err := doublestar.FilepathGlob(dir)
			if err != nil {
				return err
			}
			for _, m := range matches {
				p.addIncdirEntry(m)
			}
		case strings.HasPrefix(line, "+"):
			p.Rep.Report(reporter.InfoStatus, path, token.Position{Line: lineNo}, "",
				fmt.Sprintf("unrecognized filelist directive %q", line))
		default:
			if err := p.addSource(line, base); err != nil {
				return err
			}
		}
	}
	return sc.Err()
}

// addSource resolves raw (relative to base, when base is non-empty) and
// adds it to the file list: a directory expands to its direct .v/.sv
// children and is itself added to incdir (SPEC_FULL.md's "directory
// expansion" supplement), a glob pattern expands via doublestar, and a
// plain path is added as-is.
func (p *Project) addSource(raw, base string) error {
	resolved := p.resolvePath(raw, base)
	if !hasGlobMeta(resolved) {
		return p.addSourceEntry(resolved)
	}
	matches, err := doublestar.FilepathGlob(resolved)
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := p.addSourceEntry(m); err != nil {
			return err
		}
	}
	return nil
}

func (p *Project) addSourceEntry(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		// Not found yet: keep the literal entry so CompileAll reports
		// ErrFile against the path the user actually named.
		p.appendFile(path)
		return nil
	}
	if !info.IsDir() {
		p.appendFile(path)
		return nil
	}
	p.addIncdirEntry(path)
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !isSourceExt(e.Name()) {
			continue
		}
		p.appendFile(filepath.Join(path, e.Name()))
	}
	return nil
}

func (p *Project) resolvePath(raw, base string) string {
	if base == "" || filepath.IsAbs(raw) {
		return raw
	}
	return filepath.Join(base, raw)
}

func (p *Project) appendFile(path string) {
	c := canonicalize(path)
	if p.seenFiles[c] {
		return
	}
	p.seenFiles[c] = true
	p.Files = append(p.Files, c)
}

func (p *Project) addIncdirEntry(path string) {
	c := canonicalize(path)
	if p.seenIncdir[c] {
		return
	}
	p.seenIncdir[c] = true
	p.Incdir = append(p.Incdir, c)
}

// canonicalize resolves path to an absolute, symlink-free form so the same
// physical file or directory reached two different ways (through a
// directory expansion and a literal filelist entry, say) still dedupes.
// A path that does not exist yet falls back to its absolute form.
func canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

func isSourceExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".v", ".sv":
		return true
	default:
		return false
	}
}

func hasGlobMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func errIncludeNotFound(name string) error {
	return fmt.Errorf("project: include %q not found", name)
}
