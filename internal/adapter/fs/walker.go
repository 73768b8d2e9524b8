package fs

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"freq/internal/domain"
	"freq/internal/port"
	"github.com/bmatcuk/doublestar/v4"
)

type Walker struct {
	includes []string
	excludes []string
}

func NewWalker(includes, excludes []string) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes: includes,
		excludes: excludes,
	}
}

type FileInfo = port.FileInfo

// Walk returns matching regular files under root sorted by path.
func (w *Walker) Walk(root string) ([]FileInfo, error) {
	var files []FileInfo

	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if info.IsDir() {
			if relPath != "." && w.shouldExclude(relPath+"/") {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, FileInfo{
				Path:    path,
				Rel:     relPath,
				ModTime: info.ModTime().Unix(),
				Size:    info.Size(),
			})
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// OutputPath builds the report path for an input given relative to the
// batch root. Directories are kept so equal file names in different
// directories get distinct reports: data/word_01.in.txt counted as two-grams
// becomes <outDir>/data/word_01.twogram.out.txt. An absolute rel keeps only
// its base name.
func OutputPath(outDir, rel string, mode domain.Mode, inSuffix, outSuffix string) string {
	rel = filepath.FromSlash(rel)
	dir := ""
	if !filepath.IsAbs(rel) {
		dir = filepath.Dir(filepath.Clean(rel))
	}

	base := filepath.Base(rel)
	if inSuffix != "" && strings.HasSuffix(base, inSuffix) {
		base = strings.TrimSuffix(base, inSuffix)
	} else {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(outDir, dir, base+"."+mode.String()+outSuffix)
}
