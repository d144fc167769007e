// Package dump turns whatever a dump was handed over as (a plain file, an
// archive, or an http(s) URL to either) into a local dump file path.
package dump

import (
	"context"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"perc/internal/logger"
)

// ErrNoDump is returned when an archive holds no recognizable dump file.
var ErrNoDump = errors.New("no dump file found")

// dumpName is the conventional dump file name inside support archives.
const dumpName = "dump.sql"

// Prepare returns the path of a dump file ready to be restored from source.
// The returned cleanup removes any temporary files and must always be called.
func Prepare(ctx context.Context, source string) (string, func(), error) {
	workdir, err := os.MkdirTemp("", "perc-dump-")
	if err != nil {
		return "", func() {}, errors.Wrap(err, "failed to create work directory")
	}
	cleanup := func() {
		if err := os.RemoveAll(workdir); err != nil {
			logger.Warn("[WARN] Failed to remove %s: %v\n", workdir, err)
		}
	}

	file, err := prepare(ctx, source, workdir)
	if err != nil {
		cleanup()
		return "", func() {}, err
	}
	return file, cleanup, nil
}

func prepare(ctx context.Context, source, workdir string) (string, error) {
	local := source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		name, err := remoteName(source)
		if err != nil {
			return "", err
		}
		local = filepath.Join(workdir, name)
		if err := downloadFile(ctx, source, local); err != nil {
			return "", err
		}
	} else if _, err := os.Stat(source); err != nil {
		return "", errors.Wrapf(err, "dump %s", source)
	}

	if !IsArchive(local) {
		return local, nil
	}

	dir := filepath.Join(workdir, "extracted")
	if err := Extract(local, dir); err != nil {
		return "", errors.Wrapf(err, "failed to extract %s", local)
	}
	return FindDump(dir)
}

// remoteName returns the file name of a dump URL, ignoring any query string
// or fragment (signed links carry their token there).
func remoteName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid dump URL %s", rawURL)
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		name = "dump"
	}
	return name, nil
}

// downloadFile downloads the content located at rawURL and saves it to destPath.
func downloadFile(ctx context.Context, rawURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", rawURL)
	}
	logger.Info("[INFO] Downloading %s\n", rawURL)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to GET %s", rawURL)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("failed to GET %s: HTTP status %d", rawURL, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return errors.Wrapf(err, "failed to create file %s", destPath)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return errors.Wrap(err, "failed to write response to file")
	}
	logger.Debug("[DEBUG] Downloaded dump to: %s\n", destPath)
	return out.Close()
}

// FindDump locates the dump inside an extracted archive: dump.sql anywhere in
// the tree wins, otherwise the first *.dump or *.sql file in lexical order.
func FindDump(root string) (string, error) {
	var named, first string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch {
		case d.Name() == dumpName:
			named = p
			return fs.SkipAll
		case first == "" && (strings.HasSuffix(p, ".dump") || strings.HasSuffix(p, ".sql")):
			first = p
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to scan %s", root)
	}

	if named != "" {
		return named, nil
	}
	if first != "" {
		return first, nil
	}
	return "", errors.Wrapf(ErrNoDump, "in %s", root)
}
