// Package desktop holds the desktop chores that are not status snippets.
package desktop

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"

	"perc/internal/logger"
	"perc/internal/runner"
)

// ErrNoImages is returned when the wallpaper directory holds no image.
var ErrNoImages = errors.New("no images found")

var imageExts = []string{".png", ".jpg", ".jpeg"}

// Images lists the image files directly inside dir, sorted by name.
func Images(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", dir)
	}

	var images []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if slices.Contains(imageExts, strings.ToLower(filepath.Ext(e.Name()))) {
			images = append(images, filepath.Join(dir, e.Name()))
		}
	}
	if len(images) == 0 {
		return nil, errors.Wrapf(ErrNoImages, "in %s", dir)
	}
	return images, nil
}

// PickWallpaper chooses one image of dir using pick, which receives the number
// of candidates and returns an index below it.
func PickWallpaper(dir string, pick func(n int) int) (string, error) {
	images, err := Images(dir)
	if err != nil {
		return "", err
	}
	return images[pick(len(images))], nil
}

// SetLockScreen picks a random image from dir and hands it to the lock-screen
// tool, which caches it for the next lock.
func SetLockScreen(ctx context.Context, r runner.Runner, tool, dir string) (string, error) {
	img, err := PickWallpaper(dir, rand.Intn)
	if err != nil {
		return "", err
	}

	logger.Info("[INFO] Updating lock screen with %s\n", img)
	if _, err := r.Output(ctx, tool, "-u", img); err != nil {
		return "", errors.Wrapf(err, "failed to update lock screen")
	}
	return img, nil
}
