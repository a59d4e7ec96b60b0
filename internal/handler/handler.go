package handler

import (
	"crypto/md5"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"path"
	"sort"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"metroexit/internal/metro"
	"metroexit/internal/plancache"
	"metroexit/internal/realtime"
	"metroexit/internal/templates"
)

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	network *metro.Network
	plans   *plancache.Cache
	rt      *realtime.Store
	logger  zerolog.Logger
	version string // content hash of static assets, for cache busting
}

// New creates a Handler. static is the asset tree served under /static/.
func New(network *metro.Network, plans *plancache.Cache, rt *realtime.Store, static fs.FS, logger zerolog.Logger) (*Handler, error) {
	v, err := computeAssetVersion(static)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("version", v).Msg("asset version computed")
	return &Handler{network: network, plans: plans, rt: rt, logger: logger, version: v}, nil
}

// computeAssetVersion hashes all CSS and JS files in the static tree to
// produce a short version string. Changes to any file produce a new version.
func computeAssetVersion(static fs.FS) (string, error) {
	if static == nil {
		return "dev", nil
	}
	var paths []string
	err := fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch path.Ext(p) {
		case ".css", ".js":
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return "", errors.Wrap(err, "walk static assets")
	}
	sort.Strings(paths) // deterministic order

	h := md5.New()
	for _, p := range paths {
		if err := hashFile(h, static, p); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))[:8], nil
}

func hashFile(w io.Writer, static fs.FS, name string) error {
	f, err := static.Open(name)
	if err != nil {
		return errors.Wrapf(err, "open %s", name)
	}
	defer f.Close()
	if _, err := io.Copy(w, f); err != nil {
		return errors.Wrapf(err, "hash %s", name)
	}
	return nil
}

// page creates a templates.Page with the asset version pre-filled.
func (h *Handler) page(title, currentPath string) templates.Page {
	return templates.Page{
		Title:        title,
		CurrentPath:  currentPath,
		AssetVersion: h.version,
	}
}

// plan plans a trip through the cache.
func (h *Handler) plan(start, end string) (*metro.TripPlan, error) {
	plan, hit, err := h.plans.Plan(h.network, start, end)
	if err != nil {
		return nil, err
	}
	h.logger.Debug().Str("start", start).Str("end", end).Bool("cached", hit).Msg("trip planned")
	return plan, nil
}

// statusFor maps a planning error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, metro.ErrStationNotFound):
		return http.StatusNotFound
	case errors.Is(err, metro.ErrNoRoute):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is the text shown to a rider for a planning error.
func userMessage(err error, start, end string) string {
	switch {
	case errors.Is(err, metro.ErrStationNotFound):
		return "Unknown station. Pick both stations from the list."
	case errors.Is(err, metro.ErrNoRoute):
		return fmt.Sprintf("No route with at most one transfer from %s to %s.", start, end)
	default:
		return "Something went wrong planning that trip."
	}
}
