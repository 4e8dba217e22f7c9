package stargo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/stargo/alias"
	"github.com/hupe1980/stargo/model"
	"github.com/hupe1980/stargo/route"
	"github.com/hupe1980/stargo/starmap"
)

var (
	// ErrNoRoute is returned when no alternating route connects the endpoints.
	ErrNoRoute = errors.New("no route found")

	// ErrUnknownSystem is returned when a label names no system in the snapshot.
	ErrUnknownSystem = errors.New("unknown system")

	// ErrUnknownAlias is returned when a "JP:"-prefixed label has no alias entry.
	ErrUnknownAlias = errors.New("unknown alias")

	// ErrSnapshot is returned when a snapshot cannot be loaded.
	ErrSnapshot = errors.New("invalid snapshot")
)

// ErrNotNeutron indicates a start or goal system that is not a neutron star.
// Routes are plotted between supercharge points, so both endpoints must be
// neutron-category systems.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrNotNeutron struct {
	Name     string
	Category model.Category
	cause    error
}

func (e *ErrNotNeutron) Error() string {
	return fmt.Sprintf("system %q is not a neutron star (category %s)", e.Name, e.Category)
}

func (e *ErrNotNeutron) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Lookup unification.
	var ua *alias.ErrUnknownAlias
	if errors.As(err, &ua) {
		return fmt.Errorf("%w: %w", ErrUnknownAlias, err)
	}
	var ui *route.ErrUnknownID
	if errors.As(err, &ui) {
		return fmt.Errorf("%w: %w", ErrUnknownSystem, err)
	}

	// Endpoint category normalization.
	var us *route.ErrUnroutableSystem
	if errors.As(err, &us) {
		return &ErrNotNeutron{Name: us.Name, Category: us.Category, cause: err}
	}

	if errors.Is(err, route.ErrNoRoute) {
		return fmt.Errorf("%w: %w", ErrNoRoute, err)
	}

	return err
}

// translateLoadError folds the snapshot format errors into ErrSnapshot so
// callers can match a single sentinel regardless of the failure mode.
func translateLoadError(err error) error {
	if err == nil {
		return nil
	}

	var mismatch *starmap.ChecksumMismatchError
	if errors.Is(err, starmap.ErrInvalidMagic) ||
		errors.Is(err, starmap.ErrInvalidVersion) ||
		errors.Is(err, starmap.ErrUnknownCompression) ||
		errors.Is(err, starmap.ErrTruncated) ||
		errors.Is(err, starmap.ErrCorrupt) ||
		errors.As(err, &mismatch) {
		return fmt.Errorf("%w: %w", ErrSnapshot, err)
	}

	return err
}
