package resumepdf

import (
	"errors"
	"fmt"
)

// Sentinel errors for library operations.
var (
	// ErrRendering is the single failure surfaced for a render request.
	// Every *RenderError matches it with errors.Is.
	ErrRendering = errors.New("rendering failed")

	ErrNilResume = errors.New("resume cannot be nil")
	ErrOwnership = errors.New("child record belongs to another aggregate")

	// Registry construction errors (fatal at startup).
	ErrTemplateConfigMissing = errors.New("template configuration missing")
	ErrTemplateParse         = errors.New("template markup parse failed")
	ErrInvalidFontDecl       = errors.New("invalid font declaration")
	ErrInvalidConfig         = errors.New("invalid configuration")

	// Font resolution outcomes. Never returned by Render; recorded per
	// declaration in FontSet.Entries.
	ErrFontAssetUnavailable = errors.New("font asset unavailable")
	ErrCustomFontsDisabled  = errors.New("custom fonts disabled")

	ErrInvalidDate = errors.New("invalid date")
)

// Stage identifies a step of the render state machine.
type Stage string

// Render stages, in execution order.
const (
	StageValidating  Stage = "validating"
	StageResolving   Stage = "resolving"
	StageComposing   Stage = "composing"
	StageLayingOut   Stage = "laying out"
	StageSerializing Stage = "serializing"
)

// RenderError reports a failed render request and the stage where it stopped.
type RenderError struct {
	Stage    Stage
	Template string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("%s (template %q, %s): %v", ErrRendering, e.Template, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", ErrRendering, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is makes every RenderError match ErrRendering.
func (e *RenderError) Is(target error) bool {
	return target == ErrRendering
}
