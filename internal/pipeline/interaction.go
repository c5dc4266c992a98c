// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

// Interaction is the presentation layer's switch for user input. Run turns
// it off before any request and back on when it returns, on every path.
type Interaction interface {
	SetInteractive(enabled bool)
}

// InteractionFunc adapts a function to Interaction.
type InteractionFunc func(enabled bool)

// SetInteractive calls f(enabled).
func (f InteractionFunc) SetInteractive(enabled bool) { f(enabled) }

type nopInteraction struct{}

func (nopInteraction) SetInteractive(bool) {}
