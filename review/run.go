// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package review

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the review queue on the terminal until the operator quits
// and returns the final model state.
func Run(ctx context.Context, reviewer Reviewer, options ...tea.ProgramOption) (Model, error) {
	options = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, options...)
	program := tea.NewProgram(NewModel(ctx, reviewer), options...)
	final, err := program.Run()
	if err != nil {
		return Model{}, fmt.Errorf("review: %w", err)
	}
	model, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("review: unexpected final model %T", final)
	}
	return model, nil
}
