package editcell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextCell_ConfirmTrimsInput(t *testing.T) {
	var saved string
	cell := NewTextCell("old", func(ctx context.Context, v string) error {
		saved = v
		return nil
	})

	cell.BeginEdit(" Acme ")
	require.NoError(t, cell.Confirm(context.Background()))

	assert.Equal(t, "Acme", saved)
	assert.Equal(t, "Acme", cell.Value())
	assert.Equal(t, Viewing, cell.State())
}

func TestTextCell_EmptyDraftCancels(t *testing.T) {
	saveCalled := false
	cell := NewTextCell("old", func(ctx context.Context, v string) error {
		saveCalled = true
		return nil
	})

	cell.BeginEdit("   ")
	require.NoError(t, cell.Confirm(context.Background()))

	assert.False(t, saveCalled)
	assert.Equal(t, "old", cell.Value())
	assert.Equal(t, Viewing, cell.State())
}

func TestNumericCell_SilentCancelOnInvalidInput(t *testing.T) {
	initial := decimal.NewFromInt(100)

	for _, draft := range []string{"abc", "-5", "12.3.4", ""} {
		saveCalled := false
		cell := NewNumericCell(initial, func(ctx context.Context, v decimal.Decimal) error {
			saveCalled = true
			return nil
		})

		cell.BeginEdit(draft)
		err := cell.Confirm(context.Background())

		require.NoError(t, err, "draft %q should cancel, not error", draft)
		assert.False(t, saveCalled, "draft %q should not reach the save func", draft)
		assert.True(t, initial.Equal(cell.Value()), "draft %q should keep the committed value", draft)
		assert.Equal(t, Viewing, cell.State())
	}
}

func TestNumericCell_ConfirmParsesAndSaves(t *testing.T) {
	var saved decimal.Decimal
	cell := NewNumericCell(decimal.Zero, func(ctx context.Context, v decimal.Decimal) error {
		saved = v
		return nil
	})

	cell.BeginEdit("12.50")
	require.NoError(t, cell.Confirm(context.Background()))

	assert.True(t, decimal.NewFromFloat(12.5).Equal(saved))
	assert.True(t, decimal.NewFromFloat(12.5).Equal(cell.Value()))
}

func TestNumericCell_ZeroIsValid(t *testing.T) {
	cell := NewNumericCell(decimal.NewFromInt(7), func(ctx context.Context, v decimal.Decimal) error {
		return nil
	})

	cell.BeginEdit("0")
	require.NoError(t, cell.Confirm(context.Background()))
	assert.True(t, cell.Value().IsZero())
}

func TestCell_SaveFailureKeepsDraft(t *testing.T) {
	saveErr := errors.New("connection reset")
	cell := NewTextCell("old", func(ctx context.Context, v string) error {
		return saveErr
	})

	cell.BeginEdit("new value")
	err := cell.Confirm(context.Background())

	require.ErrorIs(t, err, saveErr)
	assert.Equal(t, Editing, cell.State())
	assert.Equal(t, "new value", cell.Draft())
	assert.Equal(t, "old", cell.Value())

	// User can still back out after the failed save.
	cell.Cancel()
	assert.Equal(t, Viewing, cell.State())
	assert.Equal(t, "old", cell.Value())
}

func TestCell_CancelDiscardsDraft(t *testing.T) {
	cell := NewTextCell("kept", nil)

	cell.BeginEdit("discarded")
	cell.Cancel()

	assert.Equal(t, Viewing, cell.State())
	assert.Equal(t, "kept", cell.Value())
	assert.Empty(t, cell.Draft())
}

func TestCell_ConfirmOutsideEditing(t *testing.T) {
	cell := NewTextCell("v", nil)
	assert.ErrorIs(t, cell.Confirm(context.Background()), ErrNotEditing)
	assert.ErrorIs(t, cell.SetDraft("x"), ErrNotEditing)
}

func TestCell_DisabledNeverEntersEditing(t *testing.T) {
	cell := NewTextCell("v", nil)
	cell.SetDisabled(true)

	cell.BeginEdit("draft")
	assert.Equal(t, Viewing, cell.State())

	cell.SetDisabled(false)
	cell.BeginEdit("draft")
	assert.Equal(t, Editing, cell.State())
}

func TestCell_BeginEditIgnoredWhileEditing(t *testing.T) {
	cell := NewTextCell("v", nil)
	cell.BeginEdit("first")
	cell.BeginEdit("second")
	assert.Equal(t, "first", cell.Draft())
}

func TestDateCell_ParsesLayout(t *testing.T) {
	var saved time.Time
	cell := NewDateCell(time.Time{}, "2006-01-02", func(ctx context.Context, v time.Time) error {
		saved = v
		return nil
	})

	cell.BeginEdit("2026-03-15")
	require.NoError(t, cell.Confirm(context.Background()))
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), saved)
}

func TestDateCell_InvalidDateCancels(t *testing.T) {
	initial := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cell := NewDateCell(initial, "2006-01-02", nil)

	cell.BeginEdit("15/03/2026")
	require.NoError(t, cell.Confirm(context.Background()))
	assert.Equal(t, initial, cell.Value())
	assert.Equal(t, Viewing, cell.State())
}

func TestOptionCell_RejectsUnknownOption(t *testing.T) {
	cell := NewOptionCell("OPEN", []string{"OPEN", "PAID", "VOIDED"}, nil)

	cell.BeginEdit("CLOSED")
	require.NoError(t, cell.Confirm(context.Background()))
	assert.Equal(t, "OPEN", cell.Value())

	cell.BeginEdit("PAID")
	require.NoError(t, cell.Confirm(context.Background()))
	assert.Equal(t, "PAID", cell.Value())
}
