package duplicates_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/registrar-tools/tally/internal/duplicates"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFindRejectsNonPositiveThreshold(t *testing.T) {
	sys := duplicates.New(nil, discard())

	for _, threshold := range []int{0, -3} {
		_, err := sys.Find(context.Background(), "maps", nil, threshold)
		if !errors.Is(err, duplicates.ErrInvalidThreshold) {
			t.Errorf("threshold %d: error = %v, want ErrInvalidThreshold", threshold, err)
		}
	}
}

func TestFindRejectsUnknownField(t *testing.T) {
	sys := duplicates.New(nil, discard())

	_, err := sys.Find(context.Background(), "maps", []string{"Barcode"}, 2)
	if !errors.Is(err, duplicates.ErrInvalidField) {
		t.Errorf("error = %v, want ErrInvalidField", err)
	}
}
