package records_test

import (
	"testing"

	"github.com/registrar-tools/tally/internal/records"
)

func TestDisplayCode(t *testing.T) {
	tests := []struct {
		name   string
		detail records.Detail
		want   string
	}{
		{
			name:   "with suffix",
			detail: records.Detail{CodePrefix: "QH", CodeNumber: 371, CodeSuffix: ".2"},
			want:   "QH371.2",
		},
		{
			name:   "without suffix",
			detail: records.Detail{CodePrefix: "MAP", CodeNumber: 9},
			want:   "MAP9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.detail.DisplayCode(); got != tt.want {
				t.Errorf("DisplayCode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSortDetailsNaturalOrder(t *testing.T) {
	details := []records.Detail{
		{ID: 1, CodePrefix: "QH", CodeNumber: 371, CodeSuffix: ".2"},
		{ID: 2, CodePrefix: "AB", CodeNumber: 900},
		{ID: 3, CodePrefix: "QH", CodeNumber: 12},
		{ID: 4, CodePrefix: "QH", CodeNumber: 371, CodeSuffix: ".1"},
	}

	records.SortDetails(details)

	wantOrder := []int64{2, 3, 4, 1}
	for i, want := range wantOrder {
		if details[i].ID != want {
			t.Fatalf("position %d has ID %d, want %d", i, details[i].ID, want)
		}
	}
}
