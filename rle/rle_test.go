package rle_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/motiontree/motiontree/rle"
)

func TestEncodeContiguous(t *testing.T) {
	got := rle.Encode([]int{0, 1, 2, 3})
	want := []rle.Range{{Start: 0, End: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeGaps(t *testing.T) {
	got := rle.Encode([]int{5, 6, 9, 10, 11, 20})
	want := []rle.Range{
		{Start: 5, End: 7},
		{Start: 9, End: 12},
		{Start: 20, End: 21},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnsortedInput(t *testing.T) {
	got := rle.Encode([]int{3, 1, 2, 0})
	want := []rle.Range{{Start: 0, End: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if got := rle.Encode(nil); got != nil {
		t.Errorf("Encode(nil) = %v, want nil", got)
	}
}

func TestRangeString(t *testing.T) {
	if got := (rle.Range{Start: 3, End: 4}).String(); got != "3" {
		t.Errorf("String() = %q, want %q", got, "3")
	}
	if got := (rle.Range{Start: 3, End: 6}).String(); got != "3-5" {
		t.Errorf("String() = %q, want %q", got, "3-5")
	}
}
