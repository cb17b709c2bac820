package cart

import (
	"testing"

	pkgerrors "github.com/harvestlink-app/harvestlink-backend/pkg/errors"
)

func TestClampNewQuantity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		requested int
		minimum   int
		stock     int
		want      int
		wantCode  pkgerrors.Code
	}{
		{name: "within bounds", requested: 5, minimum: 2, stock: 10, want: 5},
		{name: "floored to minimum", requested: 1, minimum: 4, stock: 10, want: 4},
		{name: "exactly stock", requested: 10, minimum: 1, stock: 10, want: 10},
		{name: "over stock", requested: 11, minimum: 1, stock: 10, wantCode: pkgerrors.CodeInsufficientStock},
		{name: "minimum itself over stock", requested: 1, minimum: 12, stock: 10, wantCode: pkgerrors.CodeInsufficientStock},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := clampNewQuantity(tc.requested, tc.minimum, tc.stock)
			if tc.wantCode != "" {
				if !pkgerrors.IsCode(err, tc.wantCode) {
					t.Fatalf("expected %s, got %v", tc.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestValidateQuantityUpdate(t *testing.T) {
	t.Parallel()

	if err := validateQuantityUpdate(5, 2, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateQuantityUpdate(1, 2, 10); !pkgerrors.IsCode(err, pkgerrors.CodeBelowMinimum) {
		t.Fatalf("expected below minimum, got %v", err)
	}
	if err := validateQuantityUpdate(11, 2, 10); !pkgerrors.IsCode(err, pkgerrors.CodeInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
}
