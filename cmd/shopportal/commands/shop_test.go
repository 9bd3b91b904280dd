package commands

import (
	"testing"

	"github.com/shopmanagement/portal/internal/core/domain"
)

func TestParseAssignment(t *testing.T) {
	cases := []struct {
		in      string
		want    domain.ShopProductRequest
		wantErr bool
	}{
		{in: "1:4.50:20", want: domain.ShopProductRequest{MasterProductID: 1, Price: 4.5, StockQuantity: 20, IsAvailable: true, Status: domain.ShopProductActive, TrackInventory: true}},
		{in: "2:3", want: domain.ShopProductRequest{MasterProductID: 2, Price: 3, IsAvailable: true, Status: domain.ShopProductActive}},
		{in: "2", wantErr: true},
		{in: "x:3", wantErr: true},
		{in: "2:cheap", wantErr: true},
		{in: "2:3:many", wantErr: true},
		{in: "1:2:3:4", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseAssignment(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q: got %+v, want %+v", tc.in, got, tc.want)
		}
	}
}
