package model

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCorporationKeys tests key ordering of a record.
func TestCorporationKeys(t *testing.T) {
	t.Parallel()

	t.Run("visible keys only", func(t *testing.T) {
		t.Parallel()

		var c Corporation
		want := []string{KeySeqNo, KeyName, KeyBusinessCategory, KeyDonationGroupType}
		if diff := cmp.Diff(want, c.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("hidden keys follow first-seen order and summary comes last", func(t *testing.T) {
		t.Parallel()

		var c Corporation
		c.SetHidden(KeyPublicBenefitSerial, "1")
		c.SetHidden(KeyBusinessRegNo, "2")
		c.SetSummaryIdx("77")
		c.SetHidden(KeyFiscalYearEnd, "12")

		want := []string{
			KeySeqNo, KeyName, KeyBusinessCategory, KeyDonationGroupType,
			KeyPublicBenefitSerial, KeyBusinessRegNo, KeyFiscalYearEnd,
			KeySummaryIdx,
		}
		if diff := cmp.Diff(want, c.Keys()); diff != "" {
			t.Errorf("keys mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("duplicate hidden key keeps position and takes last value", func(t *testing.T) {
		t.Parallel()

		var c Corporation
		c.SetHidden(KeyBusinessRegNo, "first")
		c.SetHidden(KeyEstablishedOn, "2001-01-01")
		c.SetHidden(KeyBusinessRegNo, "second")

		want := []Field{
			{Key: KeyBusinessRegNo, Value: "second"},
			{Key: KeyEstablishedOn, Value: "2001-01-01"},
		}
		if diff := cmp.Diff(want, c.HiddenFields); diff != "" {
			t.Errorf("hidden fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unrecognized hidden key is ignored", func(t *testing.T) {
		t.Parallel()

		var c Corporation
		if c.SetHidden("hometaxBsnmNo", "123") {
			t.Error("expected SetHidden to reject unknown key")
		}
		if len(c.HiddenFields) != 0 {
			t.Errorf("expected no hidden fields, got %v", c.HiddenFields)
		}
	})
}

// TestCorporationValue tests value lookup by key.
func TestCorporationValue(t *testing.T) {
	t.Parallel()

	c := Corporation{
		SeqNo:             "1",
		Name:              "재단법인 가나다",
		BusinessCategory:  BusinessCategoryWelfare,
		DonationGroupType: DonationGroupDesignated,
	}
	c.SetHidden(KeyBusinessRegNo, "123-45-67890")

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{KeySeqNo, "1", true},
		{KeyName, "재단법인 가나다", true},
		{KeyBusinessCategory, BusinessCategoryWelfare, true},
		{KeyDonationGroupType, DonationGroupDesignated, true},
		{KeyBusinessRegNo, "123-45-67890", true},
		{KeyFiscalYearEnd, "", false},
		{KeySummaryIdx, "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()
			got, ok := c.Value(tt.key)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Value(%q) = (%q, %v), want (%q, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// TestCorporationJSON tests the snapshot encoding of a record.
func TestCorporationJSON(t *testing.T) {
	t.Parallel()

	t.Run("members follow key order", func(t *testing.T) {
		t.Parallel()

		c := Corporation{SeqNo: "3", Name: "A&B <재단>", BusinessCategory: "교육", DonationGroupType: ""}
		c.SetHidden(KeyEstablishedOn, "1999-03-02")
		c.SetSummaryIdx("42")

		data, err := c.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{"번호":"3","공익법인명":"A&B <재단>","공익사업유형":"교육","기부금단체유형":"","cratQu":"1999-03-02","summaryIdx":"42"}`
		if string(data) != want {
			t.Errorf("unexpected JSON:\n got: %s\nwant: %s", data, want)
		}
	})

	t.Run("decodes what it encodes", func(t *testing.T) {
		t.Parallel()

		c := Corporation{SeqNo: "10", Name: "사단법인 \"희망\"", BusinessCategory: "의료", DonationGroupType: "법정기부금단체"}
		c.SetHidden(KeyFiscalYearEnd, "12")
		c.SetHidden(KeyBusinessRegNo, "111-22-33333")

		data, err := json.Marshal(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var got Corporation
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(c, got); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ignores unknown members and keeps literal non-strings", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{"번호":7,"공익법인명":"X","extra":"y","bsnmNo":null}`)

		var got Corporation
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.SeqNo != "7" {
			t.Errorf("expected SeqNo '7', got %q", got.SeqNo)
		}
		if v, ok := got.HiddenValue(KeyBusinessRegNo); !ok || v != "" {
			t.Errorf("expected empty bsnmNo present, got (%q, %v)", v, ok)
		}
		if len(got.Keys()) != 5 {
			t.Errorf("expected 5 keys, got %v", got.Keys())
		}
	})

	t.Run("rejects non-object", func(t *testing.T) {
		t.Parallel()

		var got Corporation
		if err := json.Unmarshal([]byte(`["a"]`), &got); err == nil {
			t.Error("expected error for array input")
		}
	})
}
