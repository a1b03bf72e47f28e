package crawler

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/nanumcorp/internal/model"
)

const listingFragment = `
<div class="totals">전체 <strong>1,234</strong>건</div>
<table class="tbl_list_tax">
  <thead><tr><th>번호</th><th>공익법인명</th><th>공익사업유형</th><th>기부금단체유형</th><th>공시</th></tr></thead>
  <tbody>
    <tr>
      <td> 1234 </td>
      <td>
        재단법인 가나다
        <input type="hidden" class="bsnmNo" value="123-45-67890">
        <input type="hidden" class="cratQu" value="1999-01-02">
        <input type="hidden" class="hometaxBsnmNo" value="1234567890">
      </td>
      <td>교육</td>
      <td>지정기부금단체</td>
      <td><a href="#" class="sumryPop" data-idx="5521">요약</a></td>
    </tr>
    <tr>
      <td>1233</td>
      <td>사단법인 "라마"<input type="hidden" class="bsnsYearEnd" value="12"><input type="hidden" class="pbnfSn" value="77"></td>
      <td>사회복지</td>
      <td></td>
    </tr>
    <tr><td colspan="4">광고</td></tr>
  </tbody>
</table>
<div class="paging"><a href="?pageIndex=3">3</a></div>
`

// TestParse tests extraction of records from a listing fragment.
func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("extracts totals, rows and page index", func(t *testing.T) {
		t.Parallel()

		got, err := Parse(listingFragment)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got.Total != 1234 {
			t.Errorf("expected total 1234, got %d", got.Total)
		}
		if got.PageIndex != 3 {
			t.Errorf("expected page index 3, got %d", got.PageIndex)
		}

		first := model.Corporation{
			SeqNo:             "1234",
			Name:              "재단법인 가나다",
			BusinessCategory:  "교육",
			DonationGroupType: "지정기부금단체",
		}
		first.SetHidden(model.KeyBusinessRegNo, "123-45-67890")
		first.SetHidden(model.KeyEstablishedOn, "1999-01-02")
		first.SetSummaryIdx("5521")

		second := model.Corporation{
			SeqNo:            "1233",
			Name:             `사단법인 "라마"`,
			BusinessCategory: "사회복지",
		}
		second.SetHidden(model.KeyFiscalYearEnd, "12")
		second.SetHidden(model.KeyPublicBenefitSerial, "77")

		want := []model.Corporation{first, second}
		if diff := cmp.Diff(want, got.Corps); diff != "" {
			t.Errorf("records mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing totals and rows yield empty page", func(t *testing.T) {
		t.Parallel()

		got, err := Parse(`<p>점검 중입니다</p>`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Total != 0 {
			t.Errorf("expected total 0, got %d", got.Total)
		}
		if got.PageIndex != 1 {
			t.Errorf("expected default page index 1, got %d", got.PageIndex)
		}
		if got.Corps == nil || len(got.Corps) != 0 {
			t.Errorf("expected empty non-nil records, got %v", got.Corps)
		}
	})

	t.Run("totals without digits yield zero", func(t *testing.T) {
		t.Parallel()

		got, err := Parse(`<div class="totals">없음</div>`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Total != 0 {
			t.Errorf("expected total 0, got %d", got.Total)
		}
	})

	t.Run("later duplicate hidden input overwrites earlier value", func(t *testing.T) {
		t.Parallel()

		frag := `<table class="tbl_list_tax"><tbody><tr>
			<td>1</td><td>A<input type="hidden" class="bsnmNo" value="old"><input type="hidden" class="pbnfDe" value="2020"><input type="hidden" class="bsnmNo" value="new"></td><td>B</td><td>C</td>
		</tr></tbody></table>`

		got, err := Parse(frag)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Corps) != 1 {
			t.Fatalf("expected 1 record, got %d", len(got.Corps))
		}
		want := []model.Field{
			{Key: model.KeyBusinessRegNo, Value: "new"},
			{Key: model.KeyDesignatedOn, Value: "2020"},
		}
		if diff := cmp.Diff(want, got.Corps[0].HiddenFields); diff != "" {
			t.Errorf("hidden fields mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("multi-class input is not recognized", func(t *testing.T) {
		t.Parallel()

		frag := `<table class="tbl_list_tax"><tbody><tr>
			<td>1</td><td>A<input type="hidden" class="bsnmNo extra" value="x"></td><td>B</td><td>C</td>
		</tr></tbody></table>`

		got, err := Parse(frag)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Corps[0].HiddenFields) != 0 {
			t.Errorf("expected no hidden fields, got %v", got.Corps[0].HiddenFields)
		}
	})

	t.Run("summary trigger without data-idx yields empty index", func(t *testing.T) {
		t.Parallel()

		frag := `<table class="tbl_list_tax"><tbody><tr>
			<td>1</td><td>A</td><td>B</td><td>C</td><td><button class="sumryPop">요약</button></td>
		</tr></tbody></table>`

		got, err := Parse(frag)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v, ok := got.Corps[0].Value(model.KeySummaryIdx)
		if !ok || v != "" {
			t.Errorf("expected present empty summaryIdx, got (%q, %v)", v, ok)
		}
	})

	t.Run("fifth cell without trigger omits summary index", func(t *testing.T) {
		t.Parallel()

		frag := `<table class="tbl_list_tax"><tbody><tr>
			<td>1</td><td>A</td><td>B</td><td>C</td><td>-</td>
		</tr></tbody></table>`

		got, err := Parse(frag)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := got.Corps[0].Value(model.KeySummaryIdx); ok {
			t.Error("expected summaryIdx to be absent")
		}
	})

	t.Run("rows outside the registry table are ignored", func(t *testing.T) {
		t.Parallel()

		frag := `<table class="other"><tbody><tr><td>1</td><td>A</td><td>B</td><td>C</td></tr></tbody></table>`

		got, err := Parse(frag)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got.Corps) != 0 {
			t.Errorf("expected no records, got %d", len(got.Corps))
		}
	})
}

// TestParseTotal tests reading the registry total.
func TestParseTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want int
	}{
		{"총 14,754건", 14754},
		{"1,000,000", 1000000},
		{"12", 12},
		{"", 0},
		{"건수 없음", 0},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			if got := parseTotal(tt.text); got != tt.want {
				t.Errorf("parseTotal(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

// TestErrors tests the error types.
func TestErrors(t *testing.T) {
	t.Parallel()

	t.Run("network error unwraps status sentinel", func(t *testing.T) {
		t.Parallel()

		err := error(&NetworkError{URL: "http://x", StatusCode: 503, Err: ErrUnexpectedStatus})
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Error("expected errors.Is to match ErrUnexpectedStatus")
		}
		if err.Error() != "failed to fetch http://x: status 503: unexpected HTTP status" {
			t.Errorf("unexpected message %q", err.Error())
		}
	})

	t.Run("parse error unwraps cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("boom")
		err := error(&ParseError{Err: cause})
		if !errors.Is(err, cause) {
			t.Error("expected errors.Is to match cause")
		}
	})
}
