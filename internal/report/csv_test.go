package report

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/nanumcorp/internal/model"
)

// TestCSVWriter tests CSV rendering.
func TestCSVWriter(t *testing.T) {
	t.Parallel()

	t.Run("header from first record and quoted fields", func(t *testing.T) {
		t.Parallel()

		corps := []model.Corporation{
			corp("2", `재단 "희망", 서울`, "교육", "", model.KeyBusinessRegNo, "1"),
			corp("1", "B", "의료", "기타기부금단체"),
		}

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).Write(corps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "번호,공익법인명,공익사업유형,기부금단체유형,bsnmNo\n" +
			`"2","재단 ""희망"", 서울","교육","","1"` + "\n" +
			`"1","B","의료","기타기부금단체",""`
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("CSV mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("keys missing from the first record are dropped", func(t *testing.T) {
		t.Parallel()

		corps := []model.Corporation{
			corp("1", "A", "교육", ""),
			corp("2", "B", "교육", "", model.KeyFiscalYearEnd, "12"),
		}

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf).Write(corps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "번호,공익법인명,공익사업유형,기부금단체유형\n" +
			`"1","A","교육",""` + "\n" +
			`"2","B","교육",""`
		if buf.String() != want {
			t.Errorf("unexpected CSV:\n%s", buf.String())
		}
	})

	t.Run("union header aligns heterogeneous records", func(t *testing.T) {
		t.Parallel()

		corps := []model.Corporation{
			corp("1", "A", "교육", "", model.KeyEstablishedOn, "2001"),
			corp("2", "B", "교육", "", model.KeyFiscalYearEnd, "12", model.KeySummaryIdx, "5"),
		}

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf, WithUnionHeader()).Write(corps); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := "번호,공익법인명,공익사업유형,기부금단체유형,cratQu,bsnsYearEnd,summaryIdx\n" +
			`"1","A","교육","","2001","",""` + "\n" +
			`"2","B","교육","","","12","5"`
		if diff := cmp.Diff(want, buf.String()); diff != "" {
			t.Errorf("CSV mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("BOM option prefixes byte order mark", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewCSVWriter(&buf, WithBOM()).Write([]model.Corporation{corp("1", "A", "", "")}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}) {
			t.Errorf("expected BOM prefix, got % x", buf.Bytes()[:3])
		}
		if !bytes.HasSuffix(buf.Bytes(), []byte(`"1","A","",""`)) {
			t.Errorf("unexpected content %q", buf.String())
		}
	})

	t.Run("empty input writes nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		n, err := NewCSVWriter(&buf, WithBOM()).Write(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != 0 || buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})
}

// TestHeader tests column selection.
func TestHeader(t *testing.T) {
	t.Parallel()

	if got := Header(nil); got != nil {
		t.Errorf("expected nil header for no records, got %v", got)
	}

	corps := []model.Corporation{
		corp("1", "A", "", "", model.KeyPublicBenefitSerial, "1"),
		corp("2", "B", "", "", model.KeyBusinessRegNo, "2", model.KeyPublicBenefitSerial, "3"),
	}
	want := []string{"번호", "공익법인명", "공익사업유형", "기부금단체유형", "pbnfSn", "bsnmNo"}
	if diff := cmp.Diff(want, Header(corps, WithUnionHeader())); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
}
