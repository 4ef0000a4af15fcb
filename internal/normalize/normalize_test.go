package normalize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/danstonedev/VSPx-EMRsim-sub000/internal/model"
)

func TestCodeKey(t *testing.T) {
	cases := map[string]string{
		" m54.5 ":  "M545",
		"S83.241A": "S83241A",
		"   ":      "",
	}
	for in, want := range cases {
		if got := CodeKey(in); got != want {
			t.Errorf("CodeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label("  Low   back\tpain "); got != "Low back pain" {
		t.Errorf("Label = %q", got)
	}
}

func TestRecord(t *testing.T) {
	rec := &model.CaseRecord{
		DiagnosisCodes:  model.DiagnosisList{{Code: " M54.5 ", Description: "Low  back pain"}},
		BillingCodes:    []model.BillingCodeEntry{{Code: "97110 ", LinkedDiagnosisCode: " M54.5"}},
		OrdersReferrals: []model.OrderReferralEntry{{LinkedDiagnosisCode: "M54.5\n"}},
	}
	if !Record(rec) {
		t.Fatal("expected change")
	}
	if rec.DiagnosisCodes[0].Code != "M54.5" || rec.DiagnosisCodes[0].Description != "Low back pain" {
		t.Errorf("diagnosis = %+v", rec.DiagnosisCodes[0])
	}
	if rec.BillingCodes[0].LinkedDiagnosisCode != "M54.5" || rec.BillingCodes[0].Code != "97110" {
		t.Errorf("billing = %+v", rec.BillingCodes[0])
	}
	if rec.OrdersReferrals[0].LinkedDiagnosisCode != "M54.5" {
		t.Errorf("order = %+v", rec.OrdersReferrals[0])
	}
	if Record(rec) {
		t.Error("second pass reported a change")
	}
}

func TestFingerprint(t *testing.T) {
	a := &model.CaseRecord{Assessment: model.Assessment{ROM: map[string]string{"hip:Flexion_L": "1", "hip:Flexion_R": "2"}}}
	b := a.Clone()
	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatal(err)
	}
	fb, _ := Fingerprint(b)
	if fa != fb {
		t.Error("equal records hash differently")
	}
	b.Assessment.ROM["hip:Flexion_R"] = "3"
	if fc, _ := Fingerprint(b); fc == fa {
		t.Error("different records hash equally")
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "case.json")
	os.WriteFile(path, []byte("{}"), 0644)
	got, err := FileHash(path)
	if err != nil {
		t.Fatal(err)
	}
	const want = "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"
	if got != want {
		t.Errorf("FileHash = %s", got)
	}
	if _, err := FileHash("/nonexistent"); err == nil {
		t.Error("expected error")
	}
}
