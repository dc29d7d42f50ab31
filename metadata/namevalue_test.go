package metadata

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	got, err := Parse([]string{"scenario=tcp-example", "bottleneck=5Mbps", "note=a=b", "empty="})
	if err != nil {
		t.Fatalf("Parse() = %v", err)
	}
	want := []NameValue{
		{Name: "scenario", Value: "tcp-example"},
		{Name: "bottleneck", Value: "5Mbps"},
		{Name: "note", Value: "a=b"},
		{Name: "empty", Value: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
	for _, bad := range []string{"novalue", "=x"} {
		if _, err := Parse([]string{bad}); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
	if got, err := Parse(nil); err != nil || got != nil {
		t.Errorf("Parse(nil) = %v, %v", got, err)
	}
}
