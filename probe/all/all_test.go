package all

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jonwraymond/healthcheckx/catalog"
)

func TestKindsRegistered(t *testing.T) {
	want := []string{"memory", "modbus", "postgres", "rabbitmq", "redis", "sqlite"}
	if diff := cmp.Diff(want, catalog.Kinds()); diff != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", diff)
	}
}
