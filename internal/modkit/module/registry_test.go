package module

import "testing"

type fakePorts struct{ n int }

func TestRegistryRoundTrip(t *testing.T) {
	Reset()
	Register("ingest", fakePorts{n: 7})

	got, ok := PortsAs[fakePorts]("ingest")
	if !ok || got.n != 7 {
		t.Fatalf("PortsAs = %+v ok=%v", got, ok)
	}

	if _, ok := PortsAs[fakePorts]("missing"); ok {
		t.Fatal("missing name should not resolve")
	}
	// wrong type assertion fails cleanly
	if _, ok := PortsAs[string]("ingest"); ok {
		t.Fatal("wrong type should not resolve")
	}

	Reset()
	if _, ok := PortsAs[fakePorts]("ingest"); ok {
		t.Fatal("Reset should clear the registry")
	}
}
