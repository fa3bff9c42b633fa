package util

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint([]byte("resume bytes"), "job text")
	b := Fingerprint([]byte("resume bytes"), "job text")
	if a != b {
		t.Fatalf("same inputs produced different fingerprints: %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("fingerprint length = %d, want 64 hex chars", len(a))
	}
}

func TestFingerprintSensitiveToBothInputs(t *testing.T) {
	base := Fingerprint([]byte("resume"), "job")
	if Fingerprint([]byte("resume2"), "job") == base {
		t.Error("résumé change did not change fingerprint")
	}
	if Fingerprint([]byte("resume"), "job2") == base {
		t.Error("job text change did not change fingerprint")
	}
	// Boundary shifts must not collide.
	if Fingerprint([]byte("resumej"), "ob") == base {
		t.Error("boundary shift collided")
	}
}
