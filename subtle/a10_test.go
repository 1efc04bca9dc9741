package subtle

import (
	"testing"
)

func TestA10RoundTrip(t *testing.T) {
	cipher, err := NewA10()
	if err != nil {
		t.Fatalf("Failed to create A10: %v", err)
	}
	key := testAESKey(16)
	tweak := []byte("a10 round trip")

	// n=19 and up exercise the m > 9 recombination of both MAC halves.
	for _, n := range []int{4, 5, 6, 9, 10, 16, 19, 20, 21, 36} {
		pt := make([]int, n)
		for i := range pt {
			pt[i] = (i*7 + 3) % 10
		}
		ct, err := cipher.Encrypt(key, tweak, pt)
		if err != nil {
			t.Fatalf("Encrypt failed for n=%d: %v", n, err)
		}
		if len(ct) != n {
			t.Fatalf("Length not preserved for n=%d", n)
		}
		for i, c := range ct {
			if c < 0 || c > 9 {
				t.Errorf("Non-decimal symbol %d at position %d for n=%d", c, i, n)
			}
		}
		back, err := cipher.Decrypt(key, tweak, ct)
		if err != nil {
			t.Fatalf("Decrypt failed for n=%d: %v", n, err)
		}
		if !equalInts(back, pt) {
			t.Errorf("Round trip failed for n=%d", n)
		}
	}
}

func TestA10RoundsTable(t *testing.T) {
	p := NewA10Parameters()
	cases := []struct{ n, rounds int }{
		{4, 24}, {5, 24},
		{6, 18}, {9, 18},
		{10, 12}, {36, 12},
	}
	for _, c := range cases {
		r, err := p.Rounds(c.n)
		if err != nil {
			t.Fatalf("Rounds failed for n=%d: %v", c.n, err)
		}
		if r != c.rounds {
			t.Errorf("Expected %d rounds for n=%d, got %d", c.rounds, c.n, r)
		}
	}
	if _, err := p.Rounds(3); err == nil {
		t.Errorf("Expected an error for n=3")
	}
	if _, err := p.Rounds(37); err == nil {
		t.Errorf("Expected an error for n=37")
	}
}

func TestA10LengthBounds(t *testing.T) {
	cipher, err := NewA10()
	if err != nil {
		t.Fatalf("Failed to create A10: %v", err)
	}
	key := testAESKey(16)

	if _, err := cipher.Encrypt(key, []byte{}, []int{1, 2, 3}); err == nil {
		t.Errorf("Expected an error for n=3")
	}
	if _, err := cipher.Encrypt(key, []byte{}, make([]int, 37)); err == nil {
		t.Errorf("Expected an error for n=37")
	}
}
