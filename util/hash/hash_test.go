package hash

import "testing"

func TestHashAndCheck(t *testing.T) {
	h, err := HashPassword("supersecret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if h == "supersecret" {
		t.Fatal("password stored in the clear")
	}
	if !Check(h, "supersecret") {
		t.Fatal("correct password rejected")
	}
	if Check(h, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
