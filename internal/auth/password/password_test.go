package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("hash equals the plaintext")
	}

	if !Verify(hash, "correct horse battery staple") {
		t.Error("correct password rejected")
	}
	if Verify(hash, "wrong password") {
		t.Error("wrong password accepted")
	}
}

func TestHashesAreSalted(t *testing.T) {
	first, err := Hash("same input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("same input")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same input are identical")
	}
}
