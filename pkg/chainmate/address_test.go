package chainmate

import "testing"

func TestIsValidAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		address string
		want    bool
	}{
		{name: "well-formed mixed case", address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", want: true},
		{name: "all lowercase", address: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045", want: true},
		{name: "all uppercase hex", address: "0xD8DA6BF26964AF9D7EED9E03E53415D37AA96045", want: true},
		{name: "too short", address: "0x123", want: false},
		{name: "39 hex chars", address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA9604", want: false},
		{name: "41 hex chars", address: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA960455", want: false},
		{name: "missing prefix", address: "d8dA6BF26964aF9D7eEd9e03E53415D37aA96045", want: false},
		{name: "non-hex character", address: "0xg8dA6BF26964aF9D7eEd9e03E53415D37aA96045", want: false},
		{name: "surrounding text", address: "wallet 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045", want: false},
		{name: "empty", address: "", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := IsValidAddress(tc.address); got != tc.want {
				t.Fatalf("IsValidAddress(%q) = %v, want %v", tc.address, got, tc.want)
			}
		})
	}
}

func TestExtractAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "embedded in sentence",
			text: "Analyze this wallet: 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045 please",
			want: "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		},
		{
			name: "first of two wins",
			text: "compare 0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa and 0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
			want: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		},
		{name: "no address", text: "show me my portfolio", want: ""},
		{name: "short hex ignored", text: "token 0x123 is not a wallet", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractAddress(tc.text); got != tc.want {
				t.Fatalf("ExtractAddress(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}
