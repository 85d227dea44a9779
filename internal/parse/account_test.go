package parse

import "testing"

func TestExtractAccountNumber(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{"labeled", []string{"Account Number: 1234-5678"}, "1234-5678"},
		{"abbreviated", []string{"Acct # 9876543210"}, "9876543210"},
		{"no label", []string{"Account No. 9876 5432 10"}, "9876 5432 10"},
		{"too short", []string{"Acct # 42"}, ""},
		{"skips short then finds", []string{"Acct # 42", "Account Number: 555123"}, "555123"},
		{"absent", []string{"nothing to see"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractAccountNumber(tt.lines)
			if tt.want == "" {
				if got != nil {
					t.Errorf("got %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected an account number, got nil")
			}
			if *got != tt.want {
				t.Errorf("got %q, want %q", *got, tt.want)
			}
		})
	}
}
