package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	err := New(CodeIllegalMove, "3C on 5H")
	if !stderrors.Is(err, &Error{Code: CodeIllegalMove}) {
		t.Fatal("expected code match")
	}
	if stderrors.Is(err, &Error{Code: CodeInvalidSelection}) {
		t.Fatal("expected code mismatch")
	}
}

func TestCodeOfWrappedError(t *testing.T) {
	err := fmt.Errorf("turn 3: %w", WithMetadata(CodeInvalidSelection, "index 9", map[string]string{"Size": "5"}))

	if got := CodeOf(err); got != CodeInvalidSelection {
		t.Fatalf("code = %s, want %s", got, CodeInvalidSelection)
	}
	if !HasCode(err, CodeInvalidSelection) {
		t.Fatal("expected HasCode through wrap")
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("plain error code = %s, want %s", got, CodeUnknown)
	}
}

func TestRecoverable(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{CodeInvalidSelection, true},
		{CodeIllegalMove, true},
		{CodeNotHumanTurn, false},
		{CodeGameOver, false},
		{CodeInvalidSetup, false},
		{CodeUnknown, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := IsRecoverable(New(tt.code, "x")); got != tt.want {
				t.Fatalf("IsRecoverable(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	cause := stderrors.New("boom")
	err := Wrap(CodeInvalidSetup, "deal", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
	withMeta := WrapWithMetadata(CodeInvalidSetup, "deal", map[string]string{"Reason": "r"}, cause)
	if withMeta.Unwrap() != cause || withMeta.Metadata["Reason"] != "r" {
		t.Fatal("expected cause and metadata")
	}
}

func TestLocalize(t *testing.T) {
	err := WithMetadata(CodeIllegalMove, "illegal", map[string]string{"Cards": "3♣"})

	if got := Localize(err, "en-US"); got != "3♣ cannot be played on the current pile." {
		t.Fatalf("en-US = %q", got)
	}
	if got := Localize(err, "pt-BR"); got != "3♣ não pode ser jogado na pilha atual." {
		t.Fatalf("pt-BR = %q", got)
	}
	if got := Localize(stderrors.New("plain"), "en-US"); got != "plain" {
		t.Fatalf("plain = %q", got)
	}
	if got := Localize(nil, "en-US"); got != "" {
		t.Fatalf("nil = %q", got)
	}
}
