package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		DebugLevel: zapcore.DebugLevel,
		InfoLevel:  zapcore.InfoLevel,
		WarnLevel:  zapcore.WarnLevel,
		ErrorLevel: zapcore.ErrorLevel,
		"bogus":    defaultZapLevel,
	}
	for in, want := range cases {
		if got := toZapLevel(in); got != want {
			t.Errorf("toZapLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_RespectsLevel(t *testing.T) {
	log := New(WarnLevel, true)
	if log == nil || log.SugaredLogger == nil {
		t.Fatal("expected logger")
	}
	if log.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be disabled at warn level")
	}
	if !log.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("error must be enabled at warn level")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Infow("ignored", "k", "v")
	if log.Desugar().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("nop logger must not enable any level")
	}
}
