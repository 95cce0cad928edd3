package cli

import (
	"reflect"
	"testing"
)

func TestNewFlags(t *testing.T) {
	flags := NewFlags()

	// Test default values
	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"TTSProvider", flags.TTSProvider, "google"},
		{"ChineseVoice", flags.ChineseVoice, "cmn-CN-Wavenet-A"},
		{"EnglishVoice", flags.EnglishVoice, "en-US-Wavenet-F"},
		{"SpeakingRate", flags.SpeakingRate, 0.9},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
		{"WordPauseMS", flags.WordPauseMS, 800},
		{"LangPauseMS", flags.LangPauseMS, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}

	// Fields with no default
	stringTests := []struct {
		name  string
		value string
	}{
		{"CfgFile", flags.CfgFile},
		{"OutputPath", flags.OutputPath},
		{"Directory", flags.Directory},
	}

	for _, tt := range stringTests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Errorf("%s = %v, want empty string", tt.name, tt.value)
			}
		})
	}

	if flags.ListVoices {
		t.Error("ListVoices should default to false")
	}
	if flags.Fallback {
		t.Error("Fallback should default to false")
	}
}
