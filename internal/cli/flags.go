package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	OutputPath string
	Directory  string
	ListVoices bool
	Fallback   bool

	// Speech flags
	TTSProvider  string
	ChineseVoice string
	EnglishVoice string
	SpeakingRate float64
	OpenAIModel  string

	// Timing flags, in milliseconds
	WordPauseMS int
	LangPauseMS int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		TTSProvider:  "google",
		ChineseVoice: "cmn-CN-Wavenet-A",
		EnglishVoice: "en-US-Wavenet-F",
		SpeakingRate: 0.9,
		OpenAIModel:  "gpt-4o-mini-tts",
		WordPauseMS:  800,
		LangPauseMS:  500,
	}
}
