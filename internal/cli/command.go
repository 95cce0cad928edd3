package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/taozui/vocaudio/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vocaudio [input.txt]",
		Short: "Bilingual word list to MP3 converter",
		Long: `vocaudio turns a Chinese-English word list into a single MP3 for
listening practice. Each line of the input becomes Chinese speech, a
short pause, then English speech, with a longer pause between words.

Examples:
  vocaudio words.txt                # Convert one list to words.mp3
  vocaudio words.txt -o out.mp3     # Choose the output file
  vocaudio -d lists/                # Convert every .txt in a directory
  vocaudio --list-voices            # Show available voices`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.vocaudio.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Output MP3 file (default: input name with .mp3)")
	cmd.Flags().StringVarP(&flags.Directory, "directory", "d", "", "Convert every .txt file in a directory")
	cmd.Flags().BoolVar(&flags.ListVoices, "list-voices", false, "List available voices and exit")
	cmd.Flags().BoolVar(&flags.Fallback, "fallback", false, "Fall back to espeak-ng when the primary backend fails")

	cmd.Flags().StringVar(&flags.TTSProvider, "tts-provider", flags.TTSProvider, "Speech backend: google, openai, espeak")
	cmd.Flags().StringVar(&flags.ChineseVoice, "zh-voice", flags.ChineseVoice, "Voice for the Chinese column")
	cmd.Flags().StringVar(&flags.EnglishVoice, "en-voice", flags.EnglishVoice, "Voice for the English column")
	cmd.Flags().Float64Var(&flags.SpeakingRate, "rate", flags.SpeakingRate, "Speaking rate (1.0 is normal speed)")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")

	cmd.Flags().IntVar(&flags.WordPauseMS, "word-pause", flags.WordPauseMS, "Pause between word pairs, in milliseconds")
	cmd.Flags().IntVar(&flags.LangPauseMS, "lang-pause", flags.LangPauseMS, "Pause between the two languages, in milliseconds")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("tts-provider"))
	viper.BindPFlag("audio.zh_voice", cmd.Flags().Lookup("zh-voice"))
	viper.BindPFlag("audio.en_voice", cmd.Flags().Lookup("en-voice"))
	viper.BindPFlag("audio.rate", cmd.Flags().Lookup("rate"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
	viper.BindPFlag("timing.word_pause", cmd.Flags().Lookup("word-pause"))
	viper.BindPFlag("timing.lang_pause", cmd.Flags().Lookup("lang-pause"))
	viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// A .env file in the working directory supplies API keys.
	godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".vocaudio" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocaudio")
	}

	// Environment variables
	viper.SetEnvPrefix("VOCAUDIO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("translate.gemini_key")
}
