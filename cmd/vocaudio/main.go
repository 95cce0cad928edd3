package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/taozui/vocaudio/internal/cli"
	"codeberg.org/taozui/vocaudio/internal/convert"
	"codeberg.org/taozui/vocaudio/internal/ffmpeg"
	"codeberg.org/taozui/vocaudio/internal/tts"
)

func main() {
	flags := cli.NewFlags()
	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := context.Background()

	cfg := convertConfig(flags)

	provider, err := tts.NewProvider(cfg.TTS)
	if err != nil {
		return err
	}
	if flags.Fallback && cfg.TTS.Provider != "espeak" {
		espeak, err := tts.NewESpeakProvider(cfg.TTS)
		if err != nil {
			return fmt.Errorf("--fallback requires espeak-ng: %w", err)
		}
		provider = tts.NewProviderWithFallback(provider, espeak)
	}

	if flags.ListVoices {
		return listVoices(ctx, provider)
	}

	if flags.Directory == "" && len(args) == 0 {
		return cmd.Help()
	}

	if err := ffmpeg.Installed(); err != nil {
		return err
	}
	if err := provider.IsAvailable(); err != nil {
		return fmt.Errorf("speech backend %s is not usable: %w", provider.Name(), err)
	}

	muxer := convert.NewMuxer()

	if flags.Directory != "" {
		return convert.RunDirectory(ctx, flags.Directory, provider, muxer, cfg)
	}

	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file not found: %s", input)
	}
	output := stringSetting("output.path", flags.OutputPath)
	return convert.NewJob(input, output, provider, muxer, cfg).Run(ctx)
}

// ttsConfig composes the speech settings from the viper-bound keys: flags
// when given, otherwise the config file, otherwise the flag defaults.
func ttsConfig(flags *cli.Flags) *tts.Config {
	cfg := tts.DefaultConfig()
	cfg.Provider = stringSetting("audio.provider", flags.TTSProvider)
	cfg.ChineseVoice = stringSetting("audio.zh_voice", flags.ChineseVoice)
	cfg.EnglishVoice = stringSetting("audio.en_voice", flags.EnglishVoice)
	cfg.OpenAIModel = stringSetting("audio.openai_model", flags.OpenAIModel)
	cfg.OpenAIKey = cli.GetOpenAIKey()
	if rate := viper.GetFloat64("audio.rate"); rate > 0 {
		cfg.SpeakingRate = rate
	} else {
		cfg.SpeakingRate = flags.SpeakingRate
	}
	return cfg
}

func convertConfig(flags *cli.Flags) *convert.Config {
	cfg := convert.DefaultConfig()
	cfg.TTS = ttsConfig(flags)
	cfg.WordPause = pauseSetting("timing.word_pause", flags.WordPauseMS)
	cfg.LanguagePause = pauseSetting("timing.lang_pause", flags.LangPauseMS)
	return cfg
}

func stringSetting(key, fallback string) string {
	if v := viper.GetString(key); v != "" {
		return v
	}
	return fallback
}

func pauseSetting(key string, fallbackMS int) time.Duration {
	ms := viper.GetInt(key)
	if ms <= 0 {
		ms = fallbackMS
	}
	return time.Duration(ms) * time.Millisecond
}

// listVoices prints the backend's voices grouped by language.
func listVoices(ctx context.Context, provider tts.Provider) error {
	voices, err := provider.ListVoices(ctx)
	if err != nil {
		return fmt.Errorf("failed to list voices: %w", err)
	}

	groups := make(map[string][]tts.Voice)
	for _, v := range voices {
		lang := strings.SplitN(v.Locale, "-", 2)[0]
		groups[lang] = append(groups[lang], v)
	}

	langs := make([]string, 0, len(groups))
	for lang := range groups {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	fmt.Printf("Voices available from %s:\n", provider.Name())
	for _, lang := range langs {
		fmt.Printf("\n%s:\n", lang)
		for _, v := range groups[lang] {
			if v.Gender != "" {
				fmt.Printf("  %s (%s, %s)\n", v.Name, v.Locale, v.Gender)
			} else {
				fmt.Printf("  %s (%s)\n", v.Name, v.Locale)
			}
		}
	}
	return nil
}
