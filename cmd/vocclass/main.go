package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/taozui/vocaudio/internal"
	"codeberg.org/taozui/vocaudio/internal/anki"
	"codeberg.org/taozui/vocaudio/internal/classify"
	"codeberg.org/taozui/vocaudio/internal/lexicon"
	"codeberg.org/taozui/vocaudio/internal/translate"
	"codeberg.org/taozui/vocaudio/internal/wordlist"
)

var (
	// Flags
	cfgFile         string
	outputDir       string
	cacheFile       string
	wordnetDir      string
	translatorName  string
	maxCategorySize int
	ankiFile        string
	deckName        string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vocclass <words.txt>",
	Short: "English vocabulary categorizer",
	Long: `vocclass sorts an English word list into Chinese-named semantic
categories using WordNet, translating every word along the way.

Each category becomes one file of "<chinese> <english>" lines, ready to
feed into vocaudio. Categories are capped at a fixed size and split into
numbered parts when they grow past it.

Example:
  vocclass allwords.txt                      # Categorize into ./categories
  vocclass allwords.txt --anki deck.apkg    # Also export an Anki deck`,
	Args:    cobra.ExactArgs(1),
	RunE:    runCommand,
	Version: internal.Version,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vocaudio.yaml)")

	// Local flags
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "categories", "Output directory for category files")
	rootCmd.Flags().StringVar(&cacheFile, "cache", "translations_cache.json", "Translation cache file")
	rootCmd.Flags().StringVar(&wordnetDir, "wordnet", "", "WordNet dict directory (default: $WNHOME/dict)")
	rootCmd.Flags().StringVar(&translatorName, "translator", "openai", "Translation backend: openai or gemini")
	rootCmd.Flags().IntVar(&maxCategorySize, "max-category-size", 60, "Largest category before splitting into parts")
	rootCmd.Flags().StringVar(&ankiFile, "anki", "", "Also export an Anki package to this path")
	rootCmd.Flags().StringVar(&deckName, "deck-name", "Vocabulary", "Deck name for the Anki export")

	// Bind flags to viper
	viper.BindPFlag("classify.output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("classify.cache", rootCmd.Flags().Lookup("cache"))
	viper.BindPFlag("classify.wordnet", rootCmd.Flags().Lookup("wordnet"))
	viper.BindPFlag("classify.max_category_size", rootCmd.Flags().Lookup("max-category-size"))
	viper.BindPFlag("translate.backend", rootCmd.Flags().Lookup("translator"))
}

func initConfig() {
	godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Shares the .vocaudio config with the converter
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

func runCommand(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	fmt.Println("Loading words...")
	words, err := wordlist.LoadWords(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d unique word(s)\n", len(words))

	lex, err := lexicon.Load(resolveWordNetDir())
	if err != nil {
		return err
	}

	cache, err := translate.LoadCache(cacheFile)
	if err != nil {
		return err
	}
	if cache.Len() > 0 {
		fmt.Printf("Loaded %d cached translation(s) from %s\n", cache.Len(), cacheFile)
	}

	translator, err := translate.NewTranslator(translatorName, translatorKey())
	if err != nil {
		return err
	}

	fmt.Println("\nTranslating words...")
	translations, err := translate.TranslateAll(ctx, translator, cache, words)
	if err != nil {
		return err
	}

	fmt.Println("\nCategorizing words...")
	categories := classify.Categorize(lex, words)
	classify.PrintStats(categories)

	final := classify.SplitLarge(categories, maxCategorySize)
	fmt.Printf("\nFinal category count: %d\n\n", len(final))

	if err := classify.Save(final, outputDir, translations); err != nil {
		return err
	}
	fmt.Printf("\nDone! Categories saved to %s\n", outputDir)

	if ankiFile != "" {
		if err := exportAnki(final, translations, ankiFile); err != nil {
			return err
		}
	}
	return nil
}

// resolveWordNetDir falls back to the conventional WNHOME layout.
func resolveWordNetDir() string {
	if wordnetDir != "" {
		return wordnetDir
	}
	if dir := viper.GetString("classify.wordnet"); dir != "" {
		return dir
	}
	if home := os.Getenv("WNHOME"); home != "" {
		return filepath.Join(home, "dict")
	}
	return "/usr/share/wordnet"
}

func translatorKey() string {
	if translatorName == "gemini" {
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return viper.GetString("translate.gemini_key")
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}

func exportAnki(categories map[string][]string, translations map[string]string, path string) error {
	fmt.Printf("\nGenerating Anki package...\n")
	gen := anki.NewAPKGGenerator(deckName)
	for category, words := range categories {
		for _, word := range words {
			gen.AddCard(anki.Card{
				English:  word,
				Chinese:  translations[word],
				Category: category,
			})
		}
	}
	if err := gen.GenerateAPKG(path); err != nil {
		return err
	}
	fmt.Printf("Anki package created: %s (%d cards)\n", path, gen.CardCount())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
