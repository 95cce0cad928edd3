// Package classify buckets English vocabulary into Chinese-named semantic
// categories based on each word's primary lexical sense.
package classify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codeberg.org/taozui/vocaudio/internal"
	"codeberg.org/taozui/vocaudio/internal/lexicon"
)

// Uncategorized is the bucket for words with no WordNet entry.
const Uncategorized = "未分类词汇"

// lexnameToChinese names each WordNet lexicographer file in Chinese.
var lexnameToChinese = map[string]string{
	"noun.Tops":          "基础概念",
	"noun.act":           "行为动作",
	"noun.animal":        "动物",
	"noun.artifact":      "人造物品",
	"noun.attribute":     "属性特征",
	"noun.body":          "身体部位",
	"noun.cognition":     "认知思维",
	"noun.communication": "交流通讯",
	"noun.event":         "事件",
	"noun.feeling":       "情感感受",
	"noun.food":          "食物饮品",
	"noun.group":         "群体组织",
	"noun.location":      "地点位置",
	"noun.motive":        "动机目的",
	"noun.object":        "自然物体",
	"noun.person":        "人物角色",
	"noun.phenomenon":    "自然现象",
	"noun.plant":         "植物",
	"noun.possession":    "财产所有",
	"noun.process":       "过程变化",
	"noun.quantity":      "数量度量",
	"noun.relation":      "关系",
	"noun.shape":         "形状",
	"noun.state":         "状态情况",
	"noun.substance":     "物质材料",
	"noun.time":          "时间",
	"verb.body":          "身体动作",
	"verb.change":        "变化改变",
	"verb.cognition":     "思考认知",
	"verb.communication": "言语交流",
	"verb.competition":   "竞争比赛",
	"verb.consumption":   "消费使用",
	"verb.contact":       "接触动作",
	"verb.creation":      "创造制作",
	"verb.emotion":       "情感表达",
	"verb.motion":        "移动运动",
	"verb.perception":    "感知感觉",
	"verb.possession":    "拥有获取",
	"verb.social":        "社会交往",
	"verb.stative":       "状态描述",
	"verb.weather":       "天气相关",
	"adj.all":            "形容词通用",
	"adj.pert":           "形容词关系",
	"adj.ppl":            "分词形容词",
	"adv.all":            "副词",
}

// categoryMerge folds the fine-grained categories into coarser study sets.
var categoryMerge = map[string]string{
	"基础概念":  "基础词汇",
	"行为动作":  "行为动作",
	"动物":    "动物自然",
	"人造物品":  "日常物品",
	"属性特征":  "属性特征",
	"身体部位":  "身体健康",
	"认知思维":  "思维认知",
	"交流通讯":  "语言交流",
	"事件":    "事件活动",
	"情感感受":  "情感心理",
	"食物饮品":  "食物饮品",
	"群体组织":  "社会组织",
	"地点位置":  "地点场所",
	"动机目的":  "思维认知",
	"自然物体":  "自然环境",
	"人物角色":  "人物职业",
	"自然现象":  "自然环境",
	"植物":    "动物自然",
	"财产所有":  "经济商业",
	"过程变化":  "变化发展",
	"数量度量":  "数量度量",
	"关系":    "关系连接",
	"形状":    "形状外观",
	"状态情况":  "状态情况",
	"物质材料":  "物质材料",
	"时间":    "时间",
	"身体动作":  "身体健康",
	"变化改变":  "变化发展",
	"思考认知":  "思维认知",
	"言语交流":  "语言交流",
	"竞争比赛":  "竞争比赛",
	"消费使用":  "日常生活",
	"接触动作":  "行为动作",
	"创造制作":  "创造艺术",
	"情感表达":  "情感心理",
	"移动运动":  "运动出行",
	"感知感觉":  "感知感觉",
	"拥有获取":  "经济商业",
	"社会交往":  "社会组织",
	"状态描述":  "状态情况",
	"天气相关":  "自然环境",
	"形容词通用": "描述形容",
	"形容词关系": "描述形容",
	"分词形容词": "描述形容",
	"副词":    "程度方式",
}

// CategoryOf maps a word to its merged Chinese category, or ok=false when
// the word has no WordNet entry.
func CategoryOf(lex *lexicon.Lexicon, word string) (string, bool) {
	lexname, ok := lex.Lexname(word)
	if !ok {
		return "", false
	}
	chinese, ok := lexnameToChinese[lexname]
	if !ok {
		chinese = "其他"
	}
	if merged, ok := categoryMerge[chinese]; ok {
		return merged, true
	}
	return chinese, true
}

// Categorize buckets words by merged category, preserving input order inside
// each bucket. Words without a WordNet entry land in the Uncategorized
// bucket.
func Categorize(lex *lexicon.Lexicon, words []string) map[string][]string {
	categories := make(map[string][]string)
	for _, word := range words {
		category, ok := CategoryOf(lex, word)
		if !ok {
			category = Uncategorized
		}
		categories[category] = append(categories[category], word)
	}
	return categories
}

// SplitLarge breaks every bucket larger than maxSize into numbered parts
// (name_1, name_2, ...). Buckets at or under the limit keep their name.
func SplitLarge(categories map[string][]string, maxSize int) map[string][]string {
	result := make(map[string][]string, len(categories))
	for name, words := range categories {
		if len(words) <= maxSize {
			result[name] = words
			continue
		}
		parts := (len(words) + maxSize - 1) / maxSize
		for i := 0; i < parts; i++ {
			start := i * maxSize
			end := start + maxSize
			if end > len(words) {
				end = len(words)
			}
			result[fmt.Sprintf("%s_%d", name, i+1)] = words[start:end]
		}
	}
	return result
}

// Save writes one file per category under outputDir: a title line (the
// category name with part underscores stripped) followed by the words in
// sorted order, each as "<chinese> <english>".
func Save(categories map[string][]string, outputDir string, translations map[string]string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for name, words := range categories {
		path := filepath.Join(outputDir, internal.SanitizeFilename(name)+".txt")

		var sb strings.Builder
		sb.WriteString(strings.ReplaceAll(name, "_", ""))
		sb.WriteString("\n")

		sorted := append([]string(nil), words...)
		sort.Strings(sorted)
		for _, word := range sorted {
			chinese, ok := translations[word]
			if !ok {
				chinese = word
			}
			fmt.Fprintf(&sb, "%s %s\n", chinese, word)
		}

		if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("failed to write category file %s: %w", path, err)
		}
		fmt.Printf("Saved %s.txt: %d word(s)\n", name, len(words))
	}
	return nil
}

// PrintStats prints category sizes, largest first.
func PrintStats(categories map[string][]string) {
	type stat struct {
		name string
		size int
	}
	stats := make([]stat, 0, len(categories))
	for name, words := range categories {
		stats = append(stats, stat{name, len(words)})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].size != stats[j].size {
			return stats[i].size > stats[j].size
		}
		return stats[i].name < stats[j].name
	})

	fmt.Println("Category statistics:")
	for _, s := range stats {
		fmt.Printf("  %s: %d word(s)\n", s.name, s.size)
	}
}
