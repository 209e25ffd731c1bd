// Package lexicon holds the word lists that drive transcript classification.
// Lists are plain data so they can be swapped per language without touching
// the engine.
package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Lexicon is the external rule data consumed by the engine
type Lexicon struct {
	// Fillers are hesitation sounds and backchannels. A segment made only of these is dropped.
	Fillers []string `yaml:"fillers"`
	// Keywords are explanatory or structural markers that raise importance.
	Keywords []string `yaml:"keywords"`
	// Interrogatives are question openers that raise importance.
	Interrogatives []string `yaml:"interrogatives"`
	// Corrections are false-start markers; short segments containing one are dropped.
	Corrections []string `yaml:"corrections"`
}

// Load reads a lexicon from a YAML file. Lists missing from the file stay empty
// and the matching rule becomes a no-op.
func Load(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return nil, fmt.Errorf("parse lexicon: %w", err)
	}

	return &lex, nil
}

// Save writes the lexicon as YAML
func (l *Lexicon) Save(path string) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return fmt.Errorf("marshal lexicon: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Default returns the built-in Chinese + English lexicon
func Default() *Lexicon {
	return &Lexicon{
		Fillers: []string{
			"嗯", "啊", "呃", "哦", "喔", "唔", "額", "嗯哼", "嗯嗯", "啊啊", "呃呃",
			"那个", "就是", "然后", "这个", "那么", "所以说", "对吧", "你知道",
			"怎么说呢", "就是说", "我觉得", "我认为", "应该说", "可以说",
			"那", "对", "就", "这", "是", "不", "可以", "好", "行",
			"um", "umm", "uh", "uhh", "er", "erm", "ah", "hmm", "mm", "like",
			"you know", "i mean", "ok", "okay", "yeah", "well", "right", "so",
		},
		Keywords: []string{
			"实现", "原理", "方法", "步骤", "流程", "架构", "设计", "算法", "优化",
			"问题", "解决", "关键", "重要", "核心", "本质", "总结", "结论",
			"首先", "其次", "最后", "因此", "所以", "但是", "然而", "不过",
			"第一", "第二", "第三", "总之", "综上",
			"implement", "method", "architecture", "design", "algorithm", "solution",
			"key", "important", "core", "main", "step",
			"first", "second", "third", "finally", "therefore", "however", "because",
		},
		Interrogatives: []string{
			"为什么", "怎么", "如何", "什么",
			"why", "how", "what", "when", "where", "which", "who",
		},
		Corrections: []string{
			"不是", "我是说", "不对", "应该是", "错了", "重来", "不是不是",
			"no wait", "i mean", "that's wrong", "sorry", "let me rephrase",
		},
	}
}
