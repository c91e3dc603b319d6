package prompt

import (
	"fmt"
	"strings"
)

// Version 模板版本，参与缓存指纹；修改模板文本时必须递增
const Version = "discover-rubric/v1"

// Axis 评分维度
type Axis struct {
	Name string
	Hint string
}

// Axes 四个固定评分维度，顺序即输出顺序
var Axes = []Axis{
	{Name: "Curiosity Gap", Hint: "does it make the reader need to know more without clickbait"},
	{Name: "Entity Recognition", Hint: "are people, products, brands or places named explicitly"},
	{Name: "Trustworthiness", Hint: "E-E-A-T: experience, expertise, authority and trust signals"},
	{Name: "Discover Potential", Hint: "overall likelihood of being surfaced in the Discover feed"},
}

// AlternateCount 备选标题数量
const AlternateCount = 3

// Verbosity 输出详略
type Verbosity string

const (
	Concise  Verbosity = "concise"
	Detailed Verbosity = "detailed"
)

// Mode 可选附加要求，不会改变评分维度与备选标题数量
type Mode struct {
	ReasoningLog bool
	Verbosity    Verbosity
}

// Signature 模式的稳定字符串表示，用于缓存指纹
func (m Mode) Signature() string {
	v := m.Verbosity
	if v == "" {
		v = Concise
	}
	return fmt.Sprintf("reasoning=%t;verbosity=%s", m.ReasoningLog, v)
}

// Build 根据标题与话题渲染分析提示词，输入相同则输出相同
func Build(headline, topic string, mode Mode) string {
	var sb strings.Builder

	sb.WriteString("Act as a Google Discover Specialist. Analyze this headline:\n")
	fmt.Fprintf(&sb, "HEADLINE: %s\n", headline)
	fmt.Fprintf(&sb, "TOPIC: %s\n\n", topic)

	sb.WriteString("STRICT OUTPUT RULES:\n")
	if mode.Verbosity == Detailed {
		sb.WriteString("- Give a thorough analysis: a short paragraph per item is fine.\n")
	} else {
		sb.WriteString("- Keep analysis short and punchy (bullet points).\n")
	}
	sb.WriteString("- Alternate headlines must be in **sentence case**.\n")
	sb.WriteString("- Answer in markdown.\n\n")

	step := 1
	if mode.ReasoningLog {
		fmt.Fprintf(&sb, "%d. REASONING LOG:\n", step)
		sb.WriteString("   Before scoring, list the signals you noticed in the headline as brief bullet points.\n\n")
		step++
	}

	fmt.Fprintf(&sb, "%d. SCORECARD (1-10) with 1-sentence rationale:\n", step)
	for _, a := range Axes {
		fmt.Fprintf(&sb, "   - %s (%s)\n", a.Name, a.Hint)
	}
	sb.WriteString("\n")
	step++

	fmt.Fprintf(&sb, "%d. OPTIMIZED ALTERNATES:\n", step)
	fmt.Fprintf(&sb, "   Provide exactly %d better headlines in sentence case.\n", AlternateCount)
	sb.WriteString("   Format for EACH:\n")
	sb.WriteString("   * **[Headline Text]**\n")
	sb.WriteString("     - *Predicted CTR:* [Percentage]\n")
	sb.WriteString("     - *Why it wins:* [1-sentence explanation]\n")

	return sb.String()
}
